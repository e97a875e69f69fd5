package queries

import (
	"context"

	"pawbook/internal/domain/catalog"
	"pawbook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CatalogQueries interface {
	Services(ctx context.Context, userID uuid.UUID) ([]ServiceView, error)
	AddOns(ctx context.Context, userID uuid.UUID) ([]AddOnView, error)
	MembershipPlans(ctx context.Context, userID uuid.UUID) ([]MembershipPlanView, error)
	Addresses(ctx context.Context, userID uuid.UUID) ([]SavedAddressView, error)
	Stores(ctx context.Context, userID uuid.UUID) ([]StoreView, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*CurrentUserView, error)
}

type catalogQueriesImpl struct {
	catalogs CatalogProvider
	users    UserReader
}

func NewCatalogQueries(catalogs CatalogProvider, users UserReader) CatalogQueries {
	return &catalogQueriesImpl{catalogs: catalogs, users: users}
}

func (q *catalogQueriesImpl) Services(ctx context.Context, userID uuid.UUID) ([]ServiceView, error) {
	snap := q.catalogs.SnapshotFor(ctx, userID)
	out := make([]ServiceView, 0, len(snap.Services))
	for _, s := range snap.Services {
		out = append(out, serviceToView(s))
	}
	return out, nil
}

func (q *catalogQueriesImpl) AddOns(ctx context.Context, userID uuid.UUID) ([]AddOnView, error) {
	snap := q.catalogs.SnapshotFor(ctx, userID)
	out := make([]AddOnView, 0, len(snap.AddOns))
	for _, a := range snap.AddOns {
		out = append(out, AddOnView{
			ID:                   a.ID,
			Name:                 a.Name,
			Description:          a.Description,
			Price:                money(a.Price),
			Category:             a.Category,
			MostPopular:          a.MostPopular,
			IncludedInMembership: a.IncludedInMembership,
		})
	}
	return out, nil
}

func (q *catalogQueriesImpl) MembershipPlans(ctx context.Context, userID uuid.UUID) ([]MembershipPlanView, error) {
	snap := q.catalogs.SnapshotFor(ctx, userID)
	out := make([]MembershipPlanView, 0, len(snap.Plans))
	for _, p := range snap.Plans {
		view := MembershipPlanView{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Fee:          money(p.Fee),
			DiscountRate: p.DiscountRate.String(),
			PercentOff:   p.PercentOff().Round(0).String(),
			CouponCount:  p.CouponCount,
			CouponAmount: money(p.CouponAmount),
			Benefits:     make([]BenefitView, 0, len(p.Benefits)),
		}
		for _, b := range p.SortedBenefits() {
			var bv BenefitView
			if err := copier.Copy(&bv, &b); err != nil {
				return nil, errs.Wrap(err, "failed to map plan benefit")
			}
			view.Benefits = append(view.Benefits, bv)
		}
		out = append(out, view)
	}
	return out, nil
}

func (q *catalogQueriesImpl) Addresses(ctx context.Context, userID uuid.UUID) ([]SavedAddressView, error) {
	snap := q.catalogs.SnapshotFor(ctx, userID)
	out := make([]SavedAddressView, 0, len(snap.Addresses))
	for _, a := range snap.Addresses {
		var view SavedAddressView
		if err := copier.Copy(&view, &a); err != nil {
			return nil, errs.Wrap(err, "failed to map address")
		}
		out = append(out, view)
	}
	return out, nil
}

func (q *catalogQueriesImpl) Stores(ctx context.Context, userID uuid.UUID) ([]StoreView, error) {
	snap := q.catalogs.SnapshotFor(ctx, userID)
	out := make([]StoreView, 0, len(snap.Stores))
	for _, s := range snap.Stores {
		var view StoreView
		if err := copier.Copy(&view, &s); err != nil {
			return nil, errs.Wrap(err, "failed to map store")
		}
		out = append(out, view)
	}
	return out, nil
}

func (q *catalogQueriesImpl) CurrentUser(ctx context.Context, userID uuid.UUID) (*CurrentUserView, error) {
	user, err := q.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to find user")
	}
	return &CurrentUserView{
		ID:       user.ID,
		Email:    user.Email,
		IsMember: user.IsMember,
		PlanID:   user.PlanID,
	}, nil
}

func serviceToView(s catalog.Service) ServiceView {
	view := ServiceView{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		BasePrice:   money(s.BasePrice),
	}
	for _, t := range s.SortedTiers() {
		tv := WeightTierView{MinKg: t.MinKg.String(), Price: money(t.Price)}
		if t.MaxKg != nil {
			max := t.MaxKg.String()
			tv.MaxKg = &max
		}
		view.WeightTiers = append(view.WeightTiers, tv)
	}
	for _, item := range s.SortedItems() {
		view.Items = append(view.Items, LineItemView{
			ID:           item.ID,
			Name:         item.Name,
			Price:        money(item.Price),
			DisplayOrder: item.DisplayOrder,
		})
	}
	return view
}
