package queries

import (
	"context"
	"log/slog"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/pricing"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionReader is the read-side slice of the session store.
type SessionReader interface {
	Find(ctx context.Context, id uuid.UUID) (*booking.Session, error)
}

type CatalogProvider interface {
	SnapshotFor(ctx context.Context, userID uuid.UUID) *catalog.Snapshot
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error)
}

type SessionQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
	Quote(ctx context.Context, id uuid.UUID) (*QuoteView, error)
	CouponGroups(ctx context.Context, id uuid.UUID) (*CouponGroupsView, error)
}

type sessionQueriesImpl struct {
	sessions SessionReader
	catalogs CatalogProvider
	users    UserReader
}

func NewSessionQueries(sessions SessionReader, catalogs CatalogProvider, users UserReader) SessionQueries {
	return &sessionQueriesImpl{sessions: sessions, catalogs: catalogs, users: users}
}

func (q *sessionQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	sess, err := q.sessions.Find(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to find session")
	}
	return sessionToView(sess), nil
}

func (q *sessionQueriesImpl) Quote(ctx context.Context, id uuid.UUID) (*QuoteView, error) {
	sess, err := q.sessions.Find(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to find session")
	}
	snap := q.catalogs.SnapshotFor(ctx, sess.UserID())
	quote := shared.QuoteFor(sess, snap, q.isMember(ctx, sess.UserID()))
	return quoteToView(quote), nil
}

func (q *sessionQueriesImpl) CouponGroups(ctx context.Context, id uuid.UUID) (*CouponGroupsView, error) {
	sess, err := q.sessions.Find(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to find session")
	}
	snap := q.catalogs.SnapshotFor(ctx, sess.UserID())
	groups := shared.GroupsFor(sess, snap)
	selected := sess.SelectedCoupons()
	return &CouponGroupsView{
		Cash:        bucketToView(groups.Cash, selected),
		Invite:      bucketToView(groups.Invite, selected),
		Birthday:    bucketToView(groups.Birthday, selected),
		SpecialGift: bucketToView(groups.SpecialGift, selected),
	}, nil
}

// isMember degrades to non-member when the user lookup fails; the quote is
// advisory and must not break the wizard over a profile read.
func (q *sessionQueriesImpl) isMember(ctx context.Context, userID uuid.UUID) bool {
	user, err := q.users.FindByID(ctx, userID)
	if err != nil {
		slog.Warn("user lookup failed, pricing as non-member", "user_id", userID, "error", err)
		return false
	}
	return user.IsMember
}

func sessionToView(sess *booking.Session) *SessionView {
	view := &SessionView{
		ID:                    sess.ID(),
		UserID:                sess.UserID(),
		CurrentStep:           int(sess.Step()),
		ServiceType:           string(sess.ServiceType()),
		AddressID:             sess.AddressID(),
		StoreID:               sess.StoreID(),
		Pet:                   petToView(sess.Pet()),
		ServiceID:             sess.ServiceID(),
		AddOnIDs:              sess.AddOnIDs(),
		MembershipDecision:    string(sess.Membership()),
		MembershipPlanID:      sess.MembershipPlanID(),
		UseMembership:         sess.UseMembership(),
		UseMembershipDiscount: sess.UseMembershipDiscount(),
		UseCashCoupon:         sess.UseCashCoupon(),
		SelectedCoupons:       refsToView(sess.SelectedCoupons()),
		TimeSlots:             slotsToView(sess.Slots()),
		Notes:                 sess.Notes(),
		HasFormData:           sess.HasFormData(),
		UpdatedAt:             sess.UpdatedAt(),
	}
	if manual := sess.ManualAddr(); manual != (booking.ManualAddress{}) {
		view.ManualAddress = &AddressView{
			Address:    manual.Address,
			City:       manual.City,
			Province:   manual.Province,
			PostalCode: manual.PostalCode,
		}
	}
	if view.AddOnIDs == nil {
		view.AddOnIDs = []int64{}
	}
	return view
}

func petToView(pet booking.PetProfile) PetView {
	view := PetView{
		Name:              pet.Name,
		Type:              string(pet.Type),
		Breed:             pet.Breed,
		MixedBreed:        pet.MixedBreed,
		PreciseType:       pet.PreciseType,
		Birthday:          pet.Birthday,
		Gender:            string(pet.Gender),
		WeightUnit:        string(pet.WeightUnit),
		CoatCondition:     string(pet.CoatCondition),
		Behavior:          string(pet.Behavior),
		GroomingFrequency: string(pet.GroomingFrequency),
		SpecialNotes:      pet.SpecialNotes,
	}
	if pet.Weight != nil {
		w := pet.Weight.String()
		view.Weight = &w
	}
	return view
}

func refsToView(refs []catalog.CouponRef) []CouponRefView {
	out := make([]CouponRefView, 0, len(refs))
	for _, r := range refs {
		out = append(out, refToView(r))
	}
	return out
}

func refToView(ref catalog.CouponRef) CouponRefView {
	if ref.IsProjected() {
		return CouponRefView{ProjectedKey: ref.Key}
	}
	id := ref.ID
	return CouponRefView{ID: &id}
}

func slotsToView(slots []booking.TimeSlot) []TimeSlotView {
	out := make([]TimeSlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, TimeSlotView{Date: s.Date.String(), Period: string(s.Period)})
	}
	return out
}

func quoteToView(q pricing.Quote) *QuoteView {
	percentOff := decimal.NewFromInt(1).Sub(q.DiscountRate).Mul(decimal.NewFromInt(100))
	return &QuoteView{
		PackagePrice:       money(q.PackagePrice),
		AddOnsPrice:        money(q.AddOnsPrice),
		OriginalTotal:      money(q.OriginalTotal),
		PercentOff:         percentOff.Round(0).String(),
		DiscountedPackage:  money(q.DiscountedPackage),
		DiscountedAddOns:   money(q.DiscountedAddOns),
		DiscountedSubtotal: money(q.DiscountedSubtotal),
		CashCoupon:         money(q.CashCoupon),
		CouponTotal:        money(q.CouponTotal),
		MembershipFee:      money(q.MembershipFee),
		FinalTotal:         money(q.FinalTotal),
		Savings:            money(q.Savings),
	}
}

// money rounds for display only; all arithmetic upstream stays exact.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func bucketToView(bucket []catalog.Coupon, selected []catalog.CouponRef) []CouponView {
	out := make([]CouponView, 0, len(bucket))
	for _, c := range bucket {
		out = append(out, couponToView(c, isSelected(selected, c.Ref())))
	}
	return out
}

func couponToView(c catalog.Coupon, selected bool) CouponView {
	return CouponView{
		Ref:       refToView(c.Ref()),
		Category:  string(c.Category),
		Type:      c.Type,
		Amount:    money(c.Amount),
		Status:    string(c.Status),
		Projected: c.IsProjected(),
		Selected:  selected,
		ExpiresAt: c.ExpiresAt,
		ValidFrom: c.ValidFrom,
	}
}

func isSelected(selected []catalog.CouponRef, ref catalog.CouponRef) bool {
	for _, r := range selected {
		if r == ref {
			return true
		}
	}
	return false
}
