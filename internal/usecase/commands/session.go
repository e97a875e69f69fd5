package commands

import (
	"context"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"
	"pawbook/internal/pkg/clock"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// SessionCommands is the full mutation surface of the booking wizard. Every
// operation loads the session, syncs it against the latest catalog snapshot,
// applies the named mutation, and saves. Invalid selection attempts are
// silent no-ops by design; only missing sessions and storage failures error.
type SessionCommands interface {
	Create(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)

	NextStep(ctx context.Context, id uuid.UUID) error
	PreviousStep(ctx context.Context, id uuid.UUID) error
	JumpTo(ctx context.Context, id uuid.UUID, step booking.Step) error

	SetServiceType(ctx context.Context, id uuid.UUID, t booking.ServiceType) error
	SelectAddress(ctx context.Context, id uuid.UUID, addressID int64) error
	SelectStore(ctx context.Context, id uuid.UUID, storeID int64) error
	SetManualAddress(ctx context.Context, id uuid.UUID, addr booking.ManualAddress) error

	UpdatePet(ctx context.Context, id uuid.UUID, pet booking.PetProfile) error

	SelectService(ctx context.Context, id uuid.UUID, serviceID int64) error
	ToggleAddOn(ctx context.Context, id uuid.UUID, addOnID int64) error

	ChooseMembership(ctx context.Context, id uuid.UUID, planID int64) error
	DeclineMembership(ctx context.Context, id uuid.UUID) error
	SetMembershipDiscount(ctx context.Context, id uuid.UUID, on bool) error
	SetCashCoupon(ctx context.Context, id uuid.UUID, on bool) error

	SelectCouponCategory(ctx context.Context, id uuid.UUID, group couponing.GroupID) error
	ClearCouponCategory(ctx context.Context, id uuid.UUID, group couponing.GroupID) error
	SelectCoupon(ctx context.Context, id uuid.UUID, group couponing.GroupID, ref catalog.CouponRef) error
	DeselectCoupon(ctx context.Context, id uuid.UUID, ref catalog.CouponRef) error

	SelectDate(ctx context.Context, id uuid.UUID, date booking.Date) error
	TogglePeriod(ctx context.Context, id uuid.UUID, date booking.Date, period booking.Period) error
	RemoveSlot(ctx context.Context, id uuid.UUID, date booking.Date, period booking.Period) error

	SetNotes(ctx context.Context, id uuid.UUID, notes string) error
}

type sessionCommandsImpl struct {
	sessions SessionRepository
	catalogs CatalogProvider
	policy   booking.SlotPolicy
	clock    clock.Clock
}

func NewSessionCommands(
	sessions SessionRepository,
	catalogs CatalogProvider,
	policy booking.SlotPolicy,
	clk clock.Clock,
) SessionCommands {
	return &sessionCommandsImpl{
		sessions: sessions,
		catalogs: catalogs,
		policy:   policy,
		clock:    clk,
	}
}

func (uc *sessionCommandsImpl) Create(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	sess := booking.NewSession(userID, uc.policy, uc.clock.Now())

	snap := uc.catalogs.SnapshotFor(ctx, userID)
	sess.SyncCoupons(snap.Version, shared.GroupsFor(sess, snap), uc.clock.Now())

	if err := uc.sessions.Save(ctx, sess); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return sess.ID(), nil
}

// mutate runs one named operation against a loaded, catalog-synced session.
// The post-mutation sync prunes coupon selections the mutation invalidated
// (same snapshot version, so auto-selection cannot re-fire).
func (uc *sessionCommandsImpl) mutate(ctx context.Context, id uuid.UUID, fn func(sess *booking.Session, snap *catalog.Snapshot)) error {
	sess, err := uc.sessions.Find(ctx, id)
	if err != nil {
		return errs.Mark(err, errs.ErrSessionNotFound)
	}

	now := uc.clock.Now()
	snap := uc.catalogs.SnapshotFor(ctx, sess.UserID())
	sess.SyncCoupons(snap.Version, shared.GroupsFor(sess, snap), now)

	fn(sess, snap)

	sess.SyncCoupons(snap.Version, shared.GroupsFor(sess, snap), now)

	if err := uc.sessions.Save(ctx, sess); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *sessionCommandsImpl) NextStep(ctx context.Context, id uuid.UUID) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.NextStep(uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) PreviousStep(ctx context.Context, id uuid.UUID) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.PreviousStep(uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) JumpTo(ctx context.Context, id uuid.UUID, step booking.Step) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.JumpTo(step, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SetServiceType(ctx context.Context, id uuid.UUID, t booking.ServiceType) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.SetServiceType(t, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SelectAddress(ctx context.Context, id uuid.UUID, addressID int64) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		if _, ok := snap.AddressByID(addressID); !ok {
			return
		}
		sess.SelectAddress(addressID, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SelectStore(ctx context.Context, id uuid.UUID, storeID int64) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		if _, ok := snap.StoreByID(storeID); !ok {
			return
		}
		sess.SelectStore(storeID, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SetManualAddress(ctx context.Context, id uuid.UUID, addr booking.ManualAddress) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.SetManualAddress(addr, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) UpdatePet(ctx context.Context, id uuid.UUID, pet booking.PetProfile) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.UpdatePet(pet, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SelectService(ctx context.Context, id uuid.UUID, serviceID int64) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		if _, ok := snap.ServiceByID(serviceID); !ok {
			return
		}
		sess.SelectService(serviceID, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) ToggleAddOn(ctx context.Context, id uuid.UUID, addOnID int64) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		if _, ok := snap.AddOnByID(addOnID); !ok {
			return
		}
		sess.ToggleAddOn(addOnID, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) ChooseMembership(ctx context.Context, id uuid.UUID, planID int64) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		if _, ok := snap.PlanByID(planID); !ok {
			return
		}
		sess.ChooseMembership(planID, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) DeclineMembership(ctx context.Context, id uuid.UUID) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.DeclineMembership(uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SetMembershipDiscount(ctx context.Context, id uuid.UUID, on bool) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.SetMembershipDiscount(on, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SetCashCoupon(ctx context.Context, id uuid.UUID, on bool) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.SetCashCoupon(on, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SelectCouponCategory(ctx context.Context, id uuid.UUID, group couponing.GroupID) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		sess.SelectCouponCategory(shared.GroupsFor(sess, snap), group, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) ClearCouponCategory(ctx context.Context, id uuid.UUID, group couponing.GroupID) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		sess.ClearCouponCategory(shared.GroupsFor(sess, snap), group, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SelectCoupon(ctx context.Context, id uuid.UUID, group couponing.GroupID, ref catalog.CouponRef) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, snap *catalog.Snapshot) {
		sess.SelectCoupon(shared.GroupsFor(sess, snap), group, ref, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) DeselectCoupon(ctx context.Context, id uuid.UUID, ref catalog.CouponRef) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.DeselectCoupon(ref, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SelectDate(ctx context.Context, id uuid.UUID, date booking.Date) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.SelectDate(date, uc.clock.Today())
	})
}

func (uc *sessionCommandsImpl) TogglePeriod(ctx context.Context, id uuid.UUID, date booking.Date, period booking.Period) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.TogglePeriod(date, period, uc.clock.Today())
	})
}

func (uc *sessionCommandsImpl) RemoveSlot(ctx context.Context, id uuid.UUID, date booking.Date, period booking.Period) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.RemoveSlot(date, period, uc.clock.Now())
	})
}

func (uc *sessionCommandsImpl) SetNotes(ctx context.Context, id uuid.UUID, notes string) error {
	return uc.mutate(ctx, id, func(sess *booking.Session, _ *catalog.Snapshot) {
		sess.SetNotes(notes, uc.clock.Now())
	})
}
