//go:build unit

package booking_test

import (
	"testing"
	"time"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *booking.Session {
	t.Helper()
	return booking.NewSession(uuid.New(), booking.DefaultSlotPolicy(), baseNow)
}

func dateOn(t *testing.T, offsetDays int) booking.Date {
	t.Helper()
	return booking.NewDate(baseNow.AddDate(0, 0, offsetDays))
}

func TestStepNavigation(t *testing.T) {
	t.Parallel()

	t.Run("next step stops at review", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		require.Equal(t, booking.StepAddress, sess.Step())

		for i := 0; i < 10; i++ {
			sess.NextStep(baseNow)
		}
		assert.Equal(t, booking.StepReview, sess.Step())
	})

	t.Run("previous step stops at address", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.PreviousStep(baseNow)
		assert.Equal(t, booking.StepAddress, sess.Step())

		sess.NextStep(baseNow)
		sess.PreviousStep(baseNow)
		assert.Equal(t, booking.StepAddress, sess.Step())
	})

	t.Run("jump clamps out-of-range targets", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			target booking.Step
			want   booking.Step
		}{
			{"below range", booking.Step(0), booking.StepAddress},
			{"in range", booking.StepMembership, booking.StepMembership},
			{"above range", booking.Step(9), booking.StepReview},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				sess := newTestSession(t)
				sess.JumpTo(tt.target, baseNow)
				assert.Equal(t, tt.want, sess.Step())
			})
		}
	})

	t.Run("submission requires review step", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		assert.False(t, sess.CanSubmit())
		sess.JumpTo(booking.StepReview, baseNow)
		assert.True(t, sess.CanSubmit())
	})
}

func TestAddressSelection(t *testing.T) {
	t.Parallel()

	t.Run("saved address and store are mutually exclusive", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectAddress(11, baseNow)
		require.NotNil(t, sess.AddressID())
		assert.EqualValues(t, 11, *sess.AddressID())

		sess.SelectStore(3, baseNow)
		assert.Nil(t, sess.AddressID())
		require.NotNil(t, sess.StoreID())
		assert.EqualValues(t, 3, *sess.StoreID())
	})

	t.Run("manual address clears saved address only", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectStore(3, baseNow)
		sess.SelectAddress(11, baseNow)
		sess.SetManualAddress(booking.ManualAddress{Address: "12 Birch Ave", City: "Toronto"}, baseNow)

		assert.Nil(t, sess.AddressID())
		assert.Equal(t, "12 Birch Ave", sess.ManualAddr().Address)
	})

	t.Run("invalid service type is ignored", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SetServiceType(booking.ServiceTypeInStore, baseNow)
		sess.SetServiceType(booking.ServiceType("drive_through"), baseNow)
		assert.Equal(t, booking.ServiceTypeInStore, sess.ServiceType())
	})
}

func TestAddOnToggle(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t)
	sess.ToggleAddOn(1, baseNow)
	sess.ToggleAddOn(2, baseNow)
	assert.Equal(t, []int64{1, 2}, sess.AddOnIDs())

	sess.ToggleAddOn(1, baseNow)
	assert.Equal(t, []int64{2}, sess.AddOnIDs())

	sess.SelectService(5, baseNow)
	sess.SelectService(7, baseNow)
	require.NotNil(t, sess.ServiceID())
	assert.EqualValues(t, 7, *sess.ServiceID())
}

func TestDiscountTogglesAreCoupled(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t)
	assert.False(t, sess.UseMembershipDiscount())
	assert.False(t, sess.UseCashCoupon())

	sess.SetMembershipDiscount(true, baseNow)
	assert.True(t, sess.UseMembershipDiscount())
	assert.True(t, sess.UseCashCoupon())

	sess.SetCashCoupon(false, baseNow)
	assert.False(t, sess.UseMembershipDiscount())
	assert.False(t, sess.UseCashCoupon())
}

func TestMembershipDecision(t *testing.T) {
	t.Parallel()

	t.Run("declining clears plan and toggles", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.ChooseMembership(2, baseNow)
		sess.SetMembershipDiscount(true, baseNow)
		require.True(t, sess.UseMembership())
		require.True(t, sess.IncludeProjectedCoupons())

		sess.DeclineMembership(baseNow)
		assert.False(t, sess.UseMembership())
		assert.False(t, sess.IncludeProjectedCoupons())
		assert.Nil(t, sess.MembershipPlanID())
		assert.False(t, sess.UseMembershipDiscount())
		assert.False(t, sess.UseCashCoupon())
	})

	t.Run("membership active per step", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.ChooseMembership(2, baseNow)

		assert.True(t, sess.MembershipActiveFor(booking.StepPackage, true))
		assert.False(t, sess.MembershipActiveFor(booking.StepPackage, false))
		assert.True(t, sess.MembershipActiveFor(booking.StepMembership, false))
		assert.True(t, sess.MembershipActiveFor(booking.StepReview, false))

		sess.DeclineMembership(baseNow)
		assert.False(t, sess.MembershipActiveFor(booking.StepReview, false))
	})
}

func TestSlotSelection(t *testing.T) {
	t.Parallel()

	t.Run("toggle caps selections", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		for i := 0; i < 3; i++ {
			sess.TogglePeriod(dateOn(t, i+1), booking.PeriodMorning, baseNow)
			sess.TogglePeriod(dateOn(t, i+1), booking.PeriodAfternoon, baseNow)
		}
		require.Len(t, sess.Slots(), 6)

		sess.TogglePeriod(dateOn(t, 10), booking.PeriodMorning, baseNow)
		assert.Len(t, sess.Slots(), 6)
	})

	t.Run("toggle removes existing pair even at cap", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		for i := 0; i < 6; i++ {
			sess.TogglePeriod(dateOn(t, i+1), booking.PeriodMorning, baseNow)
		}
		require.Len(t, sess.Slots(), 6)

		sess.TogglePeriod(dateOn(t, 1), booking.PeriodMorning, baseNow)
		assert.Len(t, sess.Slots(), 5)
		assert.NotContains(t, sess.Slots(), booking.TimeSlot{Date: dateOn(t, 1), Period: booking.PeriodMorning})
	})

	t.Run("dates outside window rejected", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.TogglePeriod(dateOn(t, -1), booking.PeriodMorning, baseNow)
		assert.Empty(t, sess.Slots())

		sess.TogglePeriod(dateOn(t, 366), booking.PeriodMorning, baseNow)
		assert.Empty(t, sess.Slots())

		sess.TogglePeriod(dateOn(t, 0), booking.PeriodMorning, baseNow)
		sess.TogglePeriod(dateOn(t, 365), booking.PeriodAfternoon, baseNow)
		assert.Len(t, sess.Slots(), 2)
	})

	t.Run("reselecting active date clears it and its slots", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		day := dateOn(t, 3)
		other := dateOn(t, 4)

		sess.SelectDate(day, baseNow)
		require.NotNil(t, sess.ActiveDate())
		sess.TogglePeriod(day, booking.PeriodMorning, baseNow)
		sess.TogglePeriod(day, booking.PeriodAfternoon, baseNow)
		sess.TogglePeriod(other, booking.PeriodMorning, baseNow)
		require.Len(t, sess.Slots(), 3)

		sess.SelectDate(day, baseNow)
		assert.Nil(t, sess.ActiveDate())
		assert.Equal(t, []booking.TimeSlot{{Date: other, Period: booking.PeriodMorning}}, sess.Slots())
	})

	t.Run("select date outside window is a no-op", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectDate(dateOn(t, 400), baseNow)
		assert.Nil(t, sess.ActiveDate())
	})

	t.Run("remove slot always allowed", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		day := dateOn(t, 2)
		sess.TogglePeriod(day, booking.PeriodMorning, baseNow)
		require.Len(t, sess.Slots(), 1)

		sess.RemoveSlot(day, booking.PeriodAfternoon, baseNow)
		assert.Len(t, sess.Slots(), 1)

		sess.RemoveSlot(day, booking.PeriodMorning, baseNow)
		assert.Empty(t, sess.Slots())
	})
}

func issuedCashCoupon(id int64) catalog.Coupon {
	exp := baseNow.AddDate(0, 2, 0)
	return catalog.Coupon{
		Kind:      catalog.CouponIssued,
		ID:        id,
		Category:  catalog.CouponCategoryCash,
		Amount:    decimal.NewFromInt(5),
		Status:    catalog.CouponStatusActive,
		ExpiresAt: &exp,
	}
}

func TestSyncCoupons(t *testing.T) {
	t.Parallel()

	groups := couponing.Groups{Cash: []catalog.Coupon{issuedCashCoupon(1), issuedCashCoupon(2)}}

	t.Run("auto-select fires once per version", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SyncCoupons(1, groups, baseNow)
		require.Equal(t, []catalog.CouponRef{{ID: 1}}, sess.SelectedCoupons())

		// manual deselection survives a re-sync at the same version
		sess.DeselectCoupon(catalog.CouponRef{ID: 1}, baseNow)
		sess.SyncCoupons(1, groups, baseNow)
		assert.Empty(t, sess.SelectedCoupons())
	})

	t.Run("version bump re-runs auto-selection", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SyncCoupons(1, groups, baseNow)
		sess.DeselectCoupon(catalog.CouponRef{ID: 1}, baseNow)

		sess.SyncCoupons(2, groups, baseNow)
		assert.Equal(t, []catalog.CouponRef{{ID: 1}}, sess.SelectedCoupons())
	})

	t.Run("stale selections pruned", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SyncCoupons(1, groups, baseNow)
		sess.SelectCoupon(groups, couponing.GroupCash, catalog.CouponRef{ID: 2}, baseNow)
		require.Equal(t, []catalog.CouponRef{{ID: 2}}, sess.SelectedCoupons())

		shrunk := couponing.Groups{Cash: []catalog.Coupon{issuedCashCoupon(1)}}
		sess.SyncCoupons(1, shrunk, baseNow)
		assert.Empty(t, sess.SelectedCoupons())
	})
}

func TestReset(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t)
	created := sess.CreatedAt()
	id := sess.ID()
	userID := sess.UserID()

	sess.JumpTo(booking.StepReview, baseNow)
	sess.SelectAddress(1, baseNow)
	sess.SelectService(5, baseNow)
	sess.ToggleAddOn(2, baseNow)
	sess.ChooseMembership(1, baseNow)
	sess.SetNotes("gentle with the dryer", baseNow)
	sess.TogglePeriod(dateOn(t, 2), booking.PeriodMorning, baseNow)
	require.True(t, sess.HasFormData())

	later := baseNow.Add(time.Hour)
	sess.Reset(later)

	assert.Equal(t, id, sess.ID())
	assert.Equal(t, userID, sess.UserID())
	assert.Equal(t, created, sess.CreatedAt())
	assert.Equal(t, later, sess.UpdatedAt())
	assert.Equal(t, booking.StepAddress, sess.Step())
	assert.Nil(t, sess.ServiceID())
	assert.Empty(t, sess.AddOnIDs())
	assert.Empty(t, sess.Slots())
	assert.Empty(t, sess.Notes())
	assert.Equal(t, booking.MembershipUndecided, sess.Membership())
	assert.False(t, sess.HasFormData())

	// the slot policy survives the reset
	sess.TogglePeriod(dateOn(t, 2), booking.PeriodMorning, later)
	assert.Len(t, sess.Slots(), 1)
}

func TestHasFormData(t *testing.T) {
	t.Parallel()

	sess := newTestSession(t)
	assert.False(t, sess.HasFormData())

	sess.SetNotes("short nails please", baseNow)
	assert.True(t, sess.HasFormData())
}
