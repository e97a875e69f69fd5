//go:build unit

package booking_test

import (
	"testing"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"
	"pawbook/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Addresses: []catalog.Address{
			{ID: 11, Address: "88 Maple St", City: "Toronto", Province: "ON", PostalCode: "M1A 1A1"},
		},
		Stores: []catalog.StoreLocation{
			{ID: 3, Name: "Downtown", Address: "500 Queen St W", City: "Toronto", Province: "ON", PostalCode: "M5V 2B3"},
		},
	}
}

func TestBuildSubmitPayload(t *testing.T) {
	t.Parallel()

	t.Run("requires a selected service", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		_, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.ErrorIs(t, err, booking.ErrNoServiceSelected)
	})

	t.Run("saved address wins over store and manual entry", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.SetManualAddress(booking.ManualAddress{Address: "12 Birch Ave", City: "Ottawa"}, baseNow)
		sess.SelectAddress(11, baseNow)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		require.NotNil(t, payload.Address.ID)
		assert.EqualValues(t, 11, *payload.Address.ID)
		assert.Equal(t, "88 Maple St", payload.Address.Address)
		assert.Equal(t, booking.ServiceTypeMobile, payload.Address.ServiceType)
	})

	t.Run("store address used for in-store visits", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.SetServiceType(booking.ServiceTypeInStore, baseNow)
		sess.SelectStore(3, baseNow)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		assert.Nil(t, payload.Address.ID)
		assert.Equal(t, "500 Queen St W", payload.Address.Address)
		require.NotNil(t, payload.StoreID)
		assert.EqualValues(t, 3, *payload.StoreID)
	})

	t.Run("store id omitted for mobile visits", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.SelectStore(3, baseNow)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		assert.Nil(t, payload.StoreID)
	})

	t.Run("manual address is the fallback", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.SetManualAddress(booking.ManualAddress{
			Address: "12 Birch Ave", City: "Ottawa", Province: "ON", PostalCode: "K1A 0B1",
		}, baseNow)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		assert.Nil(t, payload.Address.ID)
		assert.Equal(t, "12 Birch Ave", payload.Address.Address)
		assert.Equal(t, "K1A 0B1", payload.Address.PostalCode)
	})

	t.Run("unknown saved address falls through to manual entry", func(t *testing.T) {
		t.Parallel()

		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.SetManualAddress(booking.ManualAddress{Address: "12 Birch Ave"}, baseNow)
		sess.SelectAddress(999, baseNow)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		assert.Nil(t, payload.Address.ID)
		assert.Equal(t, "12 Birch Ave", payload.Address.Address)
	})

	t.Run("projected coupons never leak persisted ids", func(t *testing.T) {
		t.Parallel()

		projected := catalog.Coupon{
			Kind:         catalog.CouponProjected,
			ProjectedKey: "membership-1",
			Category:     catalog.CouponCategoryMembership,
			Amount:       decimal.NewFromInt(10),
			Status:       catalog.CouponStatusPending,
		}
		groups := couponing.Groups{Cash: []catalog.Coupon{issuedCashCoupon(7), projected}}

		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.ChooseMembership(1, baseNow)
		sess.SelectCouponCategory(groups, couponing.GroupCash, baseNow)
		require.Len(t, sess.SelectedCoupons(), 2)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		assert.Equal(t, []int64{7}, payload.SelectedCouponIDs)
		assert.True(t, payload.OpenMembership)
	})

	t.Run("carries pet and wizard selections", func(t *testing.T) {
		t.Parallel()

		weight := decimal.NewFromInt(22)
		sess := newTestSession(t)
		sess.SelectService(5, baseNow)
		sess.ToggleAddOn(2, baseNow)
		sess.ToggleAddOn(4, baseNow)
		sess.UpdatePet(booking.PetProfile{
			Name:       "Mochi",
			Type:       booking.PetTypeDog,
			Breed:      "Shiba Inu",
			Weight:     &weight,
			WeightUnit: pricing.UnitLbs,
			Behavior:   booking.BehaviorAnxious,
		}, baseNow)
		sess.SetMembershipDiscount(true, baseNow)
		sess.TogglePeriod(dateOn(t, 2), booking.PeriodMorning, baseNow)
		sess.SetNotes("ring the side door", baseNow)

		payload, err := sess.BuildSubmitPayload(payloadSnapshot())
		require.NoError(t, err)
		assert.EqualValues(t, 5, payload.ServiceID)
		assert.Equal(t, []int64{2, 4}, payload.AddOnIDs)
		assert.Equal(t, "Mochi", payload.Pet.Name)
		assert.Equal(t, pricing.UnitLbs, payload.Pet.WeightUnit)
		require.NotNil(t, payload.WeightValue)
		assert.True(t, payload.WeightValue.Equal(weight))
		assert.True(t, payload.UseSpecialCoupon)
		assert.True(t, payload.UseOfficialCoupon)
		assert.Equal(t, []booking.TimeSlot{{Date: dateOn(t, 2), Period: booking.PeriodMorning}}, payload.PreferredTimeSlots)
		assert.Equal(t, "ring the side door", payload.Notes)
	})
}
