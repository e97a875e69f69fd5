//go:build unit

package couponing_test

import (
	"testing"
	"time"

	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func issued(id int64, category catalog.CouponCategory, amount string) catalog.Coupon {
	return catalog.Coupon{
		Kind:     catalog.CouponIssued,
		ID:       id,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Status:   catalog.CouponStatusActive,
	}
}

func projected(key string, amount string) catalog.Coupon {
	return catalog.Coupon{
		Kind:         catalog.CouponProjected,
		ProjectedKey: key,
		Category:     catalog.CouponCategoryCash,
		Type:         "membership_grant",
		Amount:       decimal.RequireFromString(amount),
		Status:       catalog.CouponStatusPending,
	}
}

func expiring(c catalog.Coupon, at time.Time) catalog.Coupon {
	c.ExpiresAt = &at
	return c
}

func validFrom(c catalog.Coupon, at time.Time) catalog.Coupon {
	c.ValidFrom = &at
	return c
}

func TestClassify(t *testing.T) {
	t.Parallel()

	coupons := []catalog.Coupon{
		issued(1, catalog.CouponCategoryCash, "5"),
		issued(2, catalog.CouponCategoryInvite, "10"),
		issued(3, catalog.CouponCategoryBirthday, "15"),
		issued(4, catalog.CouponCategoryGift, "20"),
		issued(5, catalog.CouponCategoryCustom, "25"),
		{Kind: catalog.CouponIssued, ID: 6, Category: catalog.CouponCategoryCash, Amount: decimal.NewFromInt(5), Status: catalog.CouponStatusUsed},
	}
	proj := []catalog.Coupon{projected("plan:1:cash:0", "5")}

	g := couponing.Classify(coupons, proj, true)
	assert.Len(t, g.Cash, 2, "issued cash + projected")
	assert.Len(t, g.Invite, 1)
	assert.Len(t, g.Birthday, 1)
	assert.Len(t, g.SpecialGift, 2, "gift and custom fall through")

	// used coupons never classify
	for _, c := range g.All() {
		assert.NotEqual(t, int64(6), c.ID)
	}

	// membership off: projected coupons vanish
	g = couponing.Classify(coupons, proj, false)
	assert.Len(t, g.Cash, 1)
}

func TestClassifyByType(t *testing.T) {
	t.Parallel()

	// classification also honors the type field when the category is opaque
	c := issued(7, catalog.CouponCategoryCustom, "5")
	c.Type = "invitee_gift"

	g := couponing.Classify([]catalog.Coupon{c}, nil, false)
	assert.Len(t, g.Invite, 1)
	assert.Empty(t, g.SpecialGift)

	b := issued(8, catalog.CouponCategoryGift, "10")
	b.Type = "birthday"

	g = couponing.Classify([]catalog.Coupon{b}, nil, false)
	assert.Len(t, g.Birthday, 1)
	assert.Empty(t, g.SpecialGift)
}

func TestBestGeneral(t *testing.T) {
	t.Parallel()

	soon := expiring(issued(2, catalog.CouponCategoryCash, "5"), baseTime.Add(48*time.Hour))
	later := expiring(issued(3, catalog.CouponCategoryCash, "5"), baseTime.Add(30*24*time.Hour))
	never := issued(1, catalog.CouponCategoryCash, "5")
	proj := expiring(projected("p1", "5"), baseTime.Add(time.Hour))

	t.Run("soonest expiry wins", func(t *testing.T) {
		best, ok := couponing.BestGeneral([]catalog.Coupon{never, later, soon})
		require.True(t, ok)
		assert.Equal(t, int64(2), best.ID)
	})

	t.Run("issued beats projected even with later expiry", func(t *testing.T) {
		best, ok := couponing.BestGeneral([]catalog.Coupon{proj, later})
		require.True(t, ok)
		assert.Equal(t, int64(3), best.ID)
	})

	t.Run("nil expiries keep list order", func(t *testing.T) {
		other := issued(9, catalog.CouponCategoryCash, "5")
		best, ok := couponing.BestGeneral([]catalog.Coupon{never, other})
		require.True(t, ok)
		assert.Equal(t, int64(1), best.ID)
	})

	t.Run("empty bucket", func(t *testing.T) {
		_, ok := couponing.BestGeneral(nil)
		assert.False(t, ok)
	})
}

func TestBestSpecialGift(t *testing.T) {
	t.Parallel()

	nearA := expiring(issued(1, catalog.CouponCategoryGift, "10"), baseTime.Add(10*24*time.Hour))
	nearB := expiring(issued(2, catalog.CouponCategoryGift, "10"), baseTime.Add(5*24*time.Hour))
	far := expiring(validFrom(issued(3, catalog.CouponCategoryGift, "10"), baseTime.Add(-72*time.Hour)), baseTime.Add(90*24*time.Hour))
	old := validFrom(issued(4, catalog.CouponCategoryGift, "10"), baseTime.Add(-30*24*time.Hour))

	t.Run("near expiry beats everything, soonest first", func(t *testing.T) {
		best, ok := couponing.BestSpecialGift([]catalog.Coupon{far, nearA, nearB}, baseTime)
		require.True(t, ok)
		assert.Equal(t, int64(2), best.ID)
	})

	t.Run("without near expiry, earliest valid-from wins", func(t *testing.T) {
		best, ok := couponing.BestSpecialGift([]catalog.Coupon{far, old}, baseTime)
		require.True(t, ok)
		assert.Equal(t, int64(4), best.ID)
	})
}

func TestSelectOneRadioSemantics(t *testing.T) {
	t.Parallel()

	a := issued(1, catalog.CouponCategoryBirthday, "10")
	b := issued(2, catalog.CouponCategoryBirthday, "15")
	groups := couponing.Classify([]catalog.Coupon{a, b}, nil, false)

	selected := couponing.SelectOne(nil, groups, couponing.GroupBirthday, a.Ref())
	require.Equal(t, []catalog.CouponRef{a.Ref()}, selected)

	// switching replaces atomically
	selected = couponing.SelectOne(selected, groups, couponing.GroupBirthday, b.Ref())
	assert.Equal(t, []catalog.CouponRef{b.Ref()}, selected)

	// a ref outside the group's pool is rejected
	stranger := issued(99, catalog.CouponCategoryBirthday, "5")
	selected = couponing.SelectOne(selected, groups, couponing.GroupBirthday, stranger.Ref())
	assert.Equal(t, []catalog.CouponRef{b.Ref()}, selected)
}

func TestSelectCategoryAndClear(t *testing.T) {
	t.Parallel()

	cash := issued(1, catalog.CouponCategoryCash, "5")
	invite := issued(2, catalog.CouponCategoryInvite, "10")
	groups := couponing.Classify([]catalog.Coupon{cash, invite}, nil, false)

	selected := couponing.SelectCategory(nil, groups, couponing.GroupCash)
	require.Equal(t, []catalog.CouponRef{cash.Ref()}, selected)

	// independent buckets stack
	selected = couponing.SelectCategory(selected, groups, couponing.GroupInvite)
	assert.Len(t, selected, 2)

	// clearing one bucket leaves the other alone
	selected = couponing.ClearCategory(selected, groups, couponing.GroupCash)
	assert.Equal(t, []catalog.CouponRef{invite.Ref()}, selected)

	// selecting into an empty bucket is a no-op
	selected = couponing.SelectCategory(selected, groups, couponing.GroupBirthday)
	assert.Equal(t, []catalog.CouponRef{invite.Ref()}, selected)
}

func TestAutoSelect(t *testing.T) {
	t.Parallel()

	cash := issued(1, catalog.CouponCategoryCash, "5")
	invite := issued(2, catalog.CouponCategoryInvite, "10")
	gift := issued(3, catalog.CouponCategoryGift, "20")
	birthday := issued(4, catalog.CouponCategoryBirthday, "15")
	groups := couponing.Classify([]catalog.Coupon{cash, invite, gift, birthday}, nil, false)

	selected := couponing.AutoSelect(nil, groups, baseTime)
	assert.ElementsMatch(t, []catalog.CouponRef{cash.Ref(), invite.Ref(), gift.Ref()}, selected,
		"birthday is never auto-selected")

	// a manual deselection is not overwritten by a second pass
	selected = couponing.Deselect(selected, cash.Ref())
	again := couponing.AutoSelect(selected, groups, baseTime)
	assert.ElementsMatch(t, []catalog.CouponRef{cash.Ref(), invite.Ref(), gift.Ref()}, again,
		"re-running auto-select re-fills empty buckets; version gating prevents this in sessions")
}

func TestPruneAndDiscountTotal(t *testing.T) {
	t.Parallel()

	cash := issued(1, catalog.CouponCategoryCash, "5")
	proj := projected("plan:1:cash:0", "5")

	withProjected := couponing.Classify([]catalog.Coupon{cash}, []catalog.Coupon{proj}, true)
	selected := couponing.AutoSelect(nil, withProjected, baseTime)

	total := couponing.DiscountTotal(selected, withProjected)
	assert.True(t, total.Equal(decimal.NewFromInt(5)))

	// membership declined: projected refs no longer resolve
	withoutProjected := couponing.Classify([]catalog.Coupon{cash}, []catalog.Coupon{proj}, false)
	selected = append(selected, proj.Ref())

	total = couponing.DiscountTotal(selected, withoutProjected)
	assert.True(t, total.Equal(decimal.NewFromInt(5)), "stale refs contribute nothing")

	pruned := couponing.Prune(selected, withoutProjected)
	assert.Equal(t, []catalog.CouponRef{cash.Ref()}, pruned)
}
