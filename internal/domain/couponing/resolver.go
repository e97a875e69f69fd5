package couponing

import (
	"time"

	"pawbook/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

const nearExpiryWindow = 30 * 24 * time.Hour

// BestGeneral picks the default coupon for a general bucket: issued coupons
// beat projected ones, among issued the soonest non-nil expiry wins (nil
// expiries sort last), and remaining ties keep the original list order.
func BestGeneral(bucket []catalog.Coupon) (catalog.Coupon, bool) {
	best := -1
	for i, c := range bucket {
		if best < 0 {
			best = i
			continue
		}
		if generalLess(c, bucket[best]) {
			best = i
		}
	}
	if best < 0 {
		return catalog.Coupon{}, false
	}
	return bucket[best], true
}

func generalLess(a, b catalog.Coupon) bool {
	if a.IsProjected() != b.IsProjected() {
		return !a.IsProjected()
	}
	switch {
	case a.ExpiresAt == nil && b.ExpiresAt == nil:
		return false // keep list order
	case a.ExpiresAt == nil:
		return false
	case b.ExpiresAt == nil:
		return true
	default:
		return a.ExpiresAt.Before(*b.ExpiresAt)
	}
}

// BestSpecialGift uses a different ordering: coupons expiring within 30 days
// come first (soonest first), then the rest by earliest valid-from.
func BestSpecialGift(bucket []catalog.Coupon, now time.Time) (catalog.Coupon, bool) {
	best := -1
	for i, c := range bucket {
		if best < 0 {
			best = i
			continue
		}
		if specialLess(c, bucket[best], now) {
			best = i
		}
	}
	if best < 0 {
		return catalog.Coupon{}, false
	}
	return bucket[best], true
}

func specialLess(a, b catalog.Coupon, now time.Time) bool {
	aNear := nearExpiry(a, now)
	bNear := nearExpiry(b, now)
	if aNear != bNear {
		return aNear
	}
	if aNear {
		return a.ExpiresAt.Before(*b.ExpiresAt)
	}
	switch {
	case a.ValidFrom == nil && b.ValidFrom == nil:
		return false
	case a.ValidFrom == nil:
		return false
	case b.ValidFrom == nil:
		return true
	default:
		return a.ValidFrom.Before(*b.ValidFrom)
	}
}

func nearExpiry(c catalog.Coupon, now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Sub(now) <= nearExpiryWindow && c.ExpiresAt.After(now)
}

// SelectCategory checks a general bucket's checkbox: any previous selection
// from that bucket is dropped and the best candidate takes its place. An
// empty bucket leaves the selection untouched.
func SelectCategory(selected []catalog.CouponRef, groups Groups, id GroupID) []catalog.CouponRef {
	best, ok := BestGeneral(groups.Bucket(id))
	if !ok {
		return selected
	}
	out := removeGroup(selected, groups, id)
	return append(out, best.Ref())
}

// ClearCategory unchecks a bucket, removing every selected id that belongs
// to it.
func ClearCategory(selected []catalog.CouponRef, groups Groups, id GroupID) []catalog.CouponRef {
	return removeGroup(selected, groups, id)
}

// SelectOne applies radio semantics within a group: all other ids from the
// group are removed atomically before the new one is added. A ref that is
// not in the group's candidate pool is silently rejected.
func SelectOne(selected []catalog.CouponRef, groups Groups, id GroupID, ref catalog.CouponRef) []catalog.CouponRef {
	if !groups.Contains(id, ref) {
		return selected
	}
	out := removeGroup(selected, groups, id)
	return append(out, ref)
}

// Deselect removes a single ref regardless of group.
func Deselect(selected []catalog.CouponRef, ref catalog.CouponRef) []catalog.CouponRef {
	out := selected[:0:0]
	for _, r := range selected {
		if r != ref {
			out = append(out, r)
		}
	}
	return out
}

// AutoSelect populates the default selection for the cash and invite buckets
// and the special-gift group. Callers must gate it with the snapshot version
// so it runs once per distinct catalog snapshot and never overwrites a later
// manual deselection.
func AutoSelect(selected []catalog.CouponRef, groups Groups, now time.Time) []catalog.CouponRef {
	out := selected
	if !hasSelectionIn(out, groups, GroupCash) {
		out = SelectCategory(out, groups, GroupCash)
	}
	if !hasSelectionIn(out, groups, GroupInvite) {
		out = SelectCategory(out, groups, GroupInvite)
	}
	if !hasSelectionIn(out, groups, GroupSpecialGift) {
		if best, ok := BestSpecialGift(groups.SpecialGift, now); ok {
			out = SelectOne(out, groups, GroupSpecialGift, best.Ref())
		}
	}
	return out
}

// Prune drops selected refs that no longer resolve to any candidate pool,
// e.g. projected coupons after membership was declined. Stale refs already
// contribute no discount; pruning just keeps the selection tidy.
func Prune(selected []catalog.CouponRef, groups Groups) []catalog.CouponRef {
	out := selected[:0:0]
	for _, r := range selected {
		if inAnyGroup(groups, r) {
			out = append(out, r)
		}
	}
	return out
}

// DiscountTotal sums the amounts of the selected coupons that still resolve.
func DiscountTotal(selected []catalog.CouponRef, groups Groups) decimal.Decimal {
	total := decimal.Zero
	for _, r := range selected {
		for _, c := range groups.All() {
			if c.Ref() == r {
				total = total.Add(c.Amount)
				break
			}
		}
	}
	return total
}

func hasSelectionIn(selected []catalog.CouponRef, groups Groups, id GroupID) bool {
	for _, r := range selected {
		if groups.Contains(id, r) {
			return true
		}
	}
	return false
}

func inAnyGroup(groups Groups, ref catalog.CouponRef) bool {
	for _, c := range groups.All() {
		if c.Ref() == ref {
			return true
		}
	}
	return false
}

func removeGroup(selected []catalog.CouponRef, groups Groups, id GroupID) []catalog.CouponRef {
	out := selected[:0:0]
	for _, r := range selected {
		if !groups.Contains(id, r) {
			out = append(out, r)
		}
	}
	return out
}
