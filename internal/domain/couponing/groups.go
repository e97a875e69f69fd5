package couponing

import (
	"pawbook/internal/domain/catalog"
)

// GroupID names the mutually-exclusive selection groups coupons are
// partitioned into. Cash and Invite are checkbox-style general buckets;
// Birthday and SpecialGift have radio semantics.
type GroupID string

const (
	GroupCash        GroupID = "cash"
	GroupInvite      GroupID = "invite"
	GroupBirthday    GroupID = "birthday"
	GroupSpecialGift GroupID = "special_gift"
)

// Groups holds the classified candidate pools. Each slice preserves the
// original catalog order; tie-breaks rely on that.
type Groups struct {
	Cash        []catalog.Coupon
	Invite      []catalog.Coupon
	Birthday    []catalog.Coupon
	SpecialGift []catalog.Coupon
}

func (g Groups) Bucket(id GroupID) []catalog.Coupon {
	switch id {
	case GroupCash:
		return g.Cash
	case GroupInvite:
		return g.Invite
	case GroupBirthday:
		return g.Birthday
	case GroupSpecialGift:
		return g.SpecialGift
	default:
		return nil
	}
}

func (g Groups) All() []catalog.Coupon {
	all := make([]catalog.Coupon, 0, len(g.Cash)+len(g.Invite)+len(g.Birthday)+len(g.SpecialGift))
	all = append(all, g.Cash...)
	all = append(all, g.Invite...)
	all = append(all, g.Birthday...)
	all = append(all, g.SpecialGift...)
	return all
}

// Contains reports whether ref identifies a member of the given group.
func (g Groups) Contains(id GroupID, ref catalog.CouponRef) bool {
	for _, c := range g.Bucket(id) {
		if c.Ref() == ref {
			return true
		}
	}
	return false
}

var generalCategories = map[catalog.CouponCategory]bool{
	catalog.CouponCategoryCash:           true,
	catalog.CouponCategoryMembership:     true,
	catalog.CouponCategoryMembershipGift: true,
	catalog.CouponCategoryInviteeGift:    true,
	catalog.CouponCategoryInvite:         true,
}

var inviteCategories = map[catalog.CouponCategory]bool{
	catalog.CouponCategoryInvite:      true,
	catalog.CouponCategoryInviteeGift: true,
}

// Classify partitions the usable coupons into their selection groups.
// Projected coupons enter the pools only while membership is being purchased
// in this session; toggling membership off removes them from consideration.
func Classify(coupons []catalog.Coupon, projected []catalog.Coupon, includeProjected bool) Groups {
	pool := make([]catalog.Coupon, 0, len(coupons)+len(projected))
	pool = append(pool, coupons...)
	if includeProjected {
		pool = append(pool, projected...)
	}

	var g Groups
	for _, c := range pool {
		if !c.Usable() {
			continue
		}
		switch {
		case generalCategories[c.Category] || generalCategories[catalog.CouponCategory(c.Type)]:
			if inviteCategories[c.Category] || inviteCategories[catalog.CouponCategory(c.Type)] {
				g.Invite = append(g.Invite, c)
			} else {
				g.Cash = append(g.Cash, c)
			}
		case c.Category == catalog.CouponCategoryBirthday || catalog.CouponCategory(c.Type) == catalog.CouponCategoryBirthday:
			g.Birthday = append(g.Birthday, c)
		default:
			// remaining gift/custom coupons
			g.SpecialGift = append(g.SpecialGift, c)
		}
	}
	return g
}
