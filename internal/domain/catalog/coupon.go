package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type CouponKind string

const (
	// CouponIssued is a persisted coupon the user already owns.
	CouponIssued CouponKind = "issued"
	// CouponProjected is a not-yet-issued coupon that only materializes if a
	// membership is purchased in the same session.
	CouponProjected CouponKind = "projected"
)

type CouponCategory string

const (
	CouponCategoryCash           CouponCategory = "cash"
	CouponCategoryInvite         CouponCategory = "invite"
	CouponCategoryBirthday       CouponCategory = "birthday"
	CouponCategoryGift           CouponCategory = "gift"
	CouponCategoryCustom         CouponCategory = "custom"
	CouponCategoryMembership     CouponCategory = "membership"
	CouponCategoryMembershipGift CouponCategory = "membership_gift"
	CouponCategoryInviteeGift    CouponCategory = "invitee_gift"
)

type CouponStatus string

const (
	CouponStatusActive  CouponStatus = "active"
	CouponStatusPending CouponStatus = "pending"
	CouponStatusUsed    CouponStatus = "used"
	CouponStatusExpired CouponStatus = "expired"
)

// Coupon is a tagged variant: issued coupons carry a positive ID, projected
// coupons carry a ProjectedKey and no ID.
type Coupon struct {
	Kind         CouponKind
	ID           int64
	ProjectedKey string
	Category     CouponCategory
	Type         string
	Amount       decimal.Decimal
	Status       CouponStatus
	ExpiresAt    *time.Time
	ValidFrom    *time.Time
}

func (c Coupon) IsProjected() bool {
	return c.Kind == CouponProjected
}

// Usable reports whether the coupon can contribute a discount: issued coupons
// must be active, projected ones are pending by definition.
func (c Coupon) Usable() bool {
	if c.IsProjected() {
		return c.Status == CouponStatusPending
	}
	return c.Status == CouponStatusActive
}

func (c Coupon) Ref() CouponRef {
	if c.IsProjected() {
		return CouponRef{Key: c.ProjectedKey}
	}
	return CouponRef{ID: c.ID}
}

// CouponRef identifies a coupon in a selection without overloading the id
// sign: exactly one of ID (issued) or Key (projected) is set.
type CouponRef struct {
	ID  int64
	Key string
}

func (r CouponRef) IsProjected() bool {
	return r.Key != ""
}

func (r CouponRef) IsZero() bool {
	return r.ID == 0 && r.Key == ""
}

func (r CouponRef) String() string {
	if r.IsProjected() {
		return "projected:" + r.Key
	}
	return fmt.Sprintf("issued:%d", r.ID)
}
