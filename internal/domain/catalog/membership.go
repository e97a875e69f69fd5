package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// MembershipPlan is an annual plan sold during the booking flow.
// DiscountRate is a retention fraction: 0.9 means the member pays 90%,
// i.e. 10% off.
type MembershipPlan struct {
	ID           int64
	Name         string
	Description  string
	Fee          decimal.Decimal
	DiscountRate decimal.Decimal
	CouponCount  int
	CouponAmount decimal.Decimal
	Benefits     []Benefit
}

type Benefit struct {
	Content      string
	DisplayOrder int
	Highlight    bool
}

// PercentOff converts the retention rate to the displayed "percent off".
func (p MembershipPlan) PercentOff() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.DiscountRate).Mul(oneHundred)
}

func (p MembershipPlan) HasDiscount() bool {
	return p.DiscountRate.LessThan(decimal.NewFromInt(1))
}

func (p MembershipPlan) SortedBenefits() []Benefit {
	benefits := make([]Benefit, len(p.Benefits))
	copy(benefits, p.Benefits)
	sort.SliceStable(benefits, func(i, j int) bool {
		return benefits[i].DisplayOrder < benefits[j].DisplayOrder
	})
	return benefits
}

// ProjectedCoupons are the cash coupons the plan would grant if purchased in
// the current session. They have no persisted identity until the membership
// is actually bought, so each carries a stable projected key instead of an id.
func (p MembershipPlan) ProjectedCoupons() []Coupon {
	coupons := make([]Coupon, 0, p.CouponCount)
	for i := 0; i < p.CouponCount; i++ {
		coupons = append(coupons, Coupon{
			Kind:         CouponProjected,
			ProjectedKey: fmt.Sprintf("plan:%d:cash:%d", p.ID, i+1),
			Category:     CouponCategoryCash,
			Type:         "membership_grant",
			Amount:       p.CouponAmount,
			Status:       CouponStatusPending,
		})
	}
	return coupons
}
