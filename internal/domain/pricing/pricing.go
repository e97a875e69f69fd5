package pricing

import (
	"pawbook/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// 1 lb = 0.453592 kg
var lbsToKg = decimal.RequireFromString("0.453592")

// NormalizeToKg converts a weight to kilograms. A false return means the
// unit is unknown and tier lookup should fall back to the base price.
func NormalizeToKg(value decimal.Decimal, unit WeightUnit) (decimal.Decimal, bool) {
	switch unit {
	case UnitKg:
		return value, true
	case UnitLbs:
		return value.Mul(lbsToKg), true
	default:
		return decimal.Zero, false
	}
}

// ServicePrice resolves the package price for a service. Flat-priced
// services return BasePrice. Tiered services return the exact listed price
// of the tier containing the normalized weight; absent or unmatched weights
// fall back to BasePrice. Same inputs always yield the same price.
func ServicePrice(svc catalog.Service, weight *decimal.Decimal, unit WeightUnit) decimal.Decimal {
	if !svc.HasTieredPricing() || weight == nil {
		return svc.BasePrice
	}

	weightKg, ok := NormalizeToKg(*weight, unit)
	if !ok {
		return svc.BasePrice
	}

	for _, tier := range svc.SortedTiers() {
		if tier.Contains(weightKg) {
			return tier.Price
		}
	}
	return svc.BasePrice
}

// AddOnSubtotal sums the effective price of each selected add-on.
// Membership-included add-ons are free when the context treats membership
// as active. Unknown ids contribute nothing.
func AddOnSubtotal(addOns []catalog.AddOn, selectedIDs []int64, membershipActive bool) decimal.Decimal {
	total := decimal.Zero
	for _, id := range selectedIDs {
		for _, a := range addOns {
			if a.ID == id {
				total = total.Add(a.EffectivePrice(membershipActive))
				break
			}
		}
	}
	return total
}

// QuoteInput carries everything a price derivation needs. All amounts stay
// in full precision; rounding to two decimal places happens at the display
// boundary only.
type QuoteInput struct {
	Service    *catalog.Service
	Weight     *decimal.Decimal
	WeightUnit WeightUnit

	AddOns      []catalog.AddOn
	SelectedIDs []int64

	// MembershipActive zeroes membership-included add-ons. Which flag feeds
	// it depends on the step: "is already a member" on the package step,
	// "is buying membership this session" from the upsell step onward.
	MembershipActive bool

	// DiscountRate is the retention fraction (0.9 = 10% off); 1 disables
	// the percentage discount.
	DiscountRate decimal.Decimal

	// CashCoupon is the flat per-plan deduction, applied once after the
	// percentage discount.
	CashCoupon decimal.Decimal

	// CouponTotal is the summed amount of the coupons selected on the
	// review step.
	CouponTotal decimal.Decimal

	// MembershipFee is added after the zero-clamp when membership is being
	// purchased this session.
	MembershipFee decimal.Decimal
}

type Quote struct {
	PackagePrice       decimal.Decimal
	AddOnsPrice        decimal.Decimal
	OriginalTotal      decimal.Decimal
	DiscountRate       decimal.Decimal
	DiscountedPackage  decimal.Decimal
	DiscountedAddOns   decimal.Decimal
	DiscountedSubtotal decimal.Decimal
	CashCoupon         decimal.Decimal
	CouponTotal        decimal.Decimal
	MembershipFee      decimal.Decimal
	FinalTotal         decimal.Decimal
	Savings            decimal.Decimal
}

var one = decimal.NewFromInt(1)

// BuildQuote derives the full price breakdown. The percentage discount is
// applied to package and add-on subtotals independently, coupon deductions
// come off afterwards and never compound with it, and the total is clamped
// at zero before the membership fee is added.
func BuildQuote(in QuoteInput) Quote {
	q := Quote{
		DiscountRate:  in.DiscountRate,
		CashCoupon:    in.CashCoupon,
		CouponTotal:   in.CouponTotal,
		MembershipFee: in.MembershipFee,
	}
	if q.DiscountRate.IsZero() {
		q.DiscountRate = one
	}

	if in.Service != nil {
		q.PackagePrice = ServicePrice(*in.Service, in.Weight, in.WeightUnit)
	}
	q.AddOnsPrice = AddOnSubtotal(in.AddOns, in.SelectedIDs, in.MembershipActive)
	q.OriginalTotal = q.PackagePrice.Add(q.AddOnsPrice)

	q.DiscountedPackage = q.PackagePrice.Mul(q.DiscountRate)
	q.DiscountedAddOns = q.AddOnsPrice.Mul(q.DiscountRate)
	q.DiscountedSubtotal = q.DiscountedPackage.Add(q.DiscountedAddOns)

	total := q.DiscountedSubtotal.Sub(q.CashCoupon).Sub(q.CouponTotal)
	if total.IsNegative() {
		total = decimal.Zero
	}
	q.FinalTotal = total.Add(q.MembershipFee)

	q.Savings = q.OriginalTotal.Sub(total)
	return q
}
