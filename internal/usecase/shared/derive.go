package shared

import (
	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"
	"pawbook/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserSnapshot is the slice of the current user the booking flow needs.
type UserSnapshot struct {
	ID        uuid.UUID
	Email     string
	IsMember  bool
	PlanID    *int64
	FirstName string
	LastName  string
}

// SessionPlan resolves the membership plan a session prices against: the
// explicitly chosen plan, falling back to the plan offered on the upsell
// step.
func SessionPlan(sess *booking.Session, snap *catalog.Snapshot) (catalog.MembershipPlan, bool) {
	if id := sess.MembershipPlanID(); id != nil {
		return snap.PlanByID(*id)
	}
	return snap.DefaultPlan()
}

// ProjectedCoupons lists the coupons the session's plan would grant if the
// membership is purchased this session. Empty unless the user opted in.
func ProjectedCoupons(sess *booking.Session, snap *catalog.Snapshot) []catalog.Coupon {
	if !sess.IncludeProjectedCoupons() {
		return nil
	}
	plan, ok := SessionPlan(sess, snap)
	if !ok {
		return nil
	}
	return plan.ProjectedCoupons()
}

// GroupsFor classifies the snapshot's coupons for this session, admitting
// projected coupons only while membership is being purchased.
func GroupsFor(sess *booking.Session, snap *catalog.Snapshot) couponing.Groups {
	return couponing.Classify(snap.Coupons, ProjectedCoupons(sess, snap), sess.IncludeProjectedCoupons())
}

// QuoteFor derives the price breakdown for the session's current step.
// Before the review step the cash-coupon toggle contributes the plan's flat
// amount; at review the selected coupons carry the deduction and the
// membership fee joins the total.
func QuoteFor(sess *booking.Session, snap *catalog.Snapshot, userIsMember bool) pricing.Quote {
	in := pricing.QuoteInput{
		SelectedIDs:      sess.AddOnIDs(),
		AddOns:           snap.AddOns,
		MembershipActive: sess.MembershipActiveFor(sess.Step(), userIsMember),
		DiscountRate:     decimal.NewFromInt(1),
	}

	if id := sess.ServiceID(); id != nil {
		if svc, ok := snap.ServiceByID(*id); ok {
			in.Service = &svc
		}
	}
	pet := sess.Pet()
	in.Weight = pet.Weight
	in.WeightUnit = pet.WeightUnit

	plan, hasPlan := SessionPlan(sess, snap)
	if hasPlan && sess.UseMembershipDiscount() && plan.HasDiscount() {
		in.DiscountRate = plan.DiscountRate
	}

	if sess.Step() >= booking.StepReview {
		groups := GroupsFor(sess, snap)
		in.CouponTotal = couponing.DiscountTotal(sess.SelectedCoupons(), groups)
		if sess.UseMembership() && hasPlan {
			in.MembershipFee = plan.Fee
		}
	} else if hasPlan && sess.UseCashCoupon() {
		in.CashCoupon = plan.CouponAmount
	}

	return pricing.BuildQuote(in)
}
