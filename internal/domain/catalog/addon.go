package catalog

import "github.com/shopspring/decimal"

// AddOn is an optional extra service (teeth brushing, nail trim, ...).
type AddOn struct {
	ID                   int64
	Name                 string
	Description          string
	Price                decimal.Decimal
	Category             string
	MostPopular          bool
	IncludedInMembership bool
}

// EffectivePrice is zero for membership-included add-ons when the resolving
// context treats membership as active.
func (a AddOn) EffectivePrice(membershipActive bool) decimal.Decimal {
	if a.IncludedInMembership && membershipActive {
		return decimal.Zero
	}
	return a.Price
}
