package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Service is a grooming package offered by the business. Pricing is either a
// flat BasePrice or a weight-tier table; when tiers exist BasePrice doubles as
// the fallback for unknown weights.
type Service struct {
	ID          int64
	Name        string
	Description string
	BasePrice   decimal.Decimal
	WeightTiers []WeightTier
	Items       []LineItem
}

// WeightTier prices the service for weights in [MinKg, MaxKg]. A nil MaxKg
// leaves the tier open-ended.
type WeightTier struct {
	MinKg decimal.Decimal
	MaxKg *decimal.Decimal
	Price decimal.Decimal
}

// LineItem is a displayed component of a service package with its own price.
type LineItem struct {
	ID           int64
	Name         string
	Price        decimal.Decimal
	DisplayOrder int
}

func (s Service) HasTieredPricing() bool {
	return len(s.WeightTiers) > 0
}

func (t WeightTier) Contains(weightKg decimal.Decimal) bool {
	if weightKg.LessThan(t.MinKg) {
		return false
	}
	if t.MaxKg != nil && weightKg.GreaterThan(*t.MaxKg) {
		return false
	}
	return true
}

// SortedItems returns line items ordered by display order.
func (s Service) SortedItems() []LineItem {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DisplayOrder < items[j].DisplayOrder
	})
	return items
}

// SortedTiers returns weight tiers ordered by ascending minimum weight.
func (s Service) SortedTiers() []WeightTier {
	tiers := make([]WeightTier, len(s.WeightTiers))
	copy(tiers, s.WeightTiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinKg.LessThan(tiers[j].MinKg)
	})
	return tiers
}
