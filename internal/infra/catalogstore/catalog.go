package catalogstore

import (
	"context"

	"pawbook/internal/domain/catalog"
	"pawbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CatalogStore reads the grooming reference catalogs. All monetary columns
// are selected as text and parsed into decimals to avoid float round trips.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func (s *CatalogStore) Services(ctx context.Context) ([]catalog.Service, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), base_price::text
		FROM services
		WHERE is_active
		ORDER BY display_order, id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query services", err)
	}
	defer rows.Close()

	var services []catalog.Service
	index := make(map[int64]int)
	for rows.Next() {
		var (
			svc   catalog.Service
			price string
		)
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		if svc.BasePrice, err = decimal.NewFromString(price); err != nil {
			return nil, infra.WrapRepoErr("invalid service price", err)
		}
		index[svc.ID] = len(services)
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read services", err)
	}

	if err := s.loadWeightTiers(ctx, services, index); err != nil {
		return nil, err
	}
	if err := s.loadServiceItems(ctx, services, index); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *CatalogStore) loadWeightTiers(ctx context.Context, services []catalog.Service, index map[int64]int) error {
	rows, err := s.pool.Query(ctx, `
		SELECT service_id, min_weight_kg::text, max_weight_kg::text, price::text
		FROM service_weight_tiers
		ORDER BY service_id, min_weight_kg`)
	if err != nil {
		return infra.WrapRepoErr("failed to query weight tiers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			serviceID        int64
			minStr, priceStr string
			maxStr           *string
		)
		if err := rows.Scan(&serviceID, &minStr, &maxStr, &priceStr); err != nil {
			return infra.WrapRepoErr("failed to scan weight tier", err)
		}
		i, ok := index[serviceID]
		if !ok {
			continue
		}
		tier := catalog.WeightTier{}
		if tier.MinKg, err = decimal.NewFromString(minStr); err != nil {
			return infra.WrapRepoErr("invalid tier min weight", err)
		}
		if maxStr != nil {
			max, err := decimal.NewFromString(*maxStr)
			if err != nil {
				return infra.WrapRepoErr("invalid tier max weight", err)
			}
			tier.MaxKg = &max
		}
		if tier.Price, err = decimal.NewFromString(priceStr); err != nil {
			return infra.WrapRepoErr("invalid tier price", err)
		}
		services[i].WeightTiers = append(services[i].WeightTiers, tier)
	}
	return rows.Err()
}

func (s *CatalogStore) loadServiceItems(ctx context.Context, services []catalog.Service, index map[int64]int) error {
	rows, err := s.pool.Query(ctx, `
		SELECT service_id, id, name, price::text, display_order
		FROM service_items
		ORDER BY service_id, display_order, id`)
	if err != nil {
		return infra.WrapRepoErr("failed to query service items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			serviceID int64
			item      catalog.LineItem
			priceStr  string
		)
		if err := rows.Scan(&serviceID, &item.ID, &item.Name, &priceStr, &item.DisplayOrder); err != nil {
			return infra.WrapRepoErr("failed to scan service item", err)
		}
		i, ok := index[serviceID]
		if !ok {
			continue
		}
		if item.Price, err = decimal.NewFromString(priceStr); err != nil {
			return infra.WrapRepoErr("invalid item price", err)
		}
		services[i].Items = append(services[i].Items, item)
	}
	return rows.Err()
}

func (s *CatalogStore) AddOns(ctx context.Context) ([]catalog.AddOn, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), price::text,
		       COALESCE(category, ''), most_popular, included_in_membership
		FROM add_ons
		WHERE is_active
		ORDER BY display_order, id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query add-ons", err)
	}
	defer rows.Close()

	var addOns []catalog.AddOn
	for rows.Next() {
		var (
			a        catalog.AddOn
			priceStr string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &priceStr,
			&a.Category, &a.MostPopular, &a.IncludedInMembership); err != nil {
			return nil, infra.WrapRepoErr("failed to scan add-on", err)
		}
		if a.Price, err = decimal.NewFromString(priceStr); err != nil {
			return nil, infra.WrapRepoErr("invalid add-on price", err)
		}
		addOns = append(addOns, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read add-ons", err)
	}
	return addOns, nil
}

func (s *CatalogStore) MembershipPlans(ctx context.Context) ([]catalog.MembershipPlan, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), fee::text,
		       discount_rate::text, coupon_count, coupon_amount::text
		FROM membership_plans
		WHERE is_active
		ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query membership plans", err)
	}
	defer rows.Close()

	var plans []catalog.MembershipPlan
	index := make(map[int64]int)
	for rows.Next() {
		var (
			p                      catalog.MembershipPlan
			feeStr, rateStr, cpStr string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &feeStr,
			&rateStr, &p.CouponCount, &cpStr); err != nil {
			return nil, infra.WrapRepoErr("failed to scan membership plan", err)
		}
		if p.Fee, err = decimal.NewFromString(feeStr); err != nil {
			return nil, infra.WrapRepoErr("invalid plan fee", err)
		}
		if p.DiscountRate, err = decimal.NewFromString(rateStr); err != nil {
			return nil, infra.WrapRepoErr("invalid plan discount rate", err)
		}
		if p.CouponAmount, err = decimal.NewFromString(cpStr); err != nil {
			return nil, infra.WrapRepoErr("invalid plan coupon amount", err)
		}
		index[p.ID] = len(plans)
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read membership plans", err)
	}

	if err := s.loadPlanBenefits(ctx, plans, index); err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *CatalogStore) loadPlanBenefits(ctx context.Context, plans []catalog.MembershipPlan, index map[int64]int) error {
	rows, err := s.pool.Query(ctx, `
		SELECT plan_id, content, display_order, is_highlight
		FROM plan_benefits
		ORDER BY plan_id, display_order`)
	if err != nil {
		return infra.WrapRepoErr("failed to query plan benefits", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			planID int64
			b      catalog.Benefit
		)
		if err := rows.Scan(&planID, &b.Content, &b.DisplayOrder, &b.Highlight); err != nil {
			return infra.WrapRepoErr("failed to scan plan benefit", err)
		}
		if i, ok := index[planID]; ok {
			plans[i].Benefits = append(plans[i].Benefits, b)
		}
	}
	return rows.Err()
}

func (s *CatalogStore) CouponsForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Coupon, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, category, COALESCE(type, ''), amount::text, status, expires_at, valid_from
		FROM coupons
		WHERE user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query coupons", err)
	}
	defer rows.Close()

	var coupons []catalog.Coupon
	for rows.Next() {
		var (
			c                catalog.Coupon
			category, status string
			amountStr        string
		)
		if err := rows.Scan(&c.ID, &category, &c.Type, &amountStr, &status, &c.ExpiresAt, &c.ValidFrom); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon", err)
		}
		c.Kind = catalog.CouponIssued
		c.Category = catalog.CouponCategory(category)
		c.Status = catalog.CouponStatus(status)
		if c.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, infra.WrapRepoErr("invalid coupon amount", err)
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read coupons", err)
	}
	return coupons, nil
}

func (s *CatalogStore) AddressesForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Address, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, address, city, province, postal_code, is_default
		FROM user_addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query addresses", err)
	}
	defer rows.Close()

	var addresses []catalog.Address
	for rows.Next() {
		var a catalog.Address
		if err := rows.Scan(&a.ID, &a.Address, &a.City, &a.Province, &a.PostalCode, &a.IsDefault); err != nil {
			return nil, infra.WrapRepoErr("failed to scan address", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read addresses", err)
	}
	return addresses, nil
}

func (s *CatalogStore) Stores(ctx context.Context) ([]catalog.StoreLocation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, address, city, province, postal_code
		FROM stores
		WHERE is_active
		ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query stores", err)
	}
	defer rows.Close()

	var stores []catalog.StoreLocation
	for rows.Next() {
		var st catalog.StoreLocation
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.City, &st.Province, &st.PostalCode); err != nil {
			return nil, infra.WrapRepoErr("failed to scan store", err)
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stores", err)
	}
	return stores, nil
}
