package usecase

import (
	"context"
	"log/slog"
	"sync"

	"pawbook/internal/domain/catalog"

	"github.com/google/uuid"
)

// CatalogFetcher is the abstract contract over the catalog backend. Each
// method corresponds to one fire-once data fetch of the wizard.
type CatalogFetcher interface {
	Services(ctx context.Context) ([]catalog.Service, error)
	AddOns(ctx context.Context) ([]catalog.AddOn, error)
	MembershipPlans(ctx context.Context) ([]catalog.MembershipPlan, error)
	CouponsForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Coupon, error)
	AddressesForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Address, error)
	Stores(ctx context.Context) ([]catalog.StoreLocation, error)
}

// CatalogCache assembles per-user snapshots of reference data. Reference
// catalogs load once and are reused; coupons are re-read per request and the
// snapshot version is bumped only when their content signature changes, so
// the resolver's auto-selection has a trustworthy run-once guard.
type CatalogCache struct {
	fetcher CatalogFetcher
	logger  *slog.Logger

	mu       sync.Mutex
	loaded   bool
	services []catalog.Service
	addOns   []catalog.AddOn
	plans    []catalog.MembershipPlan
	stores   []catalog.StoreLocation

	userState map[uuid.UUID]*userCouponState
}

type userCouponState struct {
	signature string
	version   uint64
	coupons   []catalog.Coupon
}

func NewCatalogCache(fetcher CatalogFetcher, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		fetcher:   fetcher,
		logger:    logger,
		userState: make(map[uuid.UUID]*userCouponState),
	}
}

// SnapshotFor builds the read-only snapshot a session resolves against.
// A failed fetch degrades rather than failing the request: reference data
// falls back to empty slices, coupons to the last successfully fetched
// state, and resolvers return zero/empty results until the data lands.
func (c *CatalogCache) SnapshotFor(ctx context.Context, userID uuid.UUID) *catalog.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		c.loadGlobalLocked(ctx)
	}

	state, ok := c.userState[userID]
	if !ok {
		state = &userCouponState{}
		c.userState[userID] = state
	}

	// A failed fetch is not new coupon content: keep serving the last good
	// state unchanged so the resolver's run-once guard stays trustworthy and
	// standing selections survive the outage.
	coupons, err := c.fetcher.CouponsForUser(ctx, userID)
	if err != nil {
		c.logger.Warn("failed to load coupons", "user_id", userID, "error", err)
	} else if sig := catalog.CouponSignature(coupons); sig != state.signature {
		state.signature = sig
		state.version++
		state.coupons = coupons
	}

	addresses, err := c.fetcher.AddressesForUser(ctx, userID)
	if err != nil {
		c.logger.Warn("failed to load addresses", "user_id", userID, "error", err)
		addresses = nil
	}

	return &catalog.Snapshot{
		Version:   state.version,
		Services:  c.services,
		AddOns:    c.addOns,
		Plans:     c.plans,
		Coupons:   state.coupons,
		Addresses: addresses,
		Stores:    c.stores,
	}
}

// Refresh drops the cached reference catalogs so the next snapshot re-reads
// them.
func (c *CatalogCache) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

func (c *CatalogCache) loadGlobalLocked(ctx context.Context) {
	var err error
	if c.services, err = c.fetcher.Services(ctx); err != nil {
		c.logger.Warn("failed to load services", "error", err)
		c.services = nil
	}
	if c.addOns, err = c.fetcher.AddOns(ctx); err != nil {
		c.logger.Warn("failed to load add-ons", "error", err)
		c.addOns = nil
	}
	if c.plans, err = c.fetcher.MembershipPlans(ctx); err != nil {
		c.logger.Warn("failed to load membership plans", "error", err)
		c.plans = nil
	}
	if c.stores, err = c.fetcher.Stores(ctx); err != nil {
		c.logger.Warn("failed to load stores", "error", err)
		c.stores = nil
	}
	c.loaded = true
}
