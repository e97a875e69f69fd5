//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pawbook/internal/domain/catalog"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	services []catalog.Service
	addOns   []catalog.AddOn
	plans    []catalog.MembershipPlan
	stores   []catalog.StoreLocation
	coupons  map[uuid.UUID][]catalog.Coupon

	servicesErr error
	couponsErr  error

	serviceCalls int
	couponCalls  int
}

func (f *fakeFetcher) Services(context.Context) ([]catalog.Service, error) {
	f.serviceCalls++
	return f.services, f.servicesErr
}

func (f *fakeFetcher) AddOns(context.Context) ([]catalog.AddOn, error) {
	return f.addOns, nil
}

func (f *fakeFetcher) MembershipPlans(context.Context) ([]catalog.MembershipPlan, error) {
	return f.plans, nil
}

func (f *fakeFetcher) CouponsForUser(_ context.Context, userID uuid.UUID) ([]catalog.Coupon, error) {
	f.couponCalls++
	if f.couponsErr != nil {
		return nil, f.couponsErr
	}
	return f.coupons[userID], nil
}

func (f *fakeFetcher) AddressesForUser(context.Context, uuid.UUID) ([]catalog.Address, error) {
	return nil, nil
}

func (f *fakeFetcher) Stores(context.Context) ([]catalog.StoreLocation, error) {
	return f.stores, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func issuedCoupon(id int64, status catalog.CouponStatus) catalog.Coupon {
	exp := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	return catalog.Coupon{
		Kind:      catalog.CouponIssued,
		ID:        id,
		Category:  catalog.CouponCategoryCash,
		Amount:    decimal.NewFromInt(5),
		Status:    status,
		ExpiresAt: &exp,
	}
}

func TestSnapshotFor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reference catalogs load once", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			services: []catalog.Service{{ID: 1, Name: "Bath & Brush"}},
			coupons:  map[uuid.UUID][]catalog.Coupon{},
		}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		userID := uuid.New()
		snap := cache.SnapshotFor(ctx, userID)
		require.Len(t, snap.Services, 1)

		cache.SnapshotFor(ctx, userID)
		cache.SnapshotFor(ctx, uuid.New())
		assert.Equal(t, 1, fetcher.serviceCalls)
		assert.Equal(t, 3, fetcher.couponCalls)
	})

	t.Run("version bumps only when coupon content changes", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		fetcher := &fakeFetcher{
			coupons: map[uuid.UUID][]catalog.Coupon{
				userID: {issuedCoupon(1, catalog.CouponStatusActive)},
			},
		}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		first := cache.SnapshotFor(ctx, userID)
		second := cache.SnapshotFor(ctx, userID)
		assert.Equal(t, first.Version, second.Version)

		fetcher.coupons[userID] = []catalog.Coupon{
			issuedCoupon(1, catalog.CouponStatusActive),
			issuedCoupon(2, catalog.CouponStatusActive),
		}
		third := cache.SnapshotFor(ctx, userID)
		assert.Equal(t, first.Version+1, third.Version)
	})

	t.Run("status change alone bumps the version", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		fetcher := &fakeFetcher{
			coupons: map[uuid.UUID][]catalog.Coupon{
				userID: {issuedCoupon(1, catalog.CouponStatusActive)},
			},
		}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		first := cache.SnapshotFor(ctx, userID)
		fetcher.coupons[userID] = []catalog.Coupon{issuedCoupon(1, catalog.CouponStatusUsed)}
		second := cache.SnapshotFor(ctx, userID)
		assert.Equal(t, first.Version+1, second.Version)
	})

	t.Run("versions are tracked per user", func(t *testing.T) {
		t.Parallel()

		alice := uuid.New()
		bob := uuid.New()
		fetcher := &fakeFetcher{
			coupons: map[uuid.UUID][]catalog.Coupon{
				alice: {issuedCoupon(1, catalog.CouponStatusActive)},
			},
		}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		aliceSnap := cache.SnapshotFor(ctx, alice)
		fetcher.coupons[alice] = append(fetcher.coupons[alice], issuedCoupon(2, catalog.CouponStatusActive))
		cache.SnapshotFor(ctx, bob)
		aliceAgain := cache.SnapshotFor(ctx, alice)

		assert.Equal(t, aliceSnap.Version+1, aliceAgain.Version)
	})

	t.Run("coupon fetch failure keeps the last good state", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		fetcher := &fakeFetcher{
			coupons: map[uuid.UUID][]catalog.Coupon{
				userID: {issuedCoupon(1, catalog.CouponStatusActive)},
			},
		}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		first := cache.SnapshotFor(ctx, userID)
		require.Len(t, first.Coupons, 1)

		fetcher.couponsErr = errs.New("db down")
		during := cache.SnapshotFor(ctx, userID)
		assert.Equal(t, first.Version, during.Version)
		assert.Len(t, during.Coupons, 1)

		// recovery with unchanged content must not re-fire auto-selection
		fetcher.couponsErr = nil
		after := cache.SnapshotFor(ctx, userID)
		assert.Equal(t, first.Version, after.Version)
		assert.Len(t, after.Coupons, 1)
	})

	t.Run("fetch failures degrade to empty data", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			servicesErr: errs.New("db down"),
			couponsErr:  errs.New("db down"),
		}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		snap := cache.SnapshotFor(ctx, uuid.New())
		assert.Empty(t, snap.Services)
		assert.Empty(t, snap.Coupons)
	})

	t.Run("refresh reloads reference catalogs", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{coupons: map[uuid.UUID][]catalog.Coupon{}}
		cache := usecase.NewCatalogCache(fetcher, discardLogger())

		userID := uuid.New()
		cache.SnapshotFor(ctx, userID)
		cache.Refresh()
		cache.SnapshotFor(ctx, userID)
		assert.Equal(t, 2, fetcher.serviceCalls)
	})
}
