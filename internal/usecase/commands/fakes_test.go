//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/commands"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*booking.Session
	saveErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*booking.Session)}
}

func (r *fakeSessionRepo) Save(_ context.Context, sess *booking.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions[sess.ID()] = sess
	return nil
}

func (r *fakeSessionRepo) Find(_ context.Context, id uuid.UUID) (*booking.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		return sess, nil
	}
	return nil, errs.ErrSessionNotFound
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type fakeCatalogProvider struct {
	snap *catalog.Snapshot
}

func (p *fakeCatalogProvider) SnapshotFor(context.Context, uuid.UUID) *catalog.Snapshot {
	return p.snap
}

type fakeUserRepo struct {
	user *shared.UserSnapshot
	err  error
}

func (r *fakeUserRepo) FindByID(context.Context, uuid.UUID) (*shared.UserSnapshot, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

type fakeBookingRepo struct {
	createErr error
	findErr   error
	record    *commands.BookingRecord

	createdID  uuid.UUID
	gotPayload booking.SubmitPayload
	gotTotal   decimal.Decimal
	gotDeposit decimal.Decimal
	creates    int
}

func (r *fakeBookingRepo) Create(_ context.Context, _ uuid.UUID, payload booking.SubmitPayload, total, deposit decimal.Decimal) (uuid.UUID, error) {
	r.creates++
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.createdID = uuid.New()
	r.gotPayload = payload
	r.gotTotal = total
	r.gotDeposit = deposit
	return r.createdID, nil
}

func (r *fakeBookingRepo) FindByID(context.Context, uuid.UUID) (*commands.BookingRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.record, nil
}

type fakePaymentGateway struct {
	url string
	err error

	gotBookingID uuid.UUID
	gotAmount    decimal.Decimal
}

func (g *fakePaymentGateway) CreateDepositSession(_ context.Context, bookingID uuid.UUID, amount decimal.Decimal) (string, error) {
	g.gotBookingID = bookingID
	g.gotAmount = amount
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

// testSnapshot mirrors a small but complete catalog: one tiered-free service,
// one add-on, one plan with projected coupons, one issued cash coupon, and a
// saved address and store to select against.
func testSnapshot() *catalog.Snapshot {
	exp := testNow.AddDate(0, 1, 0)
	return &catalog.Snapshot{
		Version: 1,
		Services: []catalog.Service{
			{ID: 5, Name: "Full Groom", BasePrice: dec("80")},
		},
		AddOns: []catalog.AddOn{
			{ID: 2, Name: "Nail Trim", Price: dec("15")},
		},
		Plans: []catalog.MembershipPlan{
			{ID: 1, Name: "Annual", Fee: dec("99"), DiscountRate: dec("0.9"), CouponCount: 2, CouponAmount: dec("5")},
		},
		Coupons: []catalog.Coupon{
			{
				Kind:      catalog.CouponIssued,
				ID:        7,
				Category:  catalog.CouponCategoryCash,
				Amount:    dec("5"),
				Status:    catalog.CouponStatusActive,
				ExpiresAt: &exp,
			},
		},
		Addresses: []catalog.Address{
			{ID: 11, Address: "88 Maple St", City: "Toronto", Province: "ON", PostalCode: "M1A 1A1"},
		},
		Stores: []catalog.StoreLocation{
			{ID: 3, Name: "Downtown", Address: "500 Queen St W", City: "Toronto", Province: "ON", PostalCode: "M5V 2B3"},
		},
	}
}
