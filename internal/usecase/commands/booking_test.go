//go:build unit

package commands_test

import (
	"context"
	"testing"

	"pawbook/internal/domain/booking"
	"pawbook/internal/pkg/clock"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/commands"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	sessions *fakeSessionRepo
	bookings *fakeBookingRepo
	payments *fakePaymentGateway
	sessUC   commands.SessionCommands
	uc       commands.BookingCommands
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	snap := testSnapshot()
	sessions := newFakeSessionRepo()
	bookings := &fakeBookingRepo{}
	payments := &fakePaymentGateway{url: "https://checkout.example.com/cs_123"}
	catalogs := &fakeCatalogProvider{snap: snap}
	users := &fakeUserRepo{user: &shared.UserSnapshot{ID: uuid.New(), Email: "pat@example.com"}}
	clk := clock.NewMockClock(testNow)

	return &bookingFixture{
		sessions: sessions,
		bookings: bookings,
		payments: payments,
		sessUC:   commands.NewSessionCommands(sessions, catalogs, booking.DefaultSlotPolicy(), clk),
		uc:       commands.NewBookingCommands(sessions, users, catalogs, bookings, payments, dec("20.00"), clk),
	}
}

// reviewReadySession drives a session to the review step with a service
// chosen, ready for submission.
func (f *bookingFixture) reviewReadySession(t *testing.T) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	id := createSession(t, f.sessUC)
	require.NoError(t, f.sessUC.SelectAddress(ctx, id, 11))
	require.NoError(t, f.sessUC.SelectService(ctx, id, 5))
	require.NoError(t, f.sessUC.JumpTo(ctx, id, booking.StepReview))
	return id
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing session", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		_, err := f.uc.Submit(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("rejected before the review step", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		id := createSession(t, f.sessUC)

		_, err := f.uc.Submit(ctx, id)
		require.ErrorIs(t, err, errs.ErrSubmitNotAtReview)
		assert.Zero(t, f.bookings.creates)
	})

	t.Run("rejected without a service", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		id := createSession(t, f.sessUC)
		require.NoError(t, f.sessUC.JumpTo(ctx, id, booking.StepReview))

		_, err := f.uc.Submit(ctx, id)
		require.ErrorIs(t, err, errs.ErrNoServiceSelected)
	})

	t.Run("creates the booking and resets the session", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		id := f.reviewReadySession(t)

		bookingID, err := f.uc.Submit(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, f.bookings.createdID, bookingID)

		// base price 80 minus the auto-selected 5-dollar cash coupon
		assert.Equal(t, "75.00", f.bookings.gotTotal.StringFixed(2))
		assert.Equal(t, "20.00", f.bookings.gotDeposit.StringFixed(2))
		assert.EqualValues(t, 5, f.bookings.gotPayload.ServiceID)
		assert.Equal(t, []int64{7}, f.bookings.gotPayload.SelectedCouponIDs)
		require.NotNil(t, f.bookings.gotPayload.Address.ID)
		assert.EqualValues(t, 11, *f.bookings.gotPayload.Address.ID)

		sess, ferr := f.sessions.Find(ctx, id)
		require.NoError(t, ferr)
		assert.Equal(t, booking.StepAddress, sess.Step())
		assert.False(t, sess.HasFormData())
	})

	t.Run("failed persistence leaves the session intact", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		id := f.reviewReadySession(t)
		f.bookings.createErr = errs.New("insert failed")

		_, err := f.uc.Submit(ctx, id)
		require.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)

		sess, ferr := f.sessions.Find(ctx, id)
		require.NoError(t, ferr)
		assert.Equal(t, booking.StepReview, sess.Step())
		require.NotNil(t, sess.ServiceID())
		assert.EqualValues(t, 5, *sess.ServiceID())
	})
}

func TestCreateDepositSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown booking", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		f.bookings.findErr = errs.New("no rows")

		_, err := f.uc.CreateDepositSession(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("gateway failure", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		f.bookings.record = &commands.BookingRecord{ID: uuid.New(), DepositAmount: dec("20.00")}
		f.payments.err = errs.New("stripe unreachable")

		_, err := f.uc.CreateDepositSession(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrPaymentGatewayFailed)
	})

	t.Run("hands the recorded deposit to the gateway", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture(t)
		record := &commands.BookingRecord{ID: uuid.New(), DepositAmount: dec("20.00")}
		f.bookings.record = record

		url, err := f.uc.CreateDepositSession(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.example.com/cs_123", url)
		assert.Equal(t, record.ID, f.payments.gotBookingID)
		assert.True(t, f.payments.gotAmount.Equal(dec("20.00")))
	})
}
