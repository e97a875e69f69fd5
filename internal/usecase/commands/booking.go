package commands

import (
	"context"

	"pawbook/internal/pkg/clock"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingCommands covers the terminal actions of the wizard: turning a
// review-step session into a persisted booking, and starting the external
// deposit checkout for it.
type BookingCommands interface {
	Submit(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)
	CreateDepositSession(ctx context.Context, bookingID uuid.UUID) (string, error)
}

type bookingCommandsImpl struct {
	sessions SessionRepository
	users    UserRepository
	catalogs CatalogProvider
	bookings BookingRepository
	payments PaymentGateway
	deposit  decimal.Decimal
	clock    clock.Clock
}

func NewBookingCommands(
	sessions SessionRepository,
	users UserRepository,
	catalogs CatalogProvider,
	bookings BookingRepository,
	payments PaymentGateway,
	deposit decimal.Decimal,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		sessions: sessions,
		users:    users,
		catalogs: catalogs,
		bookings: bookings,
		payments: payments,
		deposit:  deposit,
		clock:    clk,
	}
}

// Submit consumes the session into a booking. Failures leave the session
// untouched so the user can retry; only a successful submission resets it.
func (uc *bookingCommandsImpl) Submit(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	sess, err := uc.sessions.Find(ctx, sessionID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrSessionNotFound)
	}
	if !sess.CanSubmit() {
		return uuid.Nil, errs.ErrSubmitNotAtReview
	}

	snap := uc.catalogs.SnapshotFor(ctx, sess.UserID())
	sess.SyncCoupons(snap.Version, shared.GroupsFor(sess, snap), uc.clock.Now())

	payload, err := sess.BuildSubmitPayload(snap)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrNoServiceSelected)
	}

	userIsMember := false
	if user, uerr := uc.users.FindByID(ctx, sess.UserID()); uerr == nil {
		userIsMember = user.IsMember
	}
	quote := shared.QuoteFor(sess, snap, userIsMember)

	bookingID, err := uc.bookings.Create(ctx, sess.UserID(), payload, quote.FinalTotal, uc.deposit)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	sess.Reset(uc.clock.Now())
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return bookingID, nil
}

func (uc *bookingCommandsImpl) CreateDepositSession(ctx context.Context, bookingID uuid.UUID) (string, error) {
	record, err := uc.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return "", errs.Mark(err, errs.ErrBookingNotFound)
	}

	url, err := uc.payments.CreateDepositSession(ctx, record.ID, record.DepositAmount)
	if err != nil {
		return "", errs.Mark(err, errs.ErrPaymentGatewayFailed)
	}
	return url, nil
}
