package commands

import (
	"context"
	"time"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionRepository holds live wizard sessions. Nothing outlives the active
// session, so implementations are expected to be volatile.
type SessionRepository interface {
	Save(ctx context.Context, sess *booking.Session) error
	Find(ctx context.Context, id uuid.UUID) (*booking.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error)
}

// CatalogProvider yields the versioned reference-data snapshot sessions
// resolve against.
type CatalogProvider interface {
	SnapshotFor(ctx context.Context, userID uuid.UUID) *catalog.Snapshot
}

// BookingRecord is the persisted result of a submitted session.
type BookingRecord struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        string
	TotalAmount   decimal.Decimal
	DepositAmount decimal.Decimal
	CreatedAt     time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, userID uuid.UUID, payload booking.SubmitPayload, total, deposit decimal.Decimal) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingRecord, error)
}

// PaymentGateway starts the external deposit checkout and returns the
// redirect URL; the core only hands off navigation.
type PaymentGateway interface {
	CreateDepositSession(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal) (string, error)
}
