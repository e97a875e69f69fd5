package bookingstore

import (
	"context"
	"encoding/json"
	"errors"

	"pawbook/internal/domain/booking"
	"pawbook/internal/infra"
	"pawbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BookingStore persists submitted bookings. The full submission payload is
// stored as a JSON document next to the priced totals so downstream
// fulfilment keeps every selection the wizard captured.
type BookingStore struct {
	pool *pgxpool.Pool
}

func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pool: pool}
}

func (s *BookingStore) Create(ctx context.Context, userID uuid.UUID, payload booking.SubmitPayload, total, deposit decimal.Decimal) (uuid.UUID, error) {
	doc, err := json.Marshal(newSubmitDocument(payload))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode booking payload", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO bookings (id, user_id, status, payload, total_amount, deposit_amount, created_at)
		VALUES ($1, $2, 'pending_deposit', $3, $4, $5, now())`,
		id, userID, doc, total.String(), deposit.String())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err)
	}
	return id, nil
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*commands.BookingRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, status, total_amount::text, deposit_amount::text, created_at
		FROM bookings
		WHERE id = $1`, id)

	var (
		record               commands.BookingRecord
		totalStr, depositStr string
	)
	err := row.Scan(&record.ID, &record.UserID, &record.Status, &totalStr, &depositStr, &record.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	if record.TotalAmount, err = decimal.NewFromString(totalStr); err != nil {
		return nil, infra.WrapRepoErr("invalid booking total", err)
	}
	if record.DepositAmount, err = decimal.NewFromString(depositStr); err != nil {
		return nil, infra.WrapRepoErr("invalid booking deposit", err)
	}
	return &record, nil
}

// submitDocument flattens the domain payload into the stored JSON shape.
type submitDocument map[string]any

func newSubmitDocument(p booking.SubmitPayload) submitDocument {
	return submitDocument{
		"service_id":           p.ServiceID,
		"add_on_ids":           p.AddOnIDs,
		"weight_value":         decPtrString(p.WeightValue),
		"weight_unit":          string(p.WeightUnit),
		"membership_plan_id":   p.MembershipPlanID,
		"open_membership":      p.OpenMembership,
		"use_special_coupon":   p.UseSpecialCoupon,
		"use_official_coupon":  p.UseOfficialCoupon,
		"selected_coupon_ids":  p.SelectedCouponIDs,
		"address":              addressDocument(p.Address),
		"pet":                  petDocument(p.Pet),
		"preferred_time_slots": slotDocuments(p.PreferredTimeSlots),
		"notes":                p.Notes,
		"store_id":             p.StoreID,
	}
}

func addressDocument(a booking.AddressPayload) map[string]any {
	return map[string]any{
		"id":           a.ID,
		"address":      a.Address,
		"city":         a.City,
		"province":     a.Province,
		"postal_code":  a.PostalCode,
		"service_type": string(a.ServiceType),
	}
}

func petDocument(p booking.PetPayload) map[string]any {
	return map[string]any{
		"name":                p.Name,
		"type":                string(p.Type),
		"breed":               p.Breed,
		"mixed_breed":         p.MixedBreed,
		"precise_type":        p.PreciseType,
		"birthday":            p.Birthday,
		"gender":              string(p.Gender),
		"weight_value":        decPtrString(p.WeightValue),
		"weight_unit":         string(p.WeightUnit),
		"coat_condition":      string(p.CoatCondition),
		"behavior":            string(p.Behavior),
		"grooming_frequency":  string(p.GroomingFrequency),
		"special_notes":       p.SpecialNotes,
		"photo_ids":           p.PhotoIDs,
		"reference_photo_ids": p.ReferencePhotoIDs,
	}
}

func slotDocuments(slots []booking.TimeSlot) []map[string]any {
	out := make([]map[string]any, 0, len(slots))
	for _, s := range slots {
		out = append(out, map[string]any{
			"date":   s.Date.String(),
			"period": string(s.Period),
		})
	}
	return out
}

func decPtrString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
