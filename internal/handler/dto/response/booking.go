package response

import (
	"time"

	"pawbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Status        string    `json:"status"`
	TotalAmount   string    `json:"total_amount"`
	DepositAmount string    `json:"deposit_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromBookingRecord(record *commands.BookingRecord) BookingResponse {
	return BookingResponse{
		ID:            record.ID,
		UserID:        record.UserID,
		Status:        record.Status,
		TotalAmount:   record.TotalAmount.StringFixed(2),
		DepositAmount: record.DepositAmount.StringFixed(2),
		CreatedAt:     record.CreatedAt,
	}
}
