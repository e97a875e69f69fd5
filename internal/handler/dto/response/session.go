package response

import (
	"github.com/google/uuid"
)

type SessionCreatedResponse struct {
	SessionID uuid.UUID `json:"session_id"`
}

type SubmitResponse struct {
	BookingID uuid.UUID `json:"booking_id"`
}

type DepositSessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
