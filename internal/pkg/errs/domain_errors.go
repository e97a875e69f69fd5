package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Session errors
	ErrSessionNotFound  = errors.New("booking session not found")
	ErrSessionSubmitted = errors.New("booking session already submitted")

	// Catalog errors
	ErrServiceNotFound = errors.New("service not found")
	ErrAddOnNotFound   = errors.New("add-on not found")
	ErrPlanNotFound    = errors.New("membership plan not found")
	ErrAddressNotFound = errors.New("address not found")
	ErrStoreNotFound   = errors.New("store not found")

	// Step errors
	ErrSubmitNotAtReview = errors.New("submit is only available from the review step")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNoServiceSelected = errors.New("no service selected")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrPaymentGatewayFailed    = errors.New("payment gateway failed")
)
