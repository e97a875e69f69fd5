package api

import (
	"errors"
	"net/http"

	resdto "pawbook/internal/handler/dto/response"
	"pawbook/internal/infra"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	bookings commands.BookingRepository
}

func NewBookingHandler(cmds commands.BookingCommands, bookings commands.BookingRepository) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		bookings: bookings,
	}
}

// @Summary Submit booking session
// @Description Turn a review-step session into a persisted booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 201 {object} resdto.SubmitResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/submit [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return
	}

	bookingID, err := h.commands.Submit(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, errs.ErrSubmitNotAtReview):
			c.JSON(http.StatusConflict, gin.H{"error": "Session is not at the review step"})
		case errors.Is(err, errs.ErrNoServiceSelected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No service selected"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.SubmitResponse{BookingID: bookingID})
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	record, err := h.bookings.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingRecord(record))
}

// @Summary Start deposit checkout
// @Description Create the hosted checkout session for the booking deposit
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.DepositSessionResponse
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/deposit [post]
func (h *BookingHandler) CreateDepositSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	url, err := h.commands.CreateDepositSession(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, errs.ErrPaymentGatewayFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.DepositSessionResponse{CheckoutURL: url})
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingNotFound), infra.IsKind(err, infra.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
