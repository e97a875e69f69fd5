package api

import (
	"errors"
	"net/http"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/couponing"
	reqdto "pawbook/internal/handler/dto/request"
	resdto "pawbook/internal/handler/dto/response"
	"pawbook/internal/handler/middleware"
	"pawbook/internal/pkg/errs"
	"pawbook/internal/usecase/commands"
	"pawbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	commands commands.SessionCommands
	queries  queries.SessionQueries
}

func NewSessionHandler(cmds commands.SessionCommands, qs queries.SessionQueries) *SessionHandler {
	return &SessionHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create booking session
// @Description Start a new booking wizard session for the authenticated user
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.SessionCreatedResponse
// @Failure 401 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := h.commands.Create(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.SessionCreatedResponse{SessionID: id})
}

// @Summary Get session state
// @Description Current state of the booking wizard session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.SessionView
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	view, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get price quote
// @Description Price breakdown for the session's current selections
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.QuoteView
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/quote [get]
func (h *SessionHandler) Quote(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	view, err := h.queries.Quote(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get coupon groups
// @Description Available coupons classified into selection groups
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} queries.CouponGroupsView
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/coupons [get]
func (h *SessionHandler) CouponGroups(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	view, err := h.queries.CouponGroups(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Advance to next step
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id}/steps/next [post]
func (h *SessionHandler) NextStep(c *gin.Context) {
	h.run(c, func(id uuid.UUID) error {
		return h.commands.NextStep(c.Request.Context(), id)
	})
}

// @Summary Return to previous step
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id}/steps/previous [post]
func (h *SessionHandler) PreviousStep(c *gin.Context) {
	h.run(c, func(id uuid.UUID) error {
		return h.commands.PreviousStep(c.Request.Context(), id)
	})
}

// @Summary Jump to step
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.JumpToStepRequest true "Target step"
// @Success 204
// @Router /sessions/{id}/steps [put]
func (h *SessionHandler) JumpToStep(c *gin.Context) {
	var req reqdto.JumpToStepRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.JumpTo(c.Request.Context(), id, booking.Step(req.Step))
	})
}

// @Summary Set service type
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.ServiceTypeRequest true "Service type"
// @Success 204
// @Router /sessions/{id}/service-type [put]
func (h *SessionHandler) SetServiceType(c *gin.Context) {
	var req reqdto.ServiceTypeRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SetServiceType(c.Request.Context(), id, booking.ServiceType(req.ServiceType))
	})
}

// @Summary Select saved address
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.SelectAddressRequest true "Address"
// @Success 204
// @Router /sessions/{id}/address [put]
func (h *SessionHandler) SelectAddress(c *gin.Context) {
	var req reqdto.SelectAddressRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SelectAddress(c.Request.Context(), id, req.AddressID)
	})
}

// @Summary Select store
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.SelectStoreRequest true "Store"
// @Success 204
// @Router /sessions/{id}/store [put]
func (h *SessionHandler) SelectStore(c *gin.Context) {
	var req reqdto.SelectStoreRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SelectStore(c.Request.Context(), id, req.StoreID)
	})
}

// @Summary Set manual address
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.ManualAddressRequest true "Address"
// @Success 204
// @Router /sessions/{id}/manual-address [put]
func (h *SessionHandler) SetManualAddress(c *gin.Context) {
	var req reqdto.ManualAddressRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SetManualAddress(c.Request.Context(), id, req.ToDomain())
	})
}

// @Summary Update pet profile
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.PetRequest true "Pet profile"
// @Success 204
// @Router /sessions/{id}/pet [put]
func (h *SessionHandler) UpdatePet(c *gin.Context) {
	var req reqdto.PetRequest
	if !h.bind(c, &req) {
		return
	}
	pet, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.UpdatePet(c.Request.Context(), id, pet)
	})
}

// @Summary Select service package
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.SelectServiceRequest true "Service"
// @Success 204
// @Router /sessions/{id}/service [put]
func (h *SessionHandler) SelectService(c *gin.Context) {
	var req reqdto.SelectServiceRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SelectService(c.Request.Context(), id, req.ServiceID)
	})
}

// @Summary Toggle add-on
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.ToggleAddOnRequest true "Add-on"
// @Success 204
// @Router /sessions/{id}/add-ons/toggle [post]
func (h *SessionHandler) ToggleAddOn(c *gin.Context) {
	var req reqdto.ToggleAddOnRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.ToggleAddOn(c.Request.Context(), id, req.AddOnID)
	})
}

// @Summary Opt into membership
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.ChooseMembershipRequest true "Plan"
// @Success 204
// @Router /sessions/{id}/membership [put]
func (h *SessionHandler) ChooseMembership(c *gin.Context) {
	var req reqdto.ChooseMembershipRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.ChooseMembership(c.Request.Context(), id, req.PlanID)
	})
}

// @Summary Decline membership
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id}/membership [delete]
func (h *SessionHandler) DeclineMembership(c *gin.Context) {
	h.run(c, func(id uuid.UUID) error {
		return h.commands.DeclineMembership(c.Request.Context(), id)
	})
}

// @Summary Toggle membership discount
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.DiscountToggleRequest true "Toggle"
// @Success 204
// @Router /sessions/{id}/discounts/membership [put]
func (h *SessionHandler) SetMembershipDiscount(c *gin.Context) {
	var req reqdto.DiscountToggleRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SetMembershipDiscount(c.Request.Context(), id, req.Enabled)
	})
}

// @Summary Toggle cash coupon
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.DiscountToggleRequest true "Toggle"
// @Success 204
// @Router /sessions/{id}/discounts/cash-coupon [put]
func (h *SessionHandler) SetCashCoupon(c *gin.Context) {
	var req reqdto.DiscountToggleRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SetCashCoupon(c.Request.Context(), id, req.Enabled)
	})
}

// @Summary Select best coupon in category
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CouponCategoryRequest true "Category"
// @Success 204
// @Router /sessions/{id}/coupons/category [post]
func (h *SessionHandler) SelectCouponCategory(c *gin.Context) {
	var req reqdto.CouponCategoryRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SelectCouponCategory(c.Request.Context(), id, req.GroupID())
	})
}

// @Summary Clear coupon category selection
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param group path string true "Category"
// @Success 204
// @Router /sessions/{id}/coupons/category/{group} [delete]
func (h *SessionHandler) ClearCouponCategory(c *gin.Context) {
	group := couponing.GroupID(c.Param("group"))
	h.run(c, func(id uuid.UUID) error {
		return h.commands.ClearCouponCategory(c.Request.Context(), id, group)
	})
}

// @Summary Select specific coupon
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CouponSelectRequest true "Coupon"
// @Success 204
// @Router /sessions/{id}/coupons/select [post]
func (h *SessionHandler) SelectCoupon(c *gin.Context) {
	var req reqdto.CouponSelectRequest
	if !h.bind(c, &req) {
		return
	}
	ref, err := req.Ref()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SelectCoupon(c.Request.Context(), id, req.GroupID(), ref)
	})
}

// @Summary Deselect coupon
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CouponDeselectRequest true "Coupon"
// @Success 204
// @Router /sessions/{id}/coupons/deselect [post]
func (h *SessionHandler) DeselectCoupon(c *gin.Context) {
	var req reqdto.CouponDeselectRequest
	if !h.bind(c, &req) {
		return
	}
	ref, err := req.Ref()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.DeselectCoupon(c.Request.Context(), id, ref)
	})
}

// @Summary Select active date
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.SelectDateRequest true "Date"
// @Success 204
// @Router /sessions/{id}/date [put]
func (h *SessionHandler) SelectDate(c *gin.Context) {
	var req reqdto.SelectDateRequest
	if !h.bind(c, &req) {
		return
	}
	date, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SelectDate(c.Request.Context(), id, date)
	})
}

// @Summary Toggle time slot period
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.TimeSlotRequest true "Slot"
// @Success 204
// @Router /sessions/{id}/slots/toggle [post]
func (h *SessionHandler) TogglePeriod(c *gin.Context) {
	var req reqdto.TimeSlotRequest
	if !h.bind(c, &req) {
		return
	}
	date, period, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.TogglePeriod(c.Request.Context(), id, date, period)
	})
}

// @Summary Remove time slot
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.TimeSlotRequest true "Slot"
// @Success 204
// @Router /sessions/{id}/slots/remove [post]
func (h *SessionHandler) RemoveSlot(c *gin.Context) {
	var req reqdto.TimeSlotRequest
	if !h.bind(c, &req) {
		return
	}
	date, period, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.RemoveSlot(c.Request.Context(), id, date, period)
	})
}

// @Summary Set booking notes
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.NotesRequest true "Notes"
// @Success 204
// @Router /sessions/{id}/notes [put]
func (h *SessionHandler) SetNotes(c *gin.Context) {
	var req reqdto.NotesRequest
	if !h.bind(c, &req) {
		return
	}
	h.run(c, func(id uuid.UUID) error {
		return h.commands.SetNotes(c.Request.Context(), id, req.Notes)
	})
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *SessionHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return false
	}
	return true
}

// run executes one session mutation and replies 204 on success.
func (h *SessionHandler) run(c *gin.Context, fn func(id uuid.UUID) error) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := fn(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
