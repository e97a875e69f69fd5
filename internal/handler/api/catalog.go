package api

import (
	"net/http"

	"pawbook/internal/handler/middleware"
	"pawbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	queries queries.CatalogQueries
}

func NewCatalogHandler(qs queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{queries: qs}
}

// @Summary List grooming services
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ServiceView
// @Router /catalog/services [get]
func (h *CatalogHandler) Services(c *gin.Context) {
	h.list(c, func(userID uuid.UUID) (any, error) {
		return h.queries.Services(c.Request.Context(), userID)
	})
}

// @Summary List add-ons
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.AddOnView
// @Router /catalog/add-ons [get]
func (h *CatalogHandler) AddOns(c *gin.Context) {
	h.list(c, func(userID uuid.UUID) (any, error) {
		return h.queries.AddOns(c.Request.Context(), userID)
	})
}

// @Summary List membership plans
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.MembershipPlanView
// @Router /catalog/membership-plans [get]
func (h *CatalogHandler) MembershipPlans(c *gin.Context) {
	h.list(c, func(userID uuid.UUID) (any, error) {
		return h.queries.MembershipPlans(c.Request.Context(), userID)
	})
}

// @Summary List saved addresses
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.SavedAddressView
// @Router /catalog/addresses [get]
func (h *CatalogHandler) Addresses(c *gin.Context) {
	h.list(c, func(userID uuid.UUID) (any, error) {
		return h.queries.Addresses(c.Request.Context(), userID)
	})
}

// @Summary List store locations
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.StoreView
// @Router /catalog/stores [get]
func (h *CatalogHandler) Stores(c *gin.Context) {
	h.list(c, func(userID uuid.UUID) (any, error) {
		return h.queries.Stores(c.Request.Context(), userID)
	})
}

func (h *CatalogHandler) list(c *gin.Context, fn func(userID uuid.UUID) (any, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	result, err := fn(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}
