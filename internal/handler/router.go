package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pawbook/internal/handler/api"
	"pawbook/internal/handler/middleware"
	"pawbook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	sessionHandler *api.SessionHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	authHandler *api.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, sessionHandler, bookingHandler, catalogHandler, authHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	sessionHandler *api.SessionHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	authHandler *api.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		catalog := apiGroup.Group("/catalog")
		{
			addRoutes(catalog, []route{
				{Method: http.MethodGet, Path: "/services", Handler: catalogHandler.Services},
				{Method: http.MethodGet, Path: "/add-ons", Handler: catalogHandler.AddOns},
				{Method: http.MethodGet, Path: "/membership-plans", Handler: catalogHandler.MembershipPlans},
				{Method: http.MethodGet, Path: "/addresses", Handler: catalogHandler.Addresses},
				{Method: http.MethodGet, Path: "/stores", Handler: catalogHandler.Stores},
			})
		}

		sessions := apiGroup.Group("/sessions")
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: sessionHandler.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: sessionHandler.Get},
				{Method: http.MethodGet, Path: "/:id/quote", Handler: sessionHandler.Quote},
				{Method: http.MethodGet, Path: "/:id/coupons", Handler: sessionHandler.CouponGroups},

				{Method: http.MethodPost, Path: "/:id/steps/next", Handler: sessionHandler.NextStep},
				{Method: http.MethodPost, Path: "/:id/steps/previous", Handler: sessionHandler.PreviousStep},
				{Method: http.MethodPut, Path: "/:id/steps", Handler: sessionHandler.JumpToStep},

				{Method: http.MethodPut, Path: "/:id/service-type", Handler: sessionHandler.SetServiceType},
				{Method: http.MethodPut, Path: "/:id/address", Handler: sessionHandler.SelectAddress},
				{Method: http.MethodPut, Path: "/:id/store", Handler: sessionHandler.SelectStore},
				{Method: http.MethodPut, Path: "/:id/manual-address", Handler: sessionHandler.SetManualAddress},

				{Method: http.MethodPut, Path: "/:id/pet", Handler: sessionHandler.UpdatePet},

				{Method: http.MethodPut, Path: "/:id/service", Handler: sessionHandler.SelectService},
				{Method: http.MethodPost, Path: "/:id/add-ons/toggle", Handler: sessionHandler.ToggleAddOn},

				{Method: http.MethodPut, Path: "/:id/membership", Handler: sessionHandler.ChooseMembership},
				{Method: http.MethodDelete, Path: "/:id/membership", Handler: sessionHandler.DeclineMembership},
				{Method: http.MethodPut, Path: "/:id/discounts/membership", Handler: sessionHandler.SetMembershipDiscount},
				{Method: http.MethodPut, Path: "/:id/discounts/cash-coupon", Handler: sessionHandler.SetCashCoupon},

				{Method: http.MethodPost, Path: "/:id/coupons/category", Handler: sessionHandler.SelectCouponCategory},
				{Method: http.MethodDelete, Path: "/:id/coupons/category/:group", Handler: sessionHandler.ClearCouponCategory},
				{Method: http.MethodPost, Path: "/:id/coupons/select", Handler: sessionHandler.SelectCoupon},
				{Method: http.MethodPost, Path: "/:id/coupons/deselect", Handler: sessionHandler.DeselectCoupon},

				{Method: http.MethodPut, Path: "/:id/date", Handler: sessionHandler.SelectDate},
				{Method: http.MethodPost, Path: "/:id/slots/toggle", Handler: sessionHandler.TogglePeriod},
				{Method: http.MethodPost, Path: "/:id/slots/remove", Handler: sessionHandler.RemoveSlot},

				{Method: http.MethodPut, Path: "/:id/notes", Handler: sessionHandler.SetNotes},

				{Method: http.MethodPost, Path: "/:id/submit", Handler: bookingHandler.Submit},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPost, Path: "/:id/deposit", Handler: bookingHandler.CreateDepositSession},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
