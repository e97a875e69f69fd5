package components

import (
	"pawbook/internal/handler"
	"pawbook/internal/handler/api"
	"pawbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewBookingHandler,
		api.NewCatalogHandler,
		api.NewAuthHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
