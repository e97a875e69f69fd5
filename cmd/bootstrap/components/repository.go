package components

import (
	"context"
	"log/slog"

	"pawbook/internal/infra/bookingstore"
	"pawbook/internal/infra/catalogstore"
	"pawbook/internal/infra/payment"
	"pawbook/internal/infra/sessionstore"
	"pawbook/internal/pkg/clock"
	"pawbook/internal/pkg/config"
	"pawbook/internal/usecase"
	"pawbook/internal/usecase/commands"
	"pawbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Session store (in-memory, TTL-swept)
		NewSessionStore,
		fx.Annotate(
			func(store *sessionstore.MemoryStore) *sessionstore.MemoryStore { return store },
			fx.As(new(commands.SessionRepository)),
			fx.As(new(queries.SessionReader)),
		),
		// Catalog
		fx.Annotate(
			catalogstore.NewCatalogStore,
			fx.As(new(usecase.CatalogFetcher)),
		),
		usecase.NewCatalogCache,
		fx.Annotate(
			func(cache *usecase.CatalogCache) *usecase.CatalogCache { return cache },
			fx.As(new(commands.CatalogProvider)),
			fx.As(new(queries.CatalogProvider)),
		),
		// User
		fx.Annotate(
			catalogstore.NewUserStore,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReader)),
		),
		// Booking
		fx.Annotate(
			bookingstore.NewBookingStore,
			fx.As(new(commands.BookingRepository)),
		),
		// Payment
		NewPaymentGateway,
		fx.Annotate(
			func(gw *payment.StripeGateway) *payment.StripeGateway { return gw },
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewSessionStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) *sessionstore.MemoryStore {
	store := sessionstore.NewMemoryStore(cfg.Session.TTL, clk, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			store.StartSweeper(cfg.Session.SweepInterval)
			return nil
		},
		OnStop: func(_ context.Context) error {
			store.Close()
			return nil
		},
	})
	return store
}

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) *payment.StripeGateway {
	return payment.NewStripeGateway(cfg.Stripe, logger)
}
