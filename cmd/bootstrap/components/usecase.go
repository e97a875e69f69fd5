package components

import (
	"pawbook/internal/domain/booking"
	"pawbook/internal/pkg/clock"
	"pawbook/internal/pkg/config"
	"pawbook/internal/usecase/commands"
	"pawbook/internal/usecase/queries"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSlotPolicy,
	NewDepositAmount,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSessionCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSessionQueries,
		queries.NewCatalogQueries,
	),
)

func NewSlotPolicy(cfg config.Config) booking.SlotPolicy {
	return booking.SlotPolicy{
		MaxSlots:   cfg.Booking.MaxSlots,
		WindowDays: cfg.Booking.WindowDays,
	}
}

// NewDepositAmount parses the configured deposit once at startup; a bad
// value is a deployment error, not a runtime condition.
func NewDepositAmount(cfg config.Config) decimal.Decimal {
	amount, err := decimal.NewFromString(cfg.Booking.DepositAmount)
	if err != nil {
		panic("invalid BOOKING_DEPOSIT_AMOUNT: " + err.Error())
	}
	return amount
}
