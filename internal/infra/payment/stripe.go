package payment

import (
	"context"
	"log/slog"

	"pawbook/internal/pkg/config"
	"pawbook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway creates hosted checkout sessions for booking deposits. The
// booking id travels in the session metadata so the webhook can reconcile
// the payment.
type StripeGateway struct {
	cfg    config.StripeConfig
	logger *slog.Logger
}

func NewStripeGateway(cfg config.StripeConfig, logger *slog.Logger) *StripeGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{cfg: cfg, logger: logger}
}

func (g *StripeGateway) CreateDepositSession(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.cfg.Currency),
					UnitAmount: stripe.Int64(toCents(amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Grooming appointment deposit"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"booking_id": bookingID.String(),
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		g.logger.Error("stripe checkout session failed", "booking_id", bookingID, "error", err)
		return "", errs.Mark(err, errs.ErrPaymentGatewayFailed)
	}
	return sess.URL, nil
}

// toCents converts a dollar amount to the integer minor unit Stripe expects.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
