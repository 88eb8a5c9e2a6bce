// Package payment wraps the hosted checkout provider behind a
// gateway-neutral interface so services and tests never depend on the
// provider's SDK types.
package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/xportshq/xports-api/internal/config"
	"github.com/xportshq/xports-api/internal/domain"
)

// CheckoutInput carries everything a hosted checkout session needs.
// Metadata travels to the gateway and comes back on retrieval, which is
// how the reconciler recovers the contest and participant.
type CheckoutInput struct {
	ContestID        uint
	ContestName      string
	Price            int64
	CustomerEmail    string
	ParticipantName  string
}

type StripeGateway struct {
	api  *client.API
	conf *config.StripeConfig
}

func NewStripeGateway(conf *config.StripeConfig) *StripeGateway {
	return &StripeGateway{
		api:  client.New(conf.SecretKey, nil),
		conf: conf,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, input CheckoutInput) (domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(input.CustomerEmail),
		SuccessURL:         stripe.String(g.conf.SuccessURL),
		CancelURL:          stripe.String(g.conf.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.conf.Currency),
					UnitAmount: stripe.Int64(input.Price),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(input.ContestName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("contest_id", fmt.Sprintf("%d", input.ContestID))
	params.AddMetadata("participant_email", input.CustomerEmail)
	params.AddMetadata("participant_name", input.ParticipantName)

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("g.api.CheckoutSessions.New -> %w", err)
	}

	return g.toDomain(session), nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("g.api.CheckoutSessions.Get -> %w", err)
	}

	return g.toDomain(session), nil
}

func (g *StripeGateway) toDomain(s *stripe.CheckoutSession) domain.CheckoutSession {
	session := domain.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}

	if s.PaymentIntent != nil {
		session.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.CustomerEmail == "" && s.CustomerDetails != nil {
		session.CustomerEmail = s.CustomerDetails.Email
	}

	return session
}
