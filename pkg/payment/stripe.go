package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client: sc,
	}
}

func (s *StripeProvider) Name() string {
	return "stripe"
}

func (s *StripeProvider) CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(request.Amount * 100)),
		Currency: stripe.String(request.Currency),
	}
	params.AddMetadata("receipt", request.Receipt)
	for key, value := range request.Notes {
		params.AddMetadata(key, fmt.Sprintf("%v", value))
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Order{
		OrderID:   pi.ID,
		Status:    string(pi.Status),
		Amount:    float64(pi.Amount) / 100,
		Currency:  string(pi.Currency),
		CreatedAt: pi.Created,
	}, nil
}

// VerifyPayment confirms the intent reached the succeeded state. Stripe has
// no client-side capture signature, so the intent status is the source of
// truth.
func (s *StripeProvider) VerifyPayment(ctx context.Context, request *VerificationRequest) error {
	pi, err := s.client.PaymentIntents.Get(request.OrderID, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent %s not succeeded: %s", pi.ID, pi.Status)
	}
	return nil
}

func (s *StripeProvider) Refund(ctx context.Context, request *RefundRequest) (*Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(request.PaymentID),
	}

	if request.Amount > 0 {
		params.Amount = stripe.Int64(int64(request.Amount * 100))
	}

	refund, err := s.client.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return &Refund{
		RefundID:  refund.ID,
		Status:    string(refund.Status),
		Amount:    float64(refund.Amount) / 100,
		Currency:  string(refund.Currency),
		CreatedAt: refund.Created,
	}, nil
}
