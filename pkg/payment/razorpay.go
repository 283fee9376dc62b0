package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayProvider struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	client := razorpay.NewClient(keyID, keySecret)

	return &RazorpayProvider{
		client:    client,
		keySecret: keySecret,
	}
}

func (r *RazorpayProvider) Name() string {
	return "razorpay"
}

func (r *RazorpayProvider) CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error) {
	orderData := map[string]interface{}{
		"amount":   int(request.Amount * 100), // Amount in paise
		"currency": request.Currency,
		"receipt":  request.Receipt,
		"notes":    request.Notes,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &Order{
		OrderID:   order["id"].(string),
		Status:    "created",
		Amount:    request.Amount,
		Currency:  request.Currency,
		CreatedAt: toInt64(order["created_at"]),
	}, nil
}

// VerifyPayment checks the capture signature Razorpay sends to the frontend:
// HMAC-SHA256 of "orderID|paymentID" keyed with the API secret.
func (r *RazorpayProvider) VerifyPayment(ctx context.Context, request *VerificationRequest) error {
	payload := request.OrderID + "|" + request.PaymentID

	h := hmac.New(sha256.New, []byte(r.keySecret))
	h.Write([]byte(payload))
	expected := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(request.Signature)) {
		return fmt.Errorf("invalid payment signature")
	}
	return nil
}

func (r *RazorpayProvider) Refund(ctx context.Context, request *RefundRequest) (*Refund, error) {
	refundData := map[string]interface{}{
		"notes": map[string]interface{}{
			"reason": request.Reason,
		},
	}

	amount := int(request.Amount * 100)
	refund, err := r.client.Payment.Refund(request.PaymentID, amount, refundData, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return &Refund{
		RefundID:  refund["id"].(string),
		Status:    refund["status"].(string),
		Amount:    float64(toInt64(refund["amount"])) / 100,
		Currency:  refund["currency"].(string),
		CreatedAt: toInt64(refund["created_at"]),
	}, nil
}

// Razorpay's API client returns numbers as float64 or int depending on the
// decoder path.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
