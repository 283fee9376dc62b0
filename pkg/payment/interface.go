package payment

import "context"

// Provider creates gateway orders for checkout, verifies captured payments
// and issues refunds. Payments are authorized on the frontend; the backend
// only creates the order and verifies the capture callback.
type Provider interface {
	Name() string
	CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error)
	VerifyPayment(ctx context.Context, request *VerificationRequest) error
	Refund(ctx context.Context, request *RefundRequest) (*Refund, error)
}

type OrderRequest struct {
	Amount   float64                `json:"amount"`
	Currency string                 `json:"currency"`
	Receipt  string                 `json:"receipt"`
	Notes    map[string]interface{} `json:"notes"`
}

type Order struct {
	OrderID   string  `json:"order_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}

type VerificationRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type RefundRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

type Refund struct {
	RefundID  string  `json:"refund_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}
