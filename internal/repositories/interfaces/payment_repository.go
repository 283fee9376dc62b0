package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/utils"
)

// PaymentTotals aggregates settled money per status for the admin dashboard.
type PaymentTotals struct {
	Status models.PaymentStatus `bson:"_id" json:"status"`
	Count  int64                `bson:"count" json:"count"`
	Amount float64              `bson:"amount" json:"amount"`
}

// DailyRevenue is one day's worth of captured payments, keyed by the
// payment date formatted as YYYY-MM-DD.
type DailyRevenue struct {
	Date   string  `bson:"_id" json:"date"`
	Amount float64 `bson:"amount" json:"amount"`
	Count  int64   `bson:"count" json:"count"`
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Payment, int64, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Payment, int64, error)

	GetTotalsByStatus(ctx context.Context) ([]*PaymentTotals, error)
	GetRevenueSince(ctx context.Context, since time.Time) (float64, error)
	GetDailyRevenue(ctx context.Context, since time.Time) ([]*DailyRevenue, error)
	GetTotalCount(ctx context.Context) (int64, error)
}
