package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/utils"
)

// HourlyCount buckets bookings by creation hour of day (0-23).
type HourlyCount struct {
	Hour  int32 `bson:"_id" json:"hour"`
	Count int64 `bson:"count" json:"count"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetActiveByUserAndVehicle(ctx context.Context, userID, vehicleID primitive.ObjectID) (*models.Booking, error)

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetTotalCount(ctx context.Context) (int64, error)
	GetCountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
	GetHourlyCounts(ctx context.Context) ([]*HourlyCount, error)
}
