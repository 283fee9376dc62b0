package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/utils"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Vehicle, error)
	GetByLicensePlate(ctx context.Context, licensePlate string) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	ListBookable(ctx context.Context, vehicleType models.VehicleType, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)

	SetBooked(ctx context.Context, id primitive.ObjectID, booked bool) error
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error

	GetTotalCount(ctx context.Context) (int64, error)
	GetCountByType(ctx context.Context, vehicleType models.VehicleType) (int64, error)
}
