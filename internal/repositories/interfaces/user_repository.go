package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rideinbls/internal/models"
	"rideinbls/internal/utils"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	GetTotalCount(ctx context.Context) (int64, error)
}
