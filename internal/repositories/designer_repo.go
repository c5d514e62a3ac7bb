package repositories

import (
	"context"

	"emptycup/internal/models"
)

// DesignerRepository defines the interface for designer data access.
type DesignerRepository interface {
	GetAll(ctx context.Context) ([]models.Designer, error)
	GetByID(ctx context.Context, id uint) (*models.Designer, error)
	Create(ctx context.Context, designer *models.Designer) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	GetRecent(ctx context.Context, limit int) ([]models.Designer, error)
	GetNewest(ctx context.Context) ([]models.Designer, error)
}
