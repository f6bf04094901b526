package recipes

import (
	"context"

	"github.com/a-mean-h/recepie-api-app/internal/server/models"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error)
	GetByOwner(ctx context.Context, ownerID string, id int64) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, ownerID string, id int64) error
}
