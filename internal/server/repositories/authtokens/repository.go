package authtokens

import (
	"context"

	"github.com/a-mean-h/recepie-api-app/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string) error
	FindByUser(ctx context.Context, userID string) (*models.AuthToken, error)
	FindByToken(ctx context.Context, token string) (*models.AuthToken, error)
}
