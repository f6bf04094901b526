package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/dbx"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/repomanager"
)

// tokenBytes is the number of random bytes per token; the hex encoding makes
// the issued token string twice as long.
const tokenBytes = 20

// TokenService issues and resolves the opaque bearer tokens used as the
// authentication credential on the API.
type TokenService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewTokenService constructs a TokenService over the given database handle
// and repository manager.
func NewTokenService(db *sql.DB, repos repomanager.RepositoryManager) *TokenService {
	return &TokenService{db: db, repos: repos}
}

// Issue returns the bearer token for the given user, creating one if the
// user has none yet. The get-or-create runs in a transaction so two
// concurrent logins cannot mint diverging tokens; the unique user_id column
// backs that up. Each successful issuance stamps last_login.
func (s *TokenService) Issue(ctx context.Context, user *models.User) (string, error) {
	var issued string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.AuthTokens(tx)

		existing, err := repo.FindByUser(ctx, user.ID)
		switch {
		case err == nil:
			issued = existing.Token
		case errors.Is(err, common.ErrorNotFound):
			token, genErr := common.MakeRandHexString(tokenBytes)
			if genErr != nil {
				return fmt.Errorf("generating token: %w", genErr)
			}
			if createErr := repo.Create(ctx, user.ID, token); createErr != nil {
				return createErr
			}
			issued = token
		default:
			return err
		}

		return s.repos.Users(tx).UpdateLastLogin(ctx, user.ID, time.Now())
	})
	if err != nil {
		return "", err
	}
	return issued, nil
}

// Resolve maps a presented token back to its user. Unknown tokens and tokens
// of deactivated accounts fail with common.ErrInvalidToken.
func (s *TokenService) Resolve(ctx context.Context, token string) (*models.User, error) {
	found, err := s.repos.AuthTokens(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, found.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}
	if !user.IsActive {
		return nil, common.ErrInvalidToken
	}
	return user, nil
}
