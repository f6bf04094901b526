// Package authtokens provides a PostgreSQL-backed repository for the opaque
// bearer tokens used in the service's authentication flow.
package authtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/dbx"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
)

// PostgresRepository implements token storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new token for userID. The user_id column is unique, so a
// user can hold at most one token at a time.
func (r *PostgresRepository) Create(ctx context.Context, userID string, token string) error {
	query := `
		INSERT INTO auth_tokens (token, user_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, token, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByUser returns the token row bound to userID or common.ErrorNotFound.
func (r *PostgresRepository) FindByUser(ctx context.Context, userID string) (*models.AuthToken, error) {
	query := `
		SELECT token, user_id, created_at
		FROM auth_tokens
		WHERE user_id = $1
	`
	return r.scanToken(r.db.QueryRowContext(ctx, query, userID))
}

// FindByToken returns the token row for the given token string or
// common.ErrorNotFound.
func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.AuthToken, error) {
	query := `
		SELECT token, user_id, created_at
		FROM auth_tokens
		WHERE token = $1
	`
	return r.scanToken(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) scanToken(row *sql.Row) (*models.AuthToken, error) {
	t := &models.AuthToken{}
	if err := row.Scan(&t.Token, &t.UserID, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}
