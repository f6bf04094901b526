// Package recipes provides a PostgreSQL-backed repository for user-owned
// recipes. Every query is scoped by owner, so a recipe never leaks across
// user boundaries at the storage level.
package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/dbx"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
)

// PostgresRepository implements recipe storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOwner returns all recipes owned by ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	query := `
		SELECT id, user_id, title, description, price, time_minute, link
		FROM recipes
		WHERE user_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Recipe
	for rows.Next() {
		var item models.Recipe
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description,
			&item.Price, &item.TimeMinute, &item.Link); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByOwner returns the recipe with the given id only if it is owned by
// ownerID; otherwise common.ErrorNotFound, whether the row exists for
// another user or not at all.
func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string, id int64) (*models.Recipe, error) {
	query := `
		SELECT id, user_id, title, description, price, time_minute, link
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`
	recipe := &models.Recipe{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&recipe.ID, &recipe.UserID, &recipe.Title, &recipe.Description,
		&recipe.Price, &recipe.TimeMinute, &recipe.Link)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipe, nil
}

// Create inserts a new recipe and fills in the server-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	query := `
		INSERT INTO recipes (user_id, title, description, price, time_minute, link)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		recipe.UserID, recipe.Title, recipe.Description,
		recipe.Price, recipe.TimeMinute, recipe.Link).Scan(&recipe.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipe, nil
}

// Update rewrites the mutable columns of a recipe. The owner column is
// deliberately absent from the SET list and present in WHERE, so ownership
// can never change and foreign rows report common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	query := `
		UPDATE recipes
		SET title = $1, description = $2, price = $3, time_minute = $4, link = $5
		WHERE id = $6 AND user_id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		recipe.Title, recipe.Description, recipe.Price, recipe.TimeMinute, recipe.Link,
		recipe.ID, recipe.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a recipe owned by ownerID, or common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, id int64) error {
	query := `
		DELETE FROM recipes
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
