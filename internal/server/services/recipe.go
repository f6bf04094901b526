package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/a-mean-h/recepie-api-app/internal/common"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/repositories/repomanager"
)

const (
	maxTitleLen = 255
	maxLinkLen  = 255
)

// priceLimit bounds the price magnitude to what NUMERIC(5,2) can hold.
var priceLimit = decimal.NewFromInt(1000)

// RecipeInput holds the client-settable fields for a new recipe. The owner is
// never part of the input; it always comes from the authenticated caller.
type RecipeInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	TimeMinute  int
	Link        string
}

// RecipeUpdate describes a partial recipe update. Nil fields keep their
// current value. There is no owner field: ownership is immutable.
type RecipeUpdate struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	TimeMinute  *int
	Link        *string
}

// RecipeService provides owner-scoped recipe CRUD. Every operation takes the
// owner id from the authenticated caller, so one user's recipes are invisible
// to another, including through direct-id access.
type RecipeService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewRecipeService constructs a RecipeService over the given database handle
// and repository manager.
func NewRecipeService(db *sql.DB, repos repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{db: db, repos: repos}
}

// List returns the owner's recipes, most recently created first.
func (s *RecipeService) List(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	result, err := s.repos.Recipes(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	return result, nil
}

// Get returns a single recipe owned by ownerID, or common.ErrorNotFound —
// also when the id belongs to another user's recipe.
func (s *RecipeService) Get(ctx context.Context, ownerID string, id int64) (*models.Recipe, error) {
	return s.repos.Recipes(s.db).GetByOwner(ctx, ownerID, id)
}

// Create stores a new recipe owned by ownerID and returns it with the
// server-assigned id.
func (s *RecipeService) Create(ctx context.Context, ownerID string, input RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		TimeMinute:  input.TimeMinute,
		Link:        input.Link,
	}
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	created, err := s.repos.Recipes(s.db).Create(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("error creating recipe: %w", err)
	}
	return created, nil
}

// Update applies a partial update to a recipe owned by ownerID.
func (s *RecipeService) Update(ctx context.Context, ownerID string, id int64, upd RecipeUpdate) (*models.Recipe, error) {
	repo := s.repos.Recipes(s.db)

	recipe, err := repo.GetByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		recipe.Title = *upd.Title
	}
	if upd.Description != nil {
		recipe.Description = *upd.Description
	}
	if upd.Price != nil {
		recipe.Price = *upd.Price
	}
	if upd.TimeMinute != nil {
		recipe.TimeMinute = *upd.TimeMinute
	}
	if upd.Link != nil {
		recipe.Link = *upd.Link
	}
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes a recipe owned by ownerID, or common.ErrorNotFound.
func (s *RecipeService) Delete(ctx context.Context, ownerID string, id int64) error {
	return s.repos.Recipes(s.db).Delete(ctx, ownerID, id)
}

func validateRecipe(recipe *models.Recipe) error {
	if recipe.Title == "" {
		return common.NewValidationError("title", "must not be empty")
	}
	if len(recipe.Title) > maxTitleLen {
		return common.NewValidationError("title", "must be at most 255 characters")
	}
	if len(recipe.Link) > maxLinkLen {
		return common.NewValidationError("link", "must be at most 255 characters")
	}
	if recipe.Price.Exponent() < -2 {
		return common.NewValidationError("price", "must have at most 2 decimal places")
	}
	if recipe.Price.Abs().GreaterThanOrEqual(priceLimit) {
		return common.NewValidationError("price", "must be less than 1000")
	}
	if recipe.TimeMinute < 0 {
		return common.NewValidationError("time_minute", "must not be negative")
	}
	return nil
}
