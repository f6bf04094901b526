package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/services"
)

type createRecipeRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	TimeMinute  *int             `json:"time_minute" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Description string           `json:"description"`
	Link        string           `json:"link" binding:"omitempty,max=255"`
}

type updateRecipeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=255"`
	TimeMinute  *int             `json:"time_minute"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
}

// recipeSummary is the reduced projection used by list responses. The
// description is deliberately absent: lists carry summaries, detail
// responses carry the full content.
type recipeSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	TimeMinute int    `json:"time_minute"`
	Price      string `json:"price"`
	Link       string `json:"link"`
}

type recipeDetail struct {
	recipeSummary
	Description string `json:"description"`
}

func newRecipeSummary(r *models.Recipe) recipeSummary {
	return recipeSummary{
		ID:         r.ID,
		Title:      r.Title,
		TimeMinute: r.TimeMinute,
		Price:      r.Price.StringFixed(2),
		Link:       r.Link,
	}
}

func newRecipeDetail(r *models.Recipe) recipeDetail {
	return recipeDetail{
		recipeSummary: newRecipeSummary(r),
		Description:   r.Description,
	}
}

// recipeID parses the :id path parameter. A non-numeric id cannot name any
// recipe, so it reports false and the caller answers 404.
func recipeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
		return 0, false
	}
	return id, true
}

// listRecipes handles GET /api/recipes/.
func (s *Server) listRecipes(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	found, err := s.recipes.List(c.Request.Context(), user.ID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	result := make([]recipeSummary, 0, len(found))
	for _, r := range found {
		result = append(result, newRecipeSummary(r))
	}
	c.JSON(http.StatusOK, result)
}

// createRecipe handles POST /api/recipes/. The owner is always the
// authenticated caller; an owner-like field in the payload is ignored by the
// request schema.
func (s *Server) createRecipe(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindingError(c, err)
		return
	}

	recipe, err := s.recipes.Create(c.Request.Context(), user.ID, services.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		TimeMinute:  *req.TimeMinute,
		Link:        req.Link,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeDetail(recipe))
}

// getRecipe handles GET /api/recipes/:id/.
func (s *Server) getRecipe(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := s.recipes.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

// updateRecipe handles PATCH/PUT /api/recipes/:id/.
func (s *Server) updateRecipe(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindingError(c, err)
		return
	}

	recipe, err := s.recipes.Update(c.Request.Context(), user.ID, id, services.RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		TimeMinute:  req.TimeMinute,
		Link:        req.Link,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

// deleteRecipe handles DELETE /api/recipes/:id/.
func (s *Server) deleteRecipe(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := s.recipes.Delete(c.Request.Context(), user.ID, id); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
