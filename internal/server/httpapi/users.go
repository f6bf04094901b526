package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/services"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name"`
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

// userResponse is the public projection of a user. The password, in any
// form, is never part of a response.
type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{Email: user.Email, Name: user.Name}
}

// createUser handles POST /api/users/.
func (s *Server) createUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindingError(c, err)
		return
	}

	user, err := s.users.Create(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

// createToken handles POST /api/users/token/. Invalid credentials yield a
// 400 without any token key in the body, and without revealing whether the
// email exists.
func (s *Server) createToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindingError(c, err)
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "unable to authenticate with provided credentials"})
		return
	}

	token, err := s.tokens.Issue(c.Request.Context(), user)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// getProfile handles GET /api/users/me/.
func (s *Server) getProfile(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// updateProfile handles PATCH/PUT /api/users/me/.
func (s *Server) updateProfile(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindingError(c, err)
		return
	}

	updated, err := s.users.Update(c.Request.Context(), user, services.UserUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(updated))
}
