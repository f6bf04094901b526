// Package httpapi exposes the REST surface of the service: public user
// registration and token endpoints, and bearer-token protected profile and
// recipe endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/a-mean-h/recepie-api-app/internal/logging"
	"github.com/a-mean-h/recepie-api-app/internal/server/models"
	"github.com/a-mean-h/recepie-api-app/internal/server/services"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Create(ctx context.Context, email, password, name string) (*models.User, error)
	Update(ctx context.Context, user *models.User, upd services.UserUpdate) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// TokenService issues and resolves bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, user *models.User) (string, error)
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// RecipeService is the owner-scoped recipe CRUD surface.
type RecipeService interface {
	List(ctx context.Context, ownerID string) ([]*models.Recipe, error)
	Get(ctx context.Context, ownerID string, id int64) (*models.Recipe, error)
	Create(ctx context.Context, ownerID string, input services.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, ownerID string, id int64, upd services.RecipeUpdate) (*models.Recipe, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}

// Server hosts the HTTP API over the given services.
type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	tokens  TokenService
	recipes RecipeService
	handler http.Handler
}

// NewServer wires the handlers and routes into a ready-to-run server.
func NewServer(address string, logger logging.Logger, users UserService, tokens TokenService, recipes RecipeService) *Server {
	s := &Server{
		address: address,
		logger:  logger.With("module", "httpapi"),
		users:   users,
		tokens:  tokens,
		recipes: recipes,
	}
	s.handler = s.buildRouter()
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.handler,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
