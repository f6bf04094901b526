package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/a-mean-h/recepie-api-app/internal/server/models"
)

// userContextKey is the gin context key under which the authenticated user is
// stored by the auth middleware.
const userContextKey = "auth_user"

// userFromContext returns the user the auth middleware resolved for this
// request.
func userFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// authRequired resolves the bearer token from the Authorization header and
// injects the user into the request context. Both the "Bearer <token>" and
// "Token <token>" schemes are accepted.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"detail": "authentication credentials were not provided"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || (!strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token")) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"detail": "invalid authorization header"})
			return
		}

		user, err := s.tokens.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"detail": "invalid token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// requestLogger logs one line per request with method, path, status, and
// latency.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
