package httpapi

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// buildRouter registers all routes. HandleMethodNotAllowed is on so that a
// wrong verb on a known path (e.g. POST /api/users/me/) yields 405, not 404.
func (s *Server) buildRouter() *gin.Engine {
	registerTagNames.Do(useJSONTagNames)

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	})

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("/", s.createUser)
	users.POST("/token/", s.createToken)

	me := users.Group("/me", s.authRequired())
	me.GET("/", s.getProfile)
	me.PUT("/", s.updateProfile)
	me.PATCH("/", s.updateProfile)

	recipes := api.Group("/recipes", s.authRequired())
	recipes.GET("/", s.listRecipes)
	recipes.POST("/", s.createRecipe)
	recipes.GET("/:id/", s.getRecipe)
	recipes.PUT("/:id/", s.updateRecipe)
	recipes.PATCH("/:id/", s.updateRecipe)
	recipes.DELETE("/:id/", s.deleteRecipe)

	return r
}

// useJSONTagNames makes binding validation errors report JSON field names
// instead of Go struct field names.
func useJSONTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
