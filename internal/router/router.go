package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/api"
	"github.com/pageza/recipebook/backend/internal/metrics"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, recipeService service.IRecipeService) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Not found"})
	})

	router.GET("/metrics", metrics.Handler())
	api.SetupAPI(router, recipeService)

	return router
}
