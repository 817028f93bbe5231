package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/internal/service"
)

// SetupAPI registers every public endpoint on router
func SetupAPI(router gin.IRouter, recipeService service.IRecipeService) {
	// Initialize handlers
	recipeHandler := NewRecipeHandler(recipeService)
	referenceHandler := NewReferenceHandler(recipeService)
	healthHandler := NewHealthHandler(recipeService)

	// Register routes
	recipeHandler.RegisterRoutes(router)
	referenceHandler.RegisterRoutes(router)
	healthHandler.RegisterRoutes(router)
}
