package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/types"
)

// ReferenceHandler serves the read-only cuisine and tag collections.
type ReferenceHandler struct {
	recipeService service.IRecipeService
}

func NewReferenceHandler(recipeService service.IRecipeService) *ReferenceHandler {
	return &ReferenceHandler{recipeService: recipeService}
}

func (h *ReferenceHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/cuisines", h.ListCuisines)
	router.GET("/tags", h.ListTags)
}

func (h *ReferenceHandler) ListCuisines(c *gin.Context) {
	cuisines, err := h.recipeService.ListCuisines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CuisineListResponse{Cuisines: cuisines})
}

func (h *ReferenceHandler) ListTags(c *gin.Context) {
	tags, err := h.recipeService.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.TagListResponse{Tags: tags})
}
