package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/internal/types"
)

func (h *RecipeHandler) AddReview(c *gin.Context) {
	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	reviewID, err := h.recipeService.AddReview(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.ReviewResponse{
		Message:  "Review added successfully",
		ReviewID: reviewID,
	})
}

func (h *RecipeHandler) UpdateReview(c *gin.Context) {
	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	reviewID := c.Param("reviewId")
	if err := h.recipeService.UpdateReview(c.Request.Context(), c.Param("id"), reviewID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ReviewResponse{
		Message:  "Review updated successfully",
		ReviewID: reviewID,
	})
}

func (h *RecipeHandler) DeleteReview(c *gin.Context) {
	if err := h.recipeService.DeleteReview(c.Request.Context(), c.Param("id"), c.Param("reviewId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "Review deleted successfully"})
}
