package types

import (
	"github.com/pageza/recipebook/backend/internal/model"
)

// RecipeRequest is the request body for creating or replacing a recipe.
// Cuisine and Tags carry names that must exist in the reference collections.
type RecipeRequest struct {
	Name         string             `json:"name" validate:"required"`
	Cuisine      string             `json:"cuisine" validate:"required"`
	PrepTime     model.Number       `json:"prepTime"`
	CookTime     model.Number       `json:"cookTime"`
	Servings     model.Number       `json:"servings"`
	Ingredients  []model.Ingredient `json:"ingredients" validate:"required,min=1"`
	Instructions []string           `json:"instructions" validate:"required,min=1"`
	Tags         []string           `json:"tags" validate:"required,min=1"`
}

// ReviewRequest is the request body for adding or replacing a review.
// A review id in the body is never read; the path decides it.
type ReviewRequest struct {
	User    string        `json:"user" validate:"required"`
	Rating  *model.Number `json:"rating" validate:"required"`
	Comment string        `json:"comment" validate:"required"`
}

// RecipeFilterQuery binds the listing query string.
type RecipeFilterQuery struct {
	Tags        string `form:"tags"`
	Cuisine     string `form:"cuisine"`
	Ingredients string `form:"ingredients"`
	Name        string `form:"name"`
}
