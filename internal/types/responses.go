package types

import "github.com/pageza/recipebook/backend/internal/model"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// RecipeCreatedResponse is returned by POST /recipes.
type RecipeCreatedResponse struct {
	Message  string `json:"message"`
	RecipeID string `json:"recipeId"`
}

// ReviewResponse is returned by review creation and update.
type ReviewResponse struct {
	Message  string `json:"message"`
	ReviewID string `json:"reviewId"`
}

// RecipeListResponse is returned by GET /recipes.
type RecipeListResponse struct {
	Recipes []model.RecipeSummary `json:"recipes"`
}

// CuisineListResponse is returned by GET /cuisines.
type CuisineListResponse struct {
	Cuisines []model.Cuisine `json:"cuisines"`
}

// TagListResponse is returned by GET /tags.
type TagListResponse struct {
	Tags []model.Tag `json:"tags"`
}
