package service

import (
	"context"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/types"
)

// IRecipeService defines the interface for recipe and review operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeSummary, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, req *types.RecipeRequest) (string, error)
	UpdateRecipe(ctx context.Context, id string, req *types.RecipeRequest) error
	DeleteRecipe(ctx context.Context, id string) error

	AddReview(ctx context.Context, recipeID string, req *types.ReviewRequest) (string, error)
	UpdateReview(ctx context.Context, recipeID, reviewID string, req *types.ReviewRequest) error
	DeleteReview(ctx context.Context, recipeID, reviewID string) error

	ListCuisines(ctx context.Context) ([]model.Cuisine, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
	Ping(ctx context.Context) error
}
