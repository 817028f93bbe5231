package mocks

import (
	"context"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeSummary), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, req *types.RecipeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id string, req *types.RecipeRequest) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AddReview mocks the AddReview method
func (m *MockRecipeService) AddReview(ctx context.Context, recipeID string, req *types.ReviewRequest) (string, error) {
	args := m.Called(ctx, recipeID, req)
	return args.String(0), args.Error(1)
}

// UpdateReview mocks the UpdateReview method
func (m *MockRecipeService) UpdateReview(ctx context.Context, recipeID, reviewID string, req *types.ReviewRequest) error {
	args := m.Called(ctx, recipeID, reviewID, req)
	return args.Error(0)
}

// DeleteReview mocks the DeleteReview method
func (m *MockRecipeService) DeleteReview(ctx context.Context, recipeID, reviewID string) error {
	args := m.Called(ctx, recipeID, reviewID)
	return args.Error(0)
}

// ListCuisines mocks the ListCuisines method
func (m *MockRecipeService) ListCuisines(ctx context.Context) ([]model.Cuisine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Cuisine), args.Error(1)
}

// ListTags mocks the ListTags method
func (m *MockRecipeService) ListTags(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

// Ping mocks the Ping method
func (m *MockRecipeService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
