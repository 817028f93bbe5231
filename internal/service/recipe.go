package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
	"github.com/pageza/recipebook/backend/internal/types"
)

// RecipeService handles recipe and review operations
type RecipeService struct {
	store store.Store
	now   func() time.Time
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(s store.Store) *RecipeService {
	return &RecipeService{
		store: s,
		now:   time.Now,
	}
}

// ParseRecipeFilter turns the listing query string into a filter.
func ParseRecipeFilter(q types.RecipeFilterQuery) model.RecipeFilter {
	return model.RecipeFilter{
		Tags:        splitTerms(q.Tags),
		Cuisine:     strings.TrimSpace(q.Cuisine),
		Ingredients: splitTerms(q.Ingredients),
		Name:        strings.TrimSpace(q.Name),
	}
}

// translate maps store sentinels onto service errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrReviewNotFound):
		return ErrReviewNotFound
	case errors.Is(err, store.ErrNotFound):
		return ErrRecipeNotFound
	default:
		return err
	}
}

// ListRecipes returns the summaries of every recipe matching filter
func (s *RecipeService) ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeSummary, error) {
	recipes, err := s.store.ListRecipes(ctx, filter)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []model.RecipeSummary{}
	}
	return recipes, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return recipe, nil
}

// buildRecipe validates req and resolves its cuisine and tag names into
// snapshots of the reference entries.
func (s *RecipeService) buildRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error) {
	if err := checkRequired(req); err != nil {
		return nil, err
	}

	cuisine, err := s.store.FindCuisineByName(ctx, req.Cuisine)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCuisine
	}
	if err != nil {
		return nil, err
	}

	names := uniqueNames(req.Tags)
	found, err := s.store.FindTagsByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]model.Tag, len(found))
	for _, t := range found {
		if _, dup := byName[t.Name]; !dup {
			byName[t.Name] = t
		}
	}

	tags := make([]model.TagRef, 0, len(names))
	for _, name := range names {
		tag, ok := byName[name]
		if !ok {
			return nil, ErrInvalidTags
		}
		tags = append(tags, tag.Ref())
	}

	ingredients := make([]model.Ingredient, len(req.Ingredients))
	copy(ingredients, req.Ingredients)
	instructions := make([]string, len(req.Instructions))
	copy(instructions, req.Instructions)

	return &model.Recipe{
		Name:         req.Name,
		Cuisine:      cuisine.Ref(),
		PrepTime:     req.PrepTime.Float64(),
		CookTime:     req.CookTime.Float64(),
		Servings:     req.Servings.Float64(),
		Ingredients:  ingredients,
		Instructions: instructions,
		Tags:         tags,
		Reviews:      []model.Review{},
	}, nil
}

// CreateRecipe validates and stores a new recipe, returning its id
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.RecipeRequest) (string, error) {
	recipe, err := s.buildRecipe(ctx, req)
	if err != nil {
		return "", err
	}
	id, err := s.store.InsertRecipe(ctx, recipe)
	if err != nil {
		return "", fmt.Errorf("failed to create recipe: %w", err)
	}
	return id, nil
}

// UpdateRecipe replaces every field of a recipe except its reviews
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, req *types.RecipeRequest) error {
	recipe, err := s.buildRecipe(ctx, req)
	if err != nil {
		return err
	}
	return translate(s.store.ReplaceRecipe(ctx, id, recipe))
}

// DeleteRecipe deletes a recipe together with its reviews
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	return translate(s.store.DeleteRecipe(ctx, id))
}

// ListCuisines returns the cuisines reference collection
func (s *RecipeService) ListCuisines(ctx context.Context) ([]model.Cuisine, error) {
	return s.store.ListCuisines(ctx)
}

// ListTags returns the tags reference collection
func (s *RecipeService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.store.ListTags(ctx)
}

// Ping checks that the store is reachable
func (s *RecipeService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
