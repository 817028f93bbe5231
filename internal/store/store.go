// Package store defines the persistence contract of the recipe book.
// Implementations live in the mongostore and sqlstore subpackages.
package store

import (
	"context"
	"errors"

	"github.com/pageza/recipebook/backend/internal/model"
)

var (
	// ErrNotFound is returned when no recipe (or reference entry) matches.
	// Malformed identifiers are reported the same way.
	ErrNotFound = errors.New("not found")

	// ErrReviewNotFound is returned when the recipe exists but holds no
	// review with the requested identifier.
	ErrReviewNotFound = errors.New("review not found")
)

// RecipeStore gives access to the recipes collection.
type RecipeStore interface {
	// NewID returns a fresh identifier in the store's native format.
	NewID() string

	ListRecipes(ctx context.Context, filter model.RecipeFilter) ([]model.RecipeSummary, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	AllRecipes(ctx context.Context) ([]model.RecipeExport, error)

	// InsertRecipe persists recipe and returns its generated id.
	InsertRecipe(ctx context.Context, recipe *model.Recipe) (string, error)
	// ReplaceRecipe overwrites every field except the reviews.
	ReplaceRecipe(ctx context.Context, id string, recipe *model.Recipe) error
	// DeleteRecipe removes the recipe and, with it, all its reviews.
	DeleteRecipe(ctx context.Context, id string) error

	AppendReview(ctx context.Context, recipeID string, review *model.Review) error
	ReplaceReview(ctx context.Context, recipeID, reviewID string, review *model.Review) error
	RemoveReview(ctx context.Context, recipeID, reviewID string) error
}

// ReferenceStore gives access to the cuisines and tags collections.
type ReferenceStore interface {
	FindCuisineByName(ctx context.Context, name string) (*model.Cuisine, error)
	// FindTagsByNames returns every tag whose name is in names, in no
	// particular order.
	FindTagsByNames(ctx context.Context, names []string) ([]model.Tag, error)
	ListCuisines(ctx context.Context) ([]model.Cuisine, error)
	ListTags(ctx context.Context) ([]model.Tag, error)

	// UpsertCuisine and UpsertTag create the entry if its name is unknown.
	UpsertCuisine(ctx context.Context, name string) (*model.Cuisine, error)
	UpsertTag(ctx context.Context, name string) (*model.Tag, error)
}

// Store is the full persistence surface shared by all handlers.
type Store interface {
	RecipeStore
	ReferenceStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
