package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
	"github.com/pageza/recipebook/backend/internal/types"
)

func ratingOf(v float64) *model.Number {
	n := model.Number(v)
	return &n
}

func TestAddReview(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	id, err := svc.CreateRecipe(ctx, validRecipeRequest())
	require.NoError(t, err)

	reviewID, err := svc.AddReview(ctx, id, &types.ReviewRequest{User: "ana", Rating: ratingOf(4), Comment: "tasty"})
	require.NoError(t, err)
	require.NotEmpty(t, reviewID)

	recipe, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	require.Len(t, recipe.Reviews, 1)
	got := recipe.Reviews[0]
	assert.Equal(t, reviewID, got.ID)
	assert.Equal(t, "ana", got.User)
	assert.Equal(t, float64(4), got.Rating)
	assert.Equal(t, "tasty", got.Comment)
	assert.True(t, fixed.Equal(got.Date))
}

func TestAddReviewValidation(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, validRecipeRequest())
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *types.ReviewRequest
		wantErr string
	}{
		{name: "missing everything", req: &types.ReviewRequest{}, wantErr: "Missing required fields: user, rating, comment"},
		{name: "missing rating", req: &types.ReviewRequest{User: "a", Comment: "b"}, wantErr: "Missing required fields: rating"},
		{name: "rating zero", req: &types.ReviewRequest{User: "a", Rating: ratingOf(0), Comment: "b"}, wantErr: "Rating must be between 1 and 5"},
		{name: "rating six", req: &types.ReviewRequest{User: "a", Rating: ratingOf(6), Comment: "b"}, wantErr: "Rating must be between 1 and 5"},
		{name: "rating below one", req: &types.ReviewRequest{User: "a", Rating: ratingOf(0.5), Comment: "b"}, wantErr: "Rating must be between 1 and 5"},
		{name: "rating NaN", req: &types.ReviewRequest{User: "a", Rating: ratingOf(math.NaN()), Comment: "b"}, wantErr: "Rating must be between 1 and 5"},
		{name: "rating infinite", req: &types.ReviewRequest{User: "a", Rating: ratingOf(math.Inf(1)), Comment: "b"}, wantErr: "Rating must be between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddReview(ctx, id, tt.req)
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	for _, r := range []float64{1, 5} {
		_, err := svc.AddReview(ctx, id, &types.ReviewRequest{User: "a", Rating: ratingOf(r), Comment: "b"})
		assert.NoError(t, err, "rating %v is in range", r)
	}

	_, err = svc.AddReview(ctx, "missing", &types.ReviewRequest{User: "a", Rating: ratingOf(3), Comment: "b"})
	assert.Equal(t, ErrRecipeNotFound, err)
}

func TestUpdateAndDeleteReview(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, validRecipeRequest())
	require.NoError(t, err)
	reviewID, err := svc.AddReview(ctx, id, &types.ReviewRequest{User: "ana", Rating: ratingOf(2), Comment: "meh"})
	require.NoError(t, err)

	later := time.Now().Add(time.Hour).UTC()
	svc.now = func() time.Time { return later }
	require.NoError(t, svc.UpdateReview(ctx, id, reviewID, &types.ReviewRequest{User: "ana", Rating: ratingOf(5), Comment: "grew on me"}))

	recipe, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	require.Len(t, recipe.Reviews, 1)
	assert.Equal(t, reviewID, recipe.Reviews[0].ID)
	assert.Equal(t, float64(5), recipe.Reviews[0].Rating)
	assert.Equal(t, "grew on me", recipe.Reviews[0].Comment)
	assert.WithinDuration(t, later, recipe.Reviews[0].Date, time.Millisecond)

	valid := &types.ReviewRequest{User: "bo", Rating: ratingOf(3), Comment: "ok"}
	assert.Equal(t, ErrReviewNotFound, svc.UpdateReview(ctx, id, "missing-review", valid))
	assert.Equal(t, ErrRecipeNotFound, svc.UpdateReview(ctx, "missing-recipe", reviewID, valid))
	assert.Equal(t, ErrRatingRange, svc.UpdateReview(ctx, id, reviewID, &types.ReviewRequest{User: "bo", Rating: ratingOf(9), Comment: "ok"}))

	require.NoError(t, svc.DeleteReview(ctx, id, reviewID))
	assert.Equal(t, ErrReviewNotFound, svc.DeleteReview(ctx, id, reviewID))
	assert.Equal(t, ErrRecipeNotFound, svc.DeleteReview(ctx, "missing-recipe", reviewID))
}

type mockStore struct {
	mock.Mock
	store.Store
}

func (m *mockStore) NewID() string { return "review-1" }

func (m *mockStore) AppendReview(ctx context.Context, recipeID string, review *model.Review) error {
	return m.Called(ctx, recipeID, review).Error(0)
}

func TestAddReviewSurfacesStoreFailure(t *testing.T) {
	st := &mockStore{}
	boom := assert.AnError
	st.On("AppendReview", mock.Anything, "r1", mock.MatchedBy(func(r *model.Review) bool {
		return r.ID == "review-1" && r.Rating == 3
	})).Return(boom)

	svc := NewRecipeService(st)
	_, err := svc.AddReview(context.Background(), "r1", &types.ReviewRequest{User: "a", Rating: ratingOf(3), Comment: "b"})

	assert.ErrorIs(t, err, boom)
	var verr *ValidationError
	var nferr *NotFoundError
	assert.False(t, errors.As(err, &verr))
	assert.False(t, errors.As(err, &nferr))
	st.AssertExpectations(t)
}
