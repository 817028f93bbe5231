package service

import (
	"context"
	"math"
	"time"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/types"
)

func (s *RecipeService) buildReview(id string, req *types.ReviewRequest) (*model.Review, error) {
	if err := checkRequired(req); err != nil {
		return nil, err
	}
	rating := req.Rating.Float64()
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return nil, ErrRatingRange
	}
	return &model.Review{
		ID:      id,
		User:    req.User,
		Rating:  rating,
		Comment: req.Comment,
		// Mongo keeps millisecond precision.
		Date: s.now().UTC().Truncate(time.Millisecond),
	}, nil
}

// AddReview appends a review to a recipe and returns the new review id
func (s *RecipeService) AddReview(ctx context.Context, recipeID string, req *types.ReviewRequest) (string, error) {
	review, err := s.buildReview(s.store.NewID(), req)
	if err != nil {
		return "", err
	}
	if err := s.store.AppendReview(ctx, recipeID, review); err != nil {
		return "", translate(err)
	}
	return review.ID, nil
}

// UpdateReview overwrites a review in place. The id always comes from
// reviewID and the date is reset to now.
func (s *RecipeService) UpdateReview(ctx context.Context, recipeID, reviewID string, req *types.ReviewRequest) error {
	review, err := s.buildReview(reviewID, req)
	if err != nil {
		return err
	}
	return translate(s.store.ReplaceReview(ctx, recipeID, reviewID, review))
}

// DeleteReview removes a review from a recipe
func (s *RecipeService) DeleteReview(ctx context.Context, recipeID, reviewID string) error {
	return translate(s.store.RemoveReview(ctx, recipeID, reviewID))
}
