package service

import (
	"fmt"
)

// ValidationError reports a request that failed a presence or reference check.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing recipe or review.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Resource) }

var (
	ErrRecipeNotFound = &NotFoundError{Resource: "Recipe"}
	ErrReviewNotFound = &NotFoundError{Resource: "Review"}

	ErrInvalidCuisine = &ValidationError{Message: "Invalid cuisine"}
	ErrInvalidTags    = &ValidationError{Message: "One or more invalid tags"}
	ErrRatingRange    = &ValidationError{Message: fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating)}
)
