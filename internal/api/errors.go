package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
	"github.com/pageza/recipebook/backend/internal/types"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInternalError = "Internal server error"
)

// respondError writes the status and body matching err. Unexpected errors
// are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: notFoundErr.Error()})
	default:
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.RequestID(c)).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: msgInternalError})
	}
}

func badBody(c *gin.Context, err error) {
	log.Debug().Err(err).Str("request_id", middleware.RequestID(c)).Msg("Failed to decode request body")
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msgInvalidBody})
}
