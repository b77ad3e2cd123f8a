package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salespulse/internal/domain/dto"
	"github.com/guttosm/salespulse/internal/errs"
	"github.com/guttosm/salespulse/internal/logger"
)

// ErrorHandler is a Gin middleware that turns the last error attached with
// c.Error into a JSON ErrorResponse.
//
// Mapping:
//   - errs.ValidationError → 400
//   - errs.NotFoundError → 404
//   - errs.ConflictError → 409
//   - errs.UnprocessableReferenceError → 422
//   - anything else → 500 (logged, details hidden)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
	}
	c.JSON(status, dto.NewErrorResponse(message, nil))
}

// StatusFor maps an error to its HTTP status and client-facing message.
func StatusFor(err error) (int, string) {
	var (
		validation *errs.ValidationError
		notFound   *errs.NotFoundError
		conflict   *errs.ConflictError
		reference  *errs.UnprocessableReferenceError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Message
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Message
	case errors.As(err, &reference):
		return http.StatusUnprocessableEntity, reference.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
