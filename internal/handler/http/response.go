package http

import (
	"errors"
	"net/http"

	"harumnesia/internal/logger"
	"harumnesia/internal/model"
	"harumnesia/internal/recommend"

	"github.com/gin-gonic/gin"
)

// Error codes of the JSON error envelope.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidID       = "INVALID_ID"
	CodeNotFound        = "NOT_FOUND"
	CodePerfumeNotFound = "PERFUME_NOT_FOUND"
	CodeDuplicateBrand  = "DUPLICATE_BRAND"
	CodeDatabase        = "DATABASE_ERROR"
	CodeMLUpstream      = "ML_UPSTREAM_ERROR"
	CodeTooLarge        = "PAYLOAD_TOO_LARGE"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps a service error to its HTTP status and code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, model.ErrInvalidID):
		return http.StatusBadRequest, CodeInvalidID
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, CodePerfumeNotFound
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, model.ErrDuplicate):
		return http.StatusConflict, CodeDuplicateBrand
	case errors.Is(err, recommend.ErrUpstream):
		return http.StatusBadGateway, CodeMLUpstream
	default:
		return http.StatusInternalServerError, CodeDatabase
	}
}

func respondError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed", logger.Err(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: err.Error()})
}

// respondBindError reports a body that failed decoding or validation.
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    CodeTooLarge,
			Message: err.Error(),
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidation,
		Message: err.Error(),
	})
}
