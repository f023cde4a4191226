package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/lshigami/ExamPortal/internal/service"
	"github.com/rs/zerolog/log"
)

// ParseID reads a positive numeric path parameter. On failure it writes a
// 400 response and returns false.
func ParseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + param + " format"})
		return 0, false
	}
	return uint(id), true
}

// BindError answers a request whose body failed binding or validation.
func BindError(ctx *gin.Context, op string, err error) {
	log.Warn().Err(err).Str("op", op).Msg("Failed to bind request body")
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// RespondError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500.
func RespondError(ctx *gin.Context, op string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Msg("Unhandled service error")
		_ = ctx.Error(err)
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrExamNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrQuestionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAttemptCompleted),
		errors.Is(err, service.ErrAttemptExpired),
		errors.Is(err, service.ErrAttemptInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrExamInactive),
		errors.Is(err, service.ErrExamNotAssigned),
		errors.Is(err, service.ErrResultNotPublished),
		errors.Is(err, service.ErrAnswerKeyNotPublished):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidAnswer),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidExam),
		errors.Is(err, model.ErrMalformedAnswer):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
