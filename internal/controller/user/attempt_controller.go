package user

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/internal/controller"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/middleware"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/lshigami/ExamPortal/internal/service"
)

type AttemptController struct {
	attemptService service.AttemptService
	resultService  service.ResultService
}

func NewAttemptController(as service.AttemptService, rs service.ResultService) *AttemptController {
	return &AttemptController{attemptService: as, resultService: rs}
}

// GetAttempt godoc
// @Summary (Student) Fetch an attempt
// @Description The attempt with its questions (without answers), the caller's responses, server time and remaining seconds.
// @Tags Student - Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	detail, err := c.attemptService.GetAttempt(ctx.Request.Context(), attemptID, middleware.Identity(ctx).UserID)
	if err != nil {
		controller.RespondError(ctx, "GetAttempt", err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SaveResponse godoc
// @Summary (Student) Save a response
// @Description Upserts the response for one question. time_spent_delta is added to the stored total.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param question_id path int true "Question ID"
// @Param response body dto.ResponseUpsertDTO true "Answer, status and elapsed seconds"
// @Success 200 {object} dto.ResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed answer or status"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt completed or time over"
// @Router /attempts/{attempt_id}/responses/{question_id} [put]
func (c *AttemptController) SaveResponse(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	questionID, ok := controller.ParseID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.ResponseUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "SaveResponse", err)
		return
	}

	resp, err := c.attemptService.UpsertResponse(ctx.Request.Context(), attemptID, middleware.Identity(ctx).UserID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, "SaveResponse", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAttempt godoc
// @Summary (Student) Submit an attempt
// @Description Completes and scores the attempt. Submitting an already completed attempt returns it unchanged.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Param submission body dto.SubmitAttemptDTO false "Why the attempt is being submitted"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptDTO
	// the body is optional; an empty one means a manual submit
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		controller.BindError(ctx, "SubmitAttempt", err)
		return
	}

	detail, err := c.attemptService.Submit(ctx.Request.Context(), attemptID, middleware.Identity(ctx).UserID, model.SubmitReason(req.Reason))
	if err != nil {
		controller.RespondError(ctx, "SubmitAttempt", err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GetResult godoc
// @Summary (Student) Read an attempt's result
// @Description Available once the attempt is completed and its exam's results are published.
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.ResultDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 409 {object} dto.ErrorResponse "Attempt still in progress"
// @Failure 422 {object} dto.ErrorResponse "Result not published"
// @Router /attempts/{attempt_id}/result [get]
func (c *AttemptController) GetResult(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	result, err := c.resultService.GetResult(ctx.Request.Context(), attemptID, middleware.Identity(ctx).UserID)
	if err != nil {
		controller.RespondError(ctx, "GetResult", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAnswerKey godoc
// @Summary (Student) Read the answer key for an attempt
// @Description Per-question correct answer, selected answer and verdict. Available once the exam's answer key is published.
// @Tags Student - Results
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AnswerKeyDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another student"
// @Failure 409 {object} dto.ErrorResponse "Attempt still in progress"
// @Failure 422 {object} dto.ErrorResponse "Answer key not published"
// @Router /attempts/{attempt_id}/answer-key [get]
func (c *AttemptController) GetAnswerKey(ctx *gin.Context) {
	attemptID, ok := controller.ParseID(ctx, "attempt_id")
	if !ok {
		return
	}
	key, err := c.resultService.GetAnswerKey(ctx.Request.Context(), attemptID, middleware.Identity(ctx).UserID)
	if err != nil {
		controller.RespondError(ctx, "GetAnswerKey", err)
		return
	}
	ctx.JSON(http.StatusOK, key)
}
