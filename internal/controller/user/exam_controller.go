package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/internal/controller"
	"github.com/lshigami/ExamPortal/internal/middleware"
	"github.com/lshigami/ExamPortal/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService    service.ExamService
	attemptService service.AttemptService
}

func NewExamController(es service.ExamService, as service.AttemptService) *ExamController {
	return &ExamController{examService: es, attemptService: as}
}

// ListExams godoc
// @Summary (Student) List assigned exams
// @Description Exams assigned to the caller, with the status of the latest attempt on each.
// @Tags Student - Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StudentExamDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	student := middleware.Identity(ctx)
	exams, err := c.examService.ListAssignedExams(ctx.Request.Context(), student.UserID)
	if err != nil {
		controller.RespondError(ctx, "ListExams", err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// StartAttempt godoc
// @Summary (Student) Start or resume an attempt
// @Description Returns the caller's in-progress attempt for the exam, creating it if none exists. Repeated calls return the same attempt.
// @Tags Student - Attempts
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 201 {object} dto.AttemptDetailDTO "Attempt created"
// @Success 200 {object} dto.AttemptDetailDTO "Existing attempt resumed"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam ID"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 422 {object} dto.ErrorResponse "Exam inactive or not assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{exam_id}/attempts [post]
func (c *ExamController) StartAttempt(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	student := middleware.Identity(ctx)

	detail, created, err := c.attemptService.StartOrResume(ctx.Request.Context(), examID, student.UserID)
	if err != nil {
		controller.RespondError(ctx, "StartAttempt", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	} else {
		log.Info().Uint("attemptID", detail.ID).Uint("studentID", student.UserID).Msg("Attempt resumed")
	}
	ctx.JSON(status, detail)
}
