package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/internal/controller"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	adminExamService service.AdminExamService
}

func NewExamController(adminExamService service.AdminExamService) *ExamController {
	return &ExamController{adminExamService: adminExamService}
}

// CreateExam godoc
// @Summary (Admin) Create an exam with its questions
// @Description Single-choice questions need options and a correct_option index; numeric questions need correct_numeric_answer and no options. Marks default to 4 and negative marks to 1.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_data body dto.ExamCreateDTO true "Exam and questions"
// @Success 201 {object} dto.ExamDTO "Exam created"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam definition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "CreateExam", err)
		return
	}
	exam, err := c.adminExamService.CreateExam(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("Admin CreateExam: service error")
		controller.RespondError(ctx, "CreateExam", err)
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

// GetExam godoc
// @Summary (Admin) Get an exam with its answer key
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	exam, err := c.adminExamService.GetExam(ctx.Request.Context(), examID)
	if err != nil {
		controller.RespondError(ctx, "GetExam", err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to an exam
// @Description Only allowed before anyone has started the exam.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param question body dto.QuestionCreateDTO true "Question"
// @Success 201 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question or exam already attempted"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/questions [post]
func (c *ExamController) AddQuestion(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "AddQuestion", err)
		return
	}
	q, err := c.adminExamService.AddQuestion(ctx.Request.Context(), examID, req)
	if err != nil {
		controller.RespondError(ctx, "AddQuestion", err)
		return
	}
	ctx.JSON(http.StatusCreated, q)
}

// SetStatus godoc
// @Summary (Admin) Activate or deactivate an exam
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param status body dto.ExamStatusUpdateDTO true "New active flag"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/status [patch]
func (c *ExamController) SetStatus(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamStatusUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "SetStatus", err)
		return
	}
	if err := c.adminExamService.SetActive(ctx.Request.Context(), examID, *req.IsActive); err != nil {
		controller.RespondError(ctx, "SetStatus", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam status updated"})
}

// SetAnswerKey godoc
// @Summary (Admin) Publish or hide the answer key
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param answer_key body dto.AnswerKeyUpdateDTO true "New answer key flag"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/answer-key [patch]
func (c *ExamController) SetAnswerKey(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.AnswerKeyUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "SetAnswerKey", err)
		return
	}
	if err := c.adminExamService.SetAnswerKeyPublished(ctx.Request.Context(), examID, *req.Published); err != nil {
		controller.RespondError(ctx, "SetAnswerKey", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Answer key visibility updated"})
}

// AssignStudents godoc
// @Summary (Admin) Assign an exam to students
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param assignment body dto.AssignStudentsDTO true "Student IDs"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/assignments [post]
func (c *ExamController) AssignStudents(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.AssignStudentsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, "AssignStudents", err)
		return
	}
	if err := c.adminExamService.AssignStudents(ctx.Request.Context(), examID, req.StudentIDs); err != nil {
		controller.RespondError(ctx, "AssignStudents", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Students assigned"})
}
