package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/ExamPortal/internal/controller"
	"github.com/lshigami/ExamPortal/internal/service"
)

type ResultController struct {
	resultService service.ResultService
}

func NewResultController(resultService service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// PublishResults godoc
// @Summary (Admin) Publish results
// @Description Computes percentiles over all completed attempts and makes results visible to students.
// @Tags Admin - Results
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.PublicationDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/results/publish [post]
func (c *ResultController) PublishResults(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	pub, err := c.resultService.Publish(ctx.Request.Context(), examID)
	if err != nil {
		controller.RespondError(ctx, "PublishResults", err)
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

// UnpublishResults godoc
// @Summary (Admin) Unpublish results
// @Description Hides results and clears percentiles. Scores are kept.
// @Tags Admin - Results
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.PublicationDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/results/publish [delete]
func (c *ResultController) UnpublishResults(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	pub, err := c.resultService.Unpublish(ctx.Request.Context(), examID)
	if err != nil {
		controller.RespondError(ctx, "UnpublishResults", err)
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

// ListResults godoc
// @Summary (Admin) List attempts and scores for an exam
// @Tags Admin - Results
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.AttemptResultAdminDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	examID, ok := controller.ParseID(ctx, "exam_id")
	if !ok {
		return
	}
	results, err := c.resultService.ListExamResults(ctx.Request.Context(), examID)
	if err != nil {
		controller.RespondError(ctx, "ListResults", err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}
