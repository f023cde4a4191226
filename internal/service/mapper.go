package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/rs/zerolog/log"
)

func toQuestionDTOs(questions []model.Question) []dto.QuestionDTO {
	out := make([]dto.QuestionDTO, len(questions))
	if err := copier.Copy(&out, &questions); err != nil {
		log.Error().Err(err).Msg("copy questions to DTO")
	}
	return out
}

func toQuestionAdminDTOs(questions []model.Question) []dto.QuestionAdminDTO {
	out := make([]dto.QuestionAdminDTO, len(questions))
	if err := copier.Copy(&out, &questions); err != nil {
		log.Error().Err(err).Msg("copy questions to admin DTO")
	}
	return out
}

func toResponseDTO(r model.Response) dto.ResponseDTO {
	return dto.ResponseDTO{
		QuestionID:       r.QuestionID,
		Answer:           r.Answer(),
		Status:           string(r.Status),
		TimeSpentSeconds: r.TimeSpentSeconds,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toAttemptDTO(a *model.Attempt, exam *model.Exam, now time.Time) dto.AttemptDTO {
	out := dto.AttemptDTO{
		ID:              a.ID,
		ExamID:          a.ExamID,
		StudentID:       a.StudentID,
		Status:          string(a.Status),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		SubmitReason:    string(a.SubmitReason),
		ServerTime:      now,
		DurationMinutes: exam.DurationMinutes,
	}
	if !a.IsCompleted() {
		out.RemainingSeconds = a.RemainingSeconds(exam.Duration(), now)
	}
	return out
}

func toAttemptDetailDTO(a *model.Attempt, exam *model.Exam, questions []model.Question, responses []model.Response, now time.Time) *dto.AttemptDetailDTO {
	detail := &dto.AttemptDetailDTO{
		AttemptDTO: toAttemptDTO(a, exam, now),
		ExamTitle:  exam.Title,
		Questions:  toQuestionDTOs(questions),
		Responses:  make([]dto.ResponseDTO, 0, len(responses)),
	}
	for _, r := range responses {
		detail.Responses = append(detail.Responses, toResponseDTO(r))
	}
	return detail
}

func toAttemptResultAdminDTO(a model.Attempt) dto.AttemptResultAdminDTO {
	var out dto.AttemptResultAdminDTO
	if err := copier.Copy(&out, &a); err != nil {
		log.Error().Err(err).Uint("attemptID", a.ID).Msg("copy attempt to admin result DTO")
	}
	out.AttemptID = a.ID
	return out
}
