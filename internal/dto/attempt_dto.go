package dto

import (
	"time"

	"github.com/lshigami/ExamPortal/internal/model"
)

// ResponseUpsertDTO saves one question's state. TimeSpentDelta is the number
// of seconds since the question was last displayed; the server accumulates it.
type ResponseUpsertDTO struct {
	Answer         model.Answer `json:"answer" swaggertype:"object"`
	Status         string       `json:"status" binding:"required,response_status"`
	TimeSpentDelta int64        `json:"time_spent_delta" binding:"min=0"`
}

type SubmitAttemptDTO struct {
	Reason string `json:"reason" binding:"omitempty,oneof=manual timeout focus_lost fullscreen_exit"`
}

type ResponseDTO struct {
	QuestionID       uint         `json:"question_id"`
	Answer           model.Answer `json:"answer" swaggertype:"object"`
	Status           string       `json:"status"`
	TimeSpentSeconds int64        `json:"time_spent_seconds"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// AttemptDTO is the attempt record without scoring output.
type AttemptDTO struct {
	ID           uint       `json:"id"`
	ExamID       uint       `json:"exam_id"`
	StudentID    uint       `json:"student_id"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	SubmitReason string     `json:"submit_reason,omitempty"`
	// ServerTime and RemainingSeconds let the client rebuild its countdown
	// from the server clock instead of its own.
	ServerTime       time.Time `json:"server_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

type AttemptDetailDTO struct {
	AttemptDTO
	ExamTitle string        `json:"exam_title"`
	Questions []QuestionDTO `json:"questions"`
	Responses []ResponseDTO `json:"responses"`
}
