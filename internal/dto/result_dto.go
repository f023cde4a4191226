package dto

import "time"

// ResultDTO is the student-facing score card.
type ResultDTO struct {
	AttemptID    uint     `json:"attempt_id"`
	ExamID       uint     `json:"exam_id"`
	ExamTitle    string   `json:"exam_title"`
	Score        float64  `json:"score"`
	TotalMarks   float64  `json:"total_marks"`
	CorrectCount int      `json:"correct_count"`
	WrongCount   int      `json:"wrong_count"`
	SkippedCount int      `json:"skipped_count"`
	Percentile   *float64 `json:"percentile,omitempty"`
}

type AnswerKeyEntryDTO struct {
	QuestionID           uint     `json:"question_id"`
	OrderInExam          int      `json:"order_in_exam"`
	Subject              string   `json:"subject"`
	Kind                 string   `json:"kind"`
	Text                 string   `json:"text"`
	Options              []string `json:"options,omitempty"`
	CorrectOption        *int     `json:"correct_option,omitempty"`
	CorrectNumericAnswer *float64 `json:"correct_numeric_answer,omitempty"`
	SelectedAnswer       string   `json:"selected_answer"`
	Verdict              string   `json:"verdict"`
	Marks                float64  `json:"marks"`
	NegativeMarks        float64  `json:"negative_marks"`
}

type AnswerKeyDTO struct {
	AttemptID uint                `json:"attempt_id"`
	ExamID    uint                `json:"exam_id"`
	Entries   []AnswerKeyEntryDTO `json:"entries"`
}

// AttemptResultAdminDTO is one row of the admin results table.
type AttemptResultAdminDTO struct {
	AttemptID        uint       `json:"attempt_id"`
	StudentID        uint       `json:"student_id"`
	Status           string     `json:"status"`
	SubmitReason     string     `json:"submit_reason,omitempty"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	CorrectCount     int        `json:"correct_count"`
	WrongCount       int        `json:"wrong_count"`
	SkippedCount     int        `json:"skipped_count"`
	NetMarks         float64    `json:"net_marks"`
	ResultCalculated bool       `json:"result_calculated"`
	ResultPublished  bool       `json:"result_published"`
	Percentile       *float64   `json:"percentile,omitempty"`
}

type PublicationDTO struct {
	ExamID         uint `json:"exam_id"`
	ResultDeclared bool `json:"result_declared"`
	AttemptCount   int  `json:"attempt_count"`
}
