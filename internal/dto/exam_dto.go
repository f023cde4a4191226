package dto

import "time"

// QuestionCreateDTO is one question of a new exam. Exactly one of the
// single-choice or numeric answer fields must be set, matching Kind.
type QuestionCreateDTO struct {
	OrderInExam          int      `json:"order_in_exam" binding:"required,min=1"`
	Subject              string   `json:"subject" binding:"required"`
	Kind                 string   `json:"kind" binding:"required,oneof=single_choice numeric"`
	Text                 string   `json:"text" binding:"required"`
	ImageURL             *string  `json:"image_url" binding:"omitempty,url"`
	Options              []string `json:"options" binding:"omitempty,dive,required"`
	CorrectOption        *int     `json:"correct_option" binding:"omitempty,min=0"`
	CorrectNumericAnswer *float64 `json:"correct_numeric_answer"`
	NumericTolerance     float64  `json:"numeric_tolerance" binding:"min=0"`
	Marks                *float64 `json:"marks" binding:"omitempty,gt=0"`
	NegativeMarks        *float64 `json:"negative_marks" binding:"omitempty,min=0"`
}

type ExamCreateDTO struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,min=1,max=1440"`
	IsActive        bool                `json:"is_active"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type ExamStatusUpdateDTO struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AnswerKeyUpdateDTO struct {
	Published *bool `json:"published" binding:"required"`
}

type AssignStudentsDTO struct {
	StudentIDs []uint `json:"student_ids" binding:"required,min=1,dive,min=1"`
}

// QuestionAdminDTO includes the correct answer and is only served to admins.
type QuestionAdminDTO struct {
	ID                   uint     `json:"id"`
	ExamID               uint     `json:"exam_id"`
	OrderInExam          int      `json:"order_in_exam"`
	Subject              string   `json:"subject"`
	Kind                 string   `json:"kind"`
	Text                 string   `json:"text"`
	ImageURL             *string  `json:"image_url,omitempty"`
	Options              []string `json:"options,omitempty"`
	CorrectOption        *int     `json:"correct_option,omitempty"`
	CorrectNumericAnswer *float64 `json:"correct_numeric_answer,omitempty"`
	NumericTolerance     float64  `json:"numeric_tolerance"`
	Marks                float64  `json:"marks"`
	NegativeMarks        float64  `json:"negative_marks"`
}

// QuestionDTO is what a student sees while sitting the exam.
type QuestionDTO struct {
	ID            uint     `json:"id"`
	OrderInExam   int      `json:"order_in_exam"`
	Subject       string   `json:"subject"`
	Kind          string   `json:"kind"`
	Text          string   `json:"text"`
	ImageURL      *string  `json:"image_url,omitempty"`
	Options       []string `json:"options,omitempty"`
	Marks         float64  `json:"marks"`
	NegativeMarks float64  `json:"negative_marks"`
}

type ExamDTO struct {
	ID                 uint               `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	DurationMinutes    int                `json:"duration_minutes"`
	TotalMarks         float64            `json:"total_marks"`
	IsActive           bool               `json:"is_active"`
	ResultDeclared     bool               `json:"result_declared"`
	AnswerKeyPublished bool               `json:"answer_key_published"`
	Questions          []QuestionAdminDTO `json:"questions,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// StudentExamDTO lists an assigned exam together with the caller's latest attempt.
type StudentExamDTO struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	TotalMarks      float64 `json:"total_marks"`
	IsActive        bool    `json:"is_active"`
	ResultDeclared  bool    `json:"result_declared"`
	AttemptID       *uint   `json:"attempt_id,omitempty"`
	AttemptStatus   string  `json:"attempt_status,omitempty"`
}
