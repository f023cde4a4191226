package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionKind string

const (
	QuestionSingleChoice QuestionKind = "single_choice"
	QuestionNumeric      QuestionKind = "numeric"
)

const (
	DefaultMarks         float64 = 4
	DefaultNegativeMarks float64 = 1
)

type Question struct {
	ID                   uint                        `gorm:"primarykey" json:"id"`
	ExamID               uint                        `json:"exam_id" gorm:"not null;index"`
	OrderInExam          int                         `json:"order_in_exam" gorm:"not null"`
	Subject              string                      `json:"subject" gorm:"not null"`
	Kind                 QuestionKind                `json:"kind" gorm:"type:varchar(32);not null"`
	Text                 string                      `json:"text" gorm:"type:text;not null"`
	ImageURL             *string                     `json:"image_url,omitempty"`
	Options              datatypes.JSONSlice[string] `json:"options,omitempty"`
	CorrectOption        *int                        `json:"correct_option,omitempty"`
	CorrectNumericAnswer *float64                    `json:"correct_numeric_answer,omitempty"`
	// NumericTolerance is an absolute band around CorrectNumericAnswer; zero means exact match.
	NumericTolerance float64        `json:"numeric_tolerance" gorm:"not null;default:0"`
	Marks            float64        `json:"marks" gorm:"not null;default:4"`
	NegativeMarks    float64        `json:"negative_marks" gorm:"not null;default:1"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
