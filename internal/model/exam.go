package model

import (
	"time"

	"gorm.io/gorm"
)

type Exam struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description,omitempty"`
	DurationMinutes    int            `json:"duration_minutes" gorm:"not null"`
	TotalMarks         float64        `json:"total_marks" gorm:"not null"`
	IsActive           bool           `json:"is_active" gorm:"not null;default:false"`
	ResultDeclared     bool           `json:"result_declared" gorm:"not null;default:false"`
	AnswerKeyPublished bool           `json:"answer_key_published" gorm:"not null;default:false"`
	Questions          []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Duration is the length of one sitting.
func (e *Exam) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// ExamAssignment grants one student access to one exam.
type ExamAssignment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StudentID uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_assignment_student_exam"`
	ExamID    uint      `json:"exam_id" gorm:"not null;uniqueIndex:idx_assignment_student_exam;index"`
	CreatedAt time.Time `json:"created_at"`
}
