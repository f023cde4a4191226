package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

type SubmitReason string

const (
	SubmitManual         SubmitReason = "manual"
	SubmitTimeout        SubmitReason = "timeout"
	SubmitFocusLost      SubmitReason = "focus_lost"
	SubmitFullscreenExit SubmitReason = "fullscreen_exit"
	SubmitExpired        SubmitReason = "expired"
)

func (r SubmitReason) Valid() bool {
	switch r {
	case SubmitManual, SubmitTimeout, SubmitFocusLost, SubmitFullscreenExit, SubmitExpired:
		return true
	}
	return false
}

type Attempt struct {
	ID        uint          `gorm:"primarykey" json:"id"`
	ExamID    uint          `json:"exam_id" gorm:"not null;index"`
	Exam      Exam          `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	StudentID uint          `json:"student_id" gorm:"not null;index"`
	StartTime time.Time     `json:"start_time" gorm:"not null"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Status    AttemptStatus `json:"status" gorm:"type:varchar(16);not null;default:'in_progress';index"`
	// ActiveKey is set while the attempt is in progress and cleared on completion.
	// The unique index is what keeps a student to one live attempt per exam.
	ActiveKey    *string      `json:"-" gorm:"uniqueIndex"`
	SubmitReason SubmitReason `json:"submit_reason,omitempty" gorm:"type:varchar(32)"`

	CorrectCount     int      `json:"correct_count" gorm:"not null;default:0"`
	WrongCount       int      `json:"wrong_count" gorm:"not null;default:0"`
	SkippedCount     int      `json:"skipped_count" gorm:"not null;default:0"`
	NetMarks         float64  `json:"net_marks" gorm:"not null;default:0"`
	ResultCalculated bool     `json:"result_calculated" gorm:"not null;default:false"`
	ResultPublished  bool     `json:"result_published" gorm:"not null;default:false"`
	Percentile       *float64 `json:"percentile,omitempty"`

	Responses []Response     `json:"responses,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ActiveAttemptKey is the value stored in Attempt.ActiveKey for a live attempt.
func ActiveAttemptKey(studentID, examID uint) string {
	return fmt.Sprintf("%d:%d", studentID, examID)
}

func (a *Attempt) IsCompleted() bool {
	return a.Status == AttemptCompleted
}

// Deadline is the authoritative end of the sitting.
func (a *Attempt) Deadline(duration time.Duration) time.Time {
	return a.StartTime.Add(duration)
}

// RemainingSeconds is max(0, duration - elapsed since start) measured at now.
func (a *Attempt) RemainingSeconds(duration time.Duration, now time.Time) int64 {
	left := a.Deadline(duration).Sub(now)
	if left <= 0 {
		return 0
	}
	return int64(left / time.Second)
}
