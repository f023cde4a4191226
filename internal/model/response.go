package model

import "time"

type ResponseStatus string

const (
	ResponseNotVisited              ResponseStatus = "not_visited"
	ResponseNotAnswered             ResponseStatus = "not_answered"
	ResponseAnswered                ResponseStatus = "answered"
	ResponseMarkedForReview         ResponseStatus = "marked_for_review"
	ResponseMarkedForReviewAnswered ResponseStatus = "marked_for_review_answered"
)

func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseNotVisited, ResponseNotAnswered, ResponseAnswered, ResponseMarkedForReview, ResponseMarkedForReviewAnswered:
		return true
	}
	return false
}

// Response is one student's stored answer or visit marker for a question.
// (attempt_id, question_id) is unique; writes are upserts on that pair.
type Response struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	AttemptID        uint           `json:"attempt_id" gorm:"not null;uniqueIndex:idx_response_attempt_question"`
	QuestionID       uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_response_attempt_question"`
	SelectedChoice   *int           `json:"-"`
	SelectedNumeric  *float64       `json:"-"`
	Status           ResponseStatus `json:"status" gorm:"type:varchar(32);not null;default:'not_visited'"`
	TimeSpentSeconds int64          `json:"time_spent_seconds" gorm:"not null;default:0"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Answer reads the stored columns back into the tagged variant.
func (r *Response) Answer() Answer {
	switch {
	case r.SelectedChoice != nil:
		return Choice(*r.SelectedChoice)
	case r.SelectedNumeric != nil:
		return Numeric(*r.SelectedNumeric)
	}
	return NoAnswer()
}

// SetAnswer stores the variant into the nullable columns.
func (r *Response) SetAnswer(a Answer) {
	r.SelectedChoice, r.SelectedNumeric = nil, nil
	switch a.Kind() {
	case AnswerChoice:
		idx := a.choice
		r.SelectedChoice = &idx
	case AnswerNumeric:
		v := a.numeric
		r.SelectedNumeric = &v
	}
}
