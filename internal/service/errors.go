package service

import "errors"

var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotFound = errors.New("question not found in this exam")

	ErrAccessDenied = errors.New("attempt belongs to another student")

	ErrAttemptCompleted = errors.New("attempt is already completed")
	ErrAttemptExpired   = errors.New("attempt time is over")

	ErrExamInactive    = errors.New("exam is not active")
	ErrExamNotAssigned = errors.New("exam is not assigned to this student")

	ErrInvalidAnswer  = errors.New("answer does not fit the question")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidExam    = errors.New("invalid exam definition")

	ErrResultNotPublished    = errors.New("result is not published yet")
	ErrAnswerKeyNotPublished = errors.New("answer key is not published yet")
	ErrAttemptInProgress     = errors.New("attempt is still in progress")
)
