package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/ExamPortal/config"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/lshigami/ExamPortal/internal/monitoring"
	"github.com/lshigami/ExamPortal/internal/repository"
	"github.com/lshigami/ExamPortal/internal/tracing"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// AttemptService owns the lifecycle of an attempt: start or resume, response
// capture and the single transition to completed.
type AttemptService interface {
	// StartOrResume returns the student's in-progress attempt for the exam,
	// creating it when there is none. created reports which case happened.
	StartOrResume(ctx context.Context, examID, studentID uint) (detail *dto.AttemptDetailDTO, created bool, err error)
	GetAttempt(ctx context.Context, attemptID, studentID uint) (*dto.AttemptDetailDTO, error)
	UpsertResponse(ctx context.Context, attemptID, studentID, questionID uint, req dto.ResponseUpsertDTO) (*dto.ResponseDTO, error)
	// Submit completes and scores the attempt. Submitting a completed attempt
	// returns it unchanged.
	Submit(ctx context.Context, attemptID, studentID uint, reason model.SubmitReason) (*dto.AttemptDetailDTO, error)
	// ExpireOverdue force-submits in-progress attempts whose deadline and
	// grace period have both passed. It returns how many were completed.
	ExpireOverdue(ctx context.Context) (int, error)
}

type attemptService struct {
	db             *gorm.DB
	examRepo       repository.ExamRepository
	questionRepo   repository.QuestionRepository
	assignmentRepo repository.AssignmentRepository
	attemptRepo    repository.AttemptRepository
	responseRepo   repository.ResponseRepository
	submitGrace    time.Duration
	now            func() time.Time
}

func NewAttemptService(
	db *gorm.DB,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	assignmentRepo repository.AssignmentRepository,
	attemptRepo repository.AttemptRepository,
	responseRepo repository.ResponseRepository,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		db:             db,
		examRepo:       examRepo,
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
		attemptRepo:    attemptRepo,
		responseRepo:   responseRepo,
		submitGrace:    cfg.Attempt.SubmitGrace,
		now:            time.Now,
	}
}

func (s *attemptService) StartOrResume(ctx context.Context, examID, studentID uint) (*dto.AttemptDetailDTO, bool, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.StartOrResume",
		attribute.Int64("exam.id", int64(examID)), attribute.Int64("student.id", int64(studentID)))
	var err error
	defer func() { tracing.End(span, err) }()

	exam, err := s.findExam(ctx, examID)
	if err != nil {
		return nil, false, err
	}
	if !exam.IsActive {
		err = ErrExamInactive
		return nil, false, err
	}
	assigned, err := s.assignmentRepo.IsAssigned(ctx, studentID, examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("StartOrResume: assignment lookup failed")
		return nil, false, err
	}
	if !assigned {
		err = ErrExamNotAssigned
		return nil, false, err
	}

	var attempt *model.Attempt
	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := s.attemptRepo.WithTx(tx)
		existing, err := attempts.FindActive(ctx, studentID, examID)
		if err == nil {
			attempt = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		key := model.ActiveAttemptKey(studentID, examID)
		fresh := &model.Attempt{
			ExamID:    examID,
			StudentID: studentID,
			StartTime: s.now().UTC(),
			Status:    model.AttemptInProgress,
			ActiveKey: &key,
		}
		if err := attempts.Create(ctx, fresh); err != nil {
			return err
		}
		attempt, created = fresh, true
		return nil
	})
	if repository.IsUniqueViolation(err) {
		// A concurrent request created the attempt between our lookup and insert.
		log.Info().Uint("examID", examID).Uint("studentID", studentID).Msg("StartOrResume: lost creation race, resuming winner")
		attempt, err = s.attemptRepo.FindActive(ctx, studentID, examID)
		created = false
	}
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Uint("studentID", studentID).Msg("StartOrResume: failed")
		return nil, false, err
	}

	if created {
		monitoring.AttemptsStarted.Inc()
		log.Info().Uint("attemptID", attempt.ID).Uint("examID", examID).Uint("studentID", studentID).Msg("Attempt started")
	}

	detail, err := s.buildDetail(ctx, attempt, exam)
	return detail, created, err
}

func (s *attemptService) GetAttempt(ctx context.Context, attemptID, studentID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.ownedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	exam, err := s.findExam(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, attempt, exam)
}

func (s *attemptService) UpsertResponse(ctx context.Context, attemptID, studentID, questionID uint, req dto.ResponseUpsertDTO) (*dto.ResponseDTO, error) {
	status := model.ResponseStatus(req.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, req.Status)
	}
	if req.TimeSpentDelta < 0 {
		return nil, fmt.Errorf("%w: time_spent_delta must not be negative", ErrInvalidRequest)
	}

	attempt, err := s.ownedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		return nil, ErrAttemptCompleted
	}
	exam, err := s.findExam(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if now.After(attempt.Deadline(exam.Duration()).Add(s.submitGrace)) {
		return nil, ErrAttemptExpired
	}
	if req.TimeSpentDelta > int64(exam.Duration()/time.Second) {
		return nil, fmt.Errorf("%w: time_spent_delta exceeds the exam duration", ErrInvalidRequest)
	}

	question, err := s.findQuestion(ctx, exam.ID, questionID)
	if err != nil {
		return nil, err
	}
	if err := checkAnswerFits(question, req.Answer); err != nil {
		return nil, err
	}

	response := &model.Response{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		Status:     status,
	}
	response.SetAnswer(req.Answer)

	var stored *model.Response
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		live, err := s.attemptRepo.WithTx(tx).Touch(ctx, attempt.ID, now)
		if err != nil {
			return err
		}
		if !live {
			return ErrAttemptCompleted
		}
		stored, err = s.responseRepo.WithTx(tx).Upsert(ctx, response, req.TimeSpentDelta)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrAttemptCompleted) {
			log.Error().Err(err).Uint("attemptID", attemptID).Uint("questionID", questionID).Msg("UpsertResponse: write failed")
		}
		return nil, err
	}

	monitoring.ResponsesSaved.Inc()
	out := toResponseDTO(*stored)
	return &out, nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID, studentID uint, reason model.SubmitReason) (*dto.AttemptDetailDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "AttemptService.Submit",
		attribute.Int64("attempt.id", int64(attemptID)), attribute.String("submit.reason", string(reason)))
	var err error
	defer func() { tracing.End(span, err) }()

	if reason == "" {
		reason = model.SubmitManual
	}
	if !reason.Valid() || reason == model.SubmitExpired {
		err = fmt.Errorf("%w: unknown submit reason %q", ErrInvalidRequest, reason)
		return nil, err
	}

	attempt, err := s.ownedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	exam, err := s.findExam(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}

	if !attempt.IsCompleted() {
		if err = s.complete(ctx, attempt, reason); err != nil {
			return nil, err
		}
		// Read back so the caller sees the committed state, whoever won.
		if attempt, err = s.attemptRepo.FindByID(ctx, attemptID); err != nil {
			return nil, err
		}
	}
	return s.buildDetail(ctx, attempt, exam)
}

func (s *attemptService) ExpireOverdue(ctx context.Context) (int, error) {
	live, err := s.attemptRepo.FindInProgressWithExam(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now().UTC()
	expired := 0
	for i := range live {
		a := &live[i]
		if !now.After(a.Deadline(a.Exam.Duration()).Add(s.submitGrace)) {
			continue
		}
		if err := s.complete(ctx, a, model.SubmitExpired); err != nil {
			log.Error().Err(err).Uint("attemptID", a.ID).Msg("ExpireOverdue: force submit failed")
			continue
		}
		expired++
	}
	return expired, nil
}

// complete moves the attempt to completed and scores it in one transaction.
// If another caller already completed it, nothing is written.
func (s *attemptService) complete(ctx context.Context, attempt *model.Attempt, reason model.SubmitReason) error {
	questions, err := s.questionRepo.FindByExam(ctx, attempt.ExamID)
	if err != nil {
		return err
	}

	won := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := s.attemptRepo.WithTx(tx)
		ok, err := attempts.MarkCompleted(ctx, attempt.ID, s.now().UTC(), reason)
		if err != nil || !ok {
			return err
		}
		won = true

		responses, err := s.responseRepo.WithTx(tx).FindByAttempt(ctx, attempt.ID)
		if err != nil {
			return err
		}
		started := time.Now()
		card := Score(questions, responses)
		monitoring.ScoringDuration.Observe(time.Since(started).Seconds())

		_, err = attempts.SaveScore(ctx, attempt.ID, repository.ScoreFields{
			CorrectCount: card.Correct,
			WrongCount:   card.Wrong,
			SkippedCount: card.Skipped,
			NetMarks:     card.NetMarks,
		})
		return err
	})
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Str("reason", string(reason)).Msg("Submit: transaction failed")
		return err
	}
	if won {
		monitoring.AttemptsSubmitted.WithLabelValues(string(reason)).Inc()
		log.Info().Uint("attemptID", attempt.ID).Uint("studentID", attempt.StudentID).Str("reason", string(reason)).Msg("Attempt submitted")
	}
	return nil
}

func (s *attemptService) ownedAttempt(ctx context.Context, attemptID, studentID uint) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	if attempt.StudentID != studentID {
		log.Warn().Uint("attemptID", attemptID).Uint("studentID", studentID).Msg("Attempt access denied")
		return nil, ErrAccessDenied
	}
	return attempt, nil
}

func (s *attemptService) findExam(ctx context.Context, examID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(ctx, examID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrExamNotFound
	}
	return exam, err
}

func (s *attemptService) findQuestion(ctx context.Context, examID, questionID uint) (*model.Question, error) {
	questions, err := s.questionRepo.FindByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].ID == questionID {
			return &questions[i], nil
		}
	}
	return nil, ErrQuestionNotFound
}

func (s *attemptService) buildDetail(ctx context.Context, attempt *model.Attempt, exam *model.Exam) (*dto.AttemptDetailDTO, error) {
	questions, err := s.questionRepo.FindByExam(ctx, exam.ID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.FindByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, err
	}
	return toAttemptDetailDTO(attempt, exam, questions, responses, s.now().UTC()), nil
}

// checkAnswerFits rejects answers whose kind does not match the question or
// whose option index is out of range. An empty answer always fits.
func checkAnswerFits(q *model.Question, a model.Answer) error {
	switch a.Kind() {
	case model.AnswerEmpty:
		return nil
	case model.AnswerChoice:
		if q.Kind != model.QuestionSingleChoice {
			return fmt.Errorf("%w: question %d expects a numeric value", ErrInvalidAnswer, q.ID)
		}
		idx, _ := a.ChoiceIndex()
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("%w: option %d is out of range for question %d", ErrInvalidAnswer, idx, q.ID)
		}
	case model.AnswerNumeric:
		if q.Kind != model.QuestionNumeric {
			return fmt.Errorf("%w: question %d expects an option index", ErrInvalidAnswer, q.ID)
		}
	}
	return nil
}
