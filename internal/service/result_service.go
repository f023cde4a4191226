package service

import (
	"context"
	"errors"

	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/lshigami/ExamPortal/internal/monitoring"
	"github.com/lshigami/ExamPortal/internal/repository"
	"github.com/lshigami/ExamPortal/internal/tracing"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// ResultService publishes results and serves the read-only views built on
// the scoring output.
type ResultService interface {
	Publish(ctx context.Context, examID uint) (*dto.PublicationDTO, error)
	Unpublish(ctx context.Context, examID uint) (*dto.PublicationDTO, error)
	ListExamResults(ctx context.Context, examID uint) ([]dto.AttemptResultAdminDTO, error)
	GetResult(ctx context.Context, attemptID, studentID uint) (*dto.ResultDTO, error)
	GetAnswerKey(ctx context.Context, attemptID, studentID uint) (*dto.AnswerKeyDTO, error)
}

type resultService struct {
	db           *gorm.DB
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	responseRepo repository.ResponseRepository
}

func NewResultService(
	db *gorm.DB,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	responseRepo repository.ResponseRepository,
) ResultService {
	return &resultService{
		db:           db,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		responseRepo: responseRepo,
	}
}

// Publish ranks every completed attempt of the exam and makes the results
// visible. Running it again recomputes percentiles over the current set.
func (s *resultService) Publish(ctx context.Context, examID uint) (*dto.PublicationDTO, error) {
	ctx, span := tracing.StartSpan(ctx, "ResultService.Publish", attribute.Int64("exam.id", int64(examID)))
	var err error
	defer func() { tracing.End(span, err) }()

	if _, err = s.findExam(ctx, examID); err != nil {
		return nil, err
	}

	count := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempts := s.attemptRepo.WithTx(tx)
		completed, err := attempts.FindCompletedByExam(ctx, examID)
		if err != nil {
			return err
		}
		marks := make([]float64, len(completed))
		for i := range completed {
			marks[i] = completed[i].NetMarks
		}
		for i, pct := range Percentiles(marks) {
			if err := attempts.SetPercentile(ctx, completed[i].ID, pct); err != nil {
				return err
			}
		}
		if err := attempts.MarkPublished(ctx, examID); err != nil {
			return err
		}
		count = len(completed)
		return s.examRepo.WithTx(tx).SetResultDeclared(ctx, examID, true)
	})
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Publish: transaction failed")
		return nil, err
	}

	monitoring.ResultPublications.WithLabelValues("publish").Inc()
	log.Info().Uint("examID", examID).Int("attempts", count).Msg("Results published")
	return &dto.PublicationDTO{ExamID: examID, ResultDeclared: true, AttemptCount: count}, nil
}

// Unpublish hides results again and clears percentiles. Scores stay.
func (s *resultService) Unpublish(ctx context.Context, examID uint) (*dto.PublicationDTO, error) {
	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.WithTx(tx).ClearPublication(ctx, examID); err != nil {
			return err
		}
		return s.examRepo.WithTx(tx).SetResultDeclared(ctx, examID, false)
	})
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Unpublish: transaction failed")
		return nil, err
	}
	monitoring.ResultPublications.WithLabelValues("unpublish").Inc()
	log.Info().Uint("examID", examID).Msg("Results unpublished")
	return &dto.PublicationDTO{ExamID: examID, ResultDeclared: false}, nil
}

func (s *resultService) ListExamResults(ctx context.Context, examID uint) ([]dto.AttemptResultAdminDTO, error) {
	if _, err := s.findExam(ctx, examID); err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.FindByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttemptResultAdminDTO, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, toAttemptResultAdminDTO(a))
	}
	return out, nil
}

// GetResult needs a completed attempt whose result has been published on an
// exam that is still declared.
func (s *resultService) GetResult(ctx context.Context, attemptID, studentID uint) (*dto.ResultDTO, error) {
	attempt, exam, err := s.ownedCompletedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if !attempt.ResultPublished || !exam.ResultDeclared {
		return nil, ErrResultNotPublished
	}
	return &dto.ResultDTO{
		AttemptID:    attempt.ID,
		ExamID:       exam.ID,
		ExamTitle:    exam.Title,
		Score:        attempt.NetMarks,
		TotalMarks:   exam.TotalMarks,
		CorrectCount: attempt.CorrectCount,
		WrongCount:   attempt.WrongCount,
		SkippedCount: attempt.SkippedCount,
		Percentile:   attempt.Percentile,
	}, nil
}

func (s *resultService) GetAnswerKey(ctx context.Context, attemptID, studentID uint) (*dto.AnswerKeyDTO, error) {
	attempt, exam, err := s.ownedCompletedAttempt(ctx, attemptID, studentID)
	if err != nil {
		return nil, err
	}
	if !exam.AnswerKeyPublished {
		return nil, ErrAnswerKeyNotPublished
	}

	questions, err := s.questionRepo.FindByExam(ctx, exam.ID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.FindByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, err
	}
	answers := make(map[uint]model.Answer, len(responses))
	for i := range responses {
		answers[responses[i].QuestionID] = responses[i].Answer()
	}

	key := &dto.AnswerKeyDTO{AttemptID: attempt.ID, ExamID: exam.ID, Entries: make([]dto.AnswerKeyEntryDTO, 0, len(questions))}
	for _, q := range questions {
		selected := answers[q.ID]
		key.Entries = append(key.Entries, dto.AnswerKeyEntryDTO{
			QuestionID:           q.ID,
			OrderInExam:          q.OrderInExam,
			Subject:              q.Subject,
			Kind:                 string(q.Kind),
			Text:                 q.Text,
			Options:              q.Options,
			CorrectOption:        q.CorrectOption,
			CorrectNumericAnswer: q.CorrectNumericAnswer,
			SelectedAnswer:       selected.String(),
			Verdict:              string(Grade(q, selected)),
			Marks:                q.Marks,
			NegativeMarks:        q.NegativeMarks,
		})
	}
	return key, nil
}

func (s *resultService) ownedCompletedAttempt(ctx context.Context, attemptID, studentID uint) (*model.Attempt, *model.Exam, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if attempt.StudentID != studentID {
		return nil, nil, ErrAccessDenied
	}
	if !attempt.IsCompleted() {
		return nil, nil, ErrAttemptInProgress
	}
	exam, err := s.findExam(ctx, attempt.ExamID)
	if err != nil {
		return nil, nil, err
	}
	return attempt, exam, nil
}

func (s *resultService) findExam(ctx context.Context, examID uint) (*model.Exam, error) {
	exam, err := s.examRepo.FindByID(ctx, examID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrExamNotFound
	}
	return exam, err
}
