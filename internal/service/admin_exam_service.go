package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/lshigami/ExamPortal/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminExamService populates the question bank and flips the per-exam flags.
type AdminExamService interface {
	CreateExam(ctx context.Context, req dto.ExamCreateDTO) (*dto.ExamDTO, error)
	AddQuestion(ctx context.Context, examID uint, req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error)
	GetExam(ctx context.Context, examID uint) (*dto.ExamDTO, error)
	SetActive(ctx context.Context, examID uint, active bool) error
	SetAnswerKeyPublished(ctx context.Context, examID uint, published bool) error
	AssignStudents(ctx context.Context, examID uint, studentIDs []uint) error
}

type adminExamService struct {
	examRepo       repository.ExamRepository
	questionRepo   repository.QuestionRepository
	assignmentRepo repository.AssignmentRepository
}

func NewAdminExamService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	assignmentRepo repository.AssignmentRepository,
) AdminExamService {
	return &adminExamService{
		examRepo:       examRepo,
		questionRepo:   questionRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *adminExamService) CreateExam(ctx context.Context, req dto.ExamCreateDTO) (*dto.ExamDTO, error) {
	orders := make(map[int]bool, len(req.Questions))
	exam := model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	}
	for i, qReq := range req.Questions {
		if orders[qReq.OrderInExam] {
			return nil, fmt.Errorf("%w: duplicate order_in_exam %d", ErrInvalidExam, qReq.OrderInExam)
		}
		orders[qReq.OrderInExam] = true

		q, err := buildQuestion(qReq)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		exam.TotalMarks += q.Marks
		exam.Questions = append(exam.Questions, q)
	}

	if err := s.examRepo.Create(ctx, &exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateExam: insert failed")
		return nil, err
	}
	log.Info().Uint("examID", exam.ID).Int("questions", len(exam.Questions)).Msg("Exam created")
	return toExamDTO(&exam, exam.Questions)
}

// AddQuestion appends to an exam nobody has sat yet. Questions are frozen
// once an attempt references the exam; the repository checks that in the
// same transaction as the insert.
func (s *adminExamService) AddQuestion(ctx context.Context, examID uint, req dto.QuestionCreateDTO) (*dto.QuestionAdminDTO, error) {
	q, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	q.ExamID = examID

	err = s.questionRepo.Create(ctx, &q)
	switch {
	case errors.Is(err, repository.ErrExamHasAttempts):
		return nil, fmt.Errorf("%w: exam %d already has attempts", ErrInvalidExam, examID)
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrExamNotFound
	case err != nil:
		log.Error().Err(err).Uint("examID", examID).Msg("AddQuestion: insert failed")
		return nil, err
	}
	log.Info().Uint("examID", examID).Uint("questionID", q.ID).Msg("Question added")

	out := toQuestionAdminDTOs([]model.Question{q})[0]
	return &out, nil
}

func (s *adminExamService) GetExam(ctx context.Context, examID uint) (*dto.ExamDTO, error) {
	exam, err := s.examRepo.FindByID(ctx, examID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	questions, err := s.questionRepo.FindByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	return toExamDTO(exam, questions)
}

func (s *adminExamService) SetActive(ctx context.Context, examID uint, active bool) error {
	return s.flag(s.examRepo.SetActive(ctx, examID, active))
}

func (s *adminExamService) SetAnswerKeyPublished(ctx context.Context, examID uint, published bool) error {
	return s.flag(s.examRepo.SetAnswerKeyPublished(ctx, examID, published))
}

func (s *adminExamService) AssignStudents(ctx context.Context, examID uint, studentIDs []uint) error {
	if _, err := s.examRepo.FindByID(ctx, examID); err != nil {
		return s.flag(err)
	}
	if err := s.assignmentRepo.Assign(ctx, examID, studentIDs); err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("AssignStudents: insert failed")
		return err
	}
	log.Info().Uint("examID", examID).Int("students", len(studentIDs)).Msg("Exam assigned")
	return nil
}

func (s *adminExamService) flag(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExamNotFound
	}
	return err
}

// buildQuestion checks the per-kind invariants: a single-choice question has
// options and an in-range correct index; a numeric question has a value and
// no options.
func buildQuestion(req dto.QuestionCreateDTO) (model.Question, error) {
	q := model.Question{
		OrderInExam:      req.OrderInExam,
		Subject:          req.Subject,
		Kind:             model.QuestionKind(req.Kind),
		Text:             req.Text,
		ImageURL:         req.ImageURL,
		NumericTolerance: req.NumericTolerance,
		Marks:            model.DefaultMarks,
		NegativeMarks:    model.DefaultNegativeMarks,
	}
	if req.Marks != nil {
		q.Marks = *req.Marks
	}
	if req.NegativeMarks != nil {
		q.NegativeMarks = *req.NegativeMarks
	}

	switch q.Kind {
	case model.QuestionSingleChoice:
		if len(req.Options) < 2 {
			return q, fmt.Errorf("%w: single_choice needs at least two options", ErrInvalidExam)
		}
		if req.CorrectOption == nil || *req.CorrectOption < 0 || *req.CorrectOption >= len(req.Options) {
			return q, fmt.Errorf("%w: correct_option must index into options", ErrInvalidExam)
		}
		if req.CorrectNumericAnswer != nil {
			return q, fmt.Errorf("%w: single_choice must not carry correct_numeric_answer", ErrInvalidExam)
		}
		q.Options = req.Options
		q.CorrectOption = req.CorrectOption
	case model.QuestionNumeric:
		if len(req.Options) > 0 || req.CorrectOption != nil {
			return q, fmt.Errorf("%w: numeric questions have no options", ErrInvalidExam)
		}
		if req.CorrectNumericAnswer == nil {
			return q, fmt.Errorf("%w: numeric needs correct_numeric_answer", ErrInvalidExam)
		}
		q.CorrectNumericAnswer = req.CorrectNumericAnswer
	default:
		return q, fmt.Errorf("%w: unknown kind %q", ErrInvalidExam, req.Kind)
	}
	return q, nil
}

func toExamDTO(exam *model.Exam, questions []model.Question) (*dto.ExamDTO, error) {
	var out dto.ExamDTO
	if err := copier.Copy(&out, exam); err != nil {
		return nil, fmt.Errorf("error preparing exam response: %w", err)
	}
	out.Questions = toQuestionAdminDTOs(questions)
	return &out, nil
}
