package service

import (
	"context"
	"fmt"

	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/repository"
	"github.com/rs/zerolog/log"
)

// ExamService is the student's view of the exams assigned to them.
type ExamService interface {
	ListAssignedExams(ctx context.Context, studentID uint) ([]dto.StudentExamDTO, error)
}

type examService struct {
	examRepo    repository.ExamRepository
	attemptRepo repository.AttemptRepository
}

func NewExamService(examRepo repository.ExamRepository, attemptRepo repository.AttemptRepository) ExamService {
	return &examService{examRepo: examRepo, attemptRepo: attemptRepo}
}

func (s *examService) ListAssignedExams(ctx context.Context, studentID uint) ([]dto.StudentExamDTO, error) {
	exams, err := s.examRepo.FindAssignedToStudent(ctx, studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("ListAssignedExams: exam lookup failed")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}
	attempts, err := s.attemptRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	// attempts are newest first, so the first hit per exam is the latest one
	latest := make(map[uint]int, len(attempts))
	for i := len(attempts) - 1; i >= 0; i-- {
		latest[attempts[i].ExamID] = i
	}

	out := make([]dto.StudentExamDTO, 0, len(exams))
	for _, e := range exams {
		item := dto.StudentExamDTO{
			ID:              e.ID,
			Title:           e.Title,
			Description:     e.Description,
			DurationMinutes: e.DurationMinutes,
			TotalMarks:      e.TotalMarks,
			IsActive:        e.IsActive,
			ResultDeclared:  e.ResultDeclared,
		}
		if idx, ok := latest[e.ID]; ok {
			id := attempts[idx].ID
			item.AttemptID = &id
			item.AttemptStatus = string(attempts[idx].Status)
		}
		out = append(out, item)
	}
	return out, nil
}
