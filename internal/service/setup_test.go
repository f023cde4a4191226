package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lshigami/ExamPortal/config"
	"github.com/lshigami/ExamPortal/database"
	"github.com/lshigami/ExamPortal/internal/dto"
	"github.com/lshigami/ExamPortal/internal/repository"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	attempts *attemptService
	results  ResultService
	admin    AdminExamService
	exams    ExamService
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "exam_portal_test.db")
	cfg.Attempt.SubmitGrace = 30 * time.Second

	db, err := database.NewDatabase(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	examRepo := repository.NewExamRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	env := &testEnv{
		db:      db,
		results: NewResultService(db, examRepo, questionRepo, attemptRepo, responseRepo),
		admin:   NewAdminExamService(examRepo, questionRepo, assignmentRepo),
		exams:   NewExamService(examRepo, attemptRepo),
		now:     time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	env.attempts = NewAttemptService(db, examRepo, questionRepo, assignmentRepo, attemptRepo, responseRepo, cfg).(*attemptService)
	env.attempts.now = func() time.Time { return env.now }
	return env
}

func (e *testEnv) advance(d time.Duration) { e.now = e.now.Add(d) }

func intp(v int) *int { return &v }

// seedExam creates an active 30 minute exam with two single-choice questions
// (correct options 1 and 2, +4/-1) and assigns it to the given students.
func (e *testEnv) seedExam(t *testing.T, students ...uint) *dto.ExamDTO {
	t.Helper()
	ctx := context.Background()
	exam, err := e.admin.CreateExam(ctx, dto.ExamCreateDTO{
		Title:           "Physics mock 1",
		DurationMinutes: 30,
		IsActive:        true,
		Questions: []dto.QuestionCreateDTO{
			{OrderInExam: 1, Subject: "Physics", Kind: "single_choice", Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectOption: intp(1)},
			{OrderInExam: 2, Subject: "Physics", Kind: "single_choice", Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectOption: intp(2)},
		},
	})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	if len(students) > 0 {
		if err := e.admin.AssignStudents(ctx, exam.ID, students); err != nil {
			t.Fatalf("assign: %v", err)
		}
	}
	return exam
}
