package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lshigami/ExamPortal/internal/dto"
)

func numericQuestionReq(order int) dto.QuestionCreateDTO {
	answer := 9.81
	return dto.QuestionCreateDTO{OrderInExam: order, Subject: "Physics", Kind: "numeric", Text: "g?", CorrectNumericAnswer: &answer}
}

func TestAddQuestionBeforeAnyAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exam := env.seedExam(t, alice)

	q, err := env.admin.AddQuestion(ctx, exam.ID, numericQuestionReq(3))
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if q.ExamID != exam.ID || q.Marks != 4 {
		t.Fatalf("question = %+v", q)
	}
	stored, err := env.admin.GetExam(ctx, exam.ID)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if stored.TotalMarks != 12 || len(stored.Questions) != 3 {
		t.Fatalf("exam total %v with %d questions, want 12 with 3", stored.TotalMarks, len(stored.Questions))
	}

	if _, err := env.admin.AddQuestion(ctx, 999, numericQuestionReq(1)); !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("missing exam: err = %v", err)
	}
}

func TestAddQuestionRefusedOnceStarted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exam := env.seedExam(t, alice)

	if _, _, err := env.attempts.StartOrResume(ctx, exam.ID, alice); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := env.admin.AddQuestion(ctx, exam.ID, numericQuestionReq(3)); !errors.Is(err, ErrInvalidExam) {
		t.Fatalf("add question after start: err = %v, want ErrInvalidExam", err)
	}
	stored, err := env.admin.GetExam(ctx, exam.ID)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if stored.TotalMarks != 8 || len(stored.Questions) != 2 {
		t.Fatalf("exam changed: total %v, %d questions", stored.TotalMarks, len(stored.Questions))
	}
}

// Whichever of the two lands first, an attempt never sees a question that
// was added after it started.
func TestAddQuestionRacingStart(t *testing.T) {
	for i := 0; i < 5; i++ {
		env := newTestEnv(t)
		ctx := context.Background()
		exam := env.seedExam(t, alice)

		var (
			wg       sync.WaitGroup
			addErr   error
			detail   *dto.AttemptDetailDTO
			startErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, addErr = env.admin.AddQuestion(ctx, exam.ID, numericQuestionReq(3))
		}()
		go func() {
			defer wg.Done()
			detail, _, startErr = env.attempts.StartOrResume(ctx, exam.ID, alice)
		}()
		wg.Wait()

		if startErr != nil {
			t.Fatalf("start: %v", startErr)
		}
		stored, err := env.admin.GetExam(ctx, exam.ID)
		if err != nil {
			t.Fatalf("get exam: %v", err)
		}
		switch {
		case addErr == nil:
			// The question went in first, so the attempt must carry it.
			if len(stored.Questions) != 3 {
				t.Fatalf("questions = %d, want 3", len(stored.Questions))
			}
			if len(detail.Questions) != 3 {
				t.Fatalf("attempt started after the insert shows %d questions", len(detail.Questions))
			}
		case errors.Is(addErr, ErrInvalidExam):
			if len(stored.Questions) != 2 {
				t.Fatalf("refused add still stored a question: %d", len(stored.Questions))
			}
		default:
			t.Fatalf("add question: %v", addErr)
		}
	}
}
