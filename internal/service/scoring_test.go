package service

import (
	"testing"

	"github.com/lshigami/ExamPortal/internal/model"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func choiceQuestion(id uint, correct int) model.Question {
	return model.Question{
		ID:            id,
		Kind:          model.QuestionSingleChoice,
		Options:       []string{"A", "B", "C", "D"},
		CorrectOption: intPtr(correct),
		Marks:         4,
		NegativeMarks: 1,
	}
}

func numericQuestion(id uint, correct, tolerance float64) model.Question {
	return model.Question{
		ID:                   id,
		Kind:                 model.QuestionNumeric,
		CorrectNumericAnswer: floatPtr(correct),
		NumericTolerance:     tolerance,
		Marks:                4,
		NegativeMarks:        1,
	}
}

func answered(questionID uint, a model.Answer) model.Response {
	r := model.Response{QuestionID: questionID, Status: model.ResponseAnswered}
	r.SetAnswer(a)
	return r
}

func TestScore(t *testing.T) {
	twoChoice := []model.Question{choiceQuestion(1, 1), choiceQuestion(2, 2)}

	tests := []struct {
		name      string
		questions []model.Question
		responses []model.Response
		want      ScoreCard
	}{
		{
			name:      "one correct one wrong",
			questions: twoChoice,
			responses: []model.Response{answered(1, model.Choice(1)), answered(2, model.Choice(0))},
			want:      ScoreCard{Correct: 1, Wrong: 1, Skipped: 0, NetMarks: 3},
		},
		{
			name:      "nothing answered",
			questions: twoChoice,
			want:      ScoreCard{Skipped: 2},
		},
		{
			name:      "visited but empty counts as skipped",
			questions: twoChoice,
			responses: []model.Response{
				{QuestionID: 1, Status: model.ResponseNotAnswered},
				{QuestionID: 2, Status: model.ResponseMarkedForReview},
			},
			want: ScoreCard{Skipped: 2},
		},
		{
			name:      "net marks go negative",
			questions: twoChoice,
			responses: []model.Response{answered(1, model.Choice(0)), answered(2, model.Choice(0))},
			want:      ScoreCard{Wrong: 2, NetMarks: -2},
		},
		{
			name:      "numeric exact match",
			questions: []model.Question{numericQuestion(1, 9.81, 0)},
			responses: []model.Response{answered(1, model.Numeric(9.81))},
			want:      ScoreCard{Correct: 1, NetMarks: 4},
		},
		{
			name:      "numeric off by a hair without tolerance",
			questions: []model.Question{numericQuestion(1, 9.81, 0)},
			responses: []model.Response{answered(1, model.Numeric(9.8))},
			want:      ScoreCard{Wrong: 1, NetMarks: -1},
		},
		{
			name:      "numeric within tolerance",
			questions: []model.Question{numericQuestion(1, 9.81, 0.05)},
			responses: []model.Response{answered(1, model.Numeric(9.8))},
			want:      ScoreCard{Correct: 1, NetMarks: 4},
		},
		{
			name:      "answer of the wrong kind is wrong",
			questions: []model.Question{choiceQuestion(1, 1), numericQuestion(2, 3, 0)},
			responses: []model.Response{answered(1, model.Numeric(1)), answered(2, model.Choice(3))},
			want:      ScoreCard{Wrong: 2, NetMarks: -2},
		},
		{
			name:      "responses to unknown questions are ignored",
			questions: twoChoice,
			responses: []model.Response{answered(1, model.Choice(1)), answered(99, model.Choice(1))},
			want:      ScoreCard{Correct: 1, Skipped: 1, NetMarks: 4},
		},
		{
			name: "fractional marks are rounded to cents",
			questions: []model.Question{
				{ID: 1, Kind: model.QuestionSingleChoice, Options: []string{"A", "B"}, CorrectOption: intPtr(0), Marks: 1, NegativeMarks: 0.33},
				{ID: 2, Kind: model.QuestionSingleChoice, Options: []string{"A", "B"}, CorrectOption: intPtr(0), Marks: 1, NegativeMarks: 0.33},
				{ID: 3, Kind: model.QuestionSingleChoice, Options: []string{"A", "B"}, CorrectOption: intPtr(0), Marks: 1, NegativeMarks: 0.33},
			},
			responses: []model.Response{answered(1, model.Choice(1)), answered(2, model.Choice(1)), answered(3, model.Choice(1))},
			want:      ScoreCard{Wrong: 3, NetMarks: -0.99},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.questions, tc.responses)
			if got != tc.want {
				t.Fatalf("Score() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestGrade(t *testing.T) {
	q := choiceQuestion(1, 2)
	if v := Grade(q, model.NoAnswer()); v != VerdictSkipped {
		t.Errorf("empty answer: got %s, want %s", v, VerdictSkipped)
	}
	if v := Grade(q, model.Choice(2)); v != VerdictCorrect {
		t.Errorf("correct option: got %s, want %s", v, VerdictCorrect)
	}
	if v := Grade(q, model.Choice(3)); v != VerdictWrong {
		t.Errorf("wrong option: got %s, want %s", v, VerdictWrong)
	}

	broken := model.Question{ID: 2, Kind: model.QuestionNumeric, Marks: 4}
	if v := Grade(broken, model.Numeric(1)); v != VerdictWrong {
		t.Errorf("question without key: got %s, want %s", v, VerdictWrong)
	}
}

func TestPercentiles(t *testing.T) {
	tests := []struct {
		name  string
		marks []float64
		want  []float64
	}{
		{name: "ties share the top", marks: []float64{10, 20, 20, 5}, want: []float64{50, 100, 100, 25}},
		{name: "empty", marks: nil, want: []float64{}},
		{name: "single attempt", marks: []float64{-3}, want: []float64{100}},
		{name: "thirds are rounded", marks: []float64{1, 2, 3}, want: []float64{33.33, 66.67, 100}},
		{name: "negative scores rank lowest", marks: []float64{0, -1, 4}, want: []float64{66.67, 33.33, 100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentiles(tc.marks)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Percentiles(%v)[%d] = %v, want %v", tc.marks, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestPercentilesMonotonic(t *testing.T) {
	marks := []float64{12, -4, 7.5, 12, 0, 30, 7.5, 18}
	pct := Percentiles(marks)
	for i := range marks {
		for j := range marks {
			if marks[i] >= marks[j] && pct[i] < pct[j] {
				t.Fatalf("marks %v >= %v but percentile %v < %v", marks[i], marks[j], pct[i], pct[j])
			}
		}
	}
}
