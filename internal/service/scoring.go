package service

import (
	"math"

	"github.com/lshigami/ExamPortal/internal/model"
)

type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictWrong   Verdict = "wrong"
	VerdictSkipped Verdict = "skipped"
)

// ScoreCard is the output of scoring one attempt.
type ScoreCard struct {
	Correct  int
	Wrong    int
	Skipped  int
	NetMarks float64
}

// Grade compares one answer with the question's key. An answer of the wrong
// kind for the question counts as wrong.
func Grade(q model.Question, a model.Answer) Verdict {
	if a.IsEmpty() {
		return VerdictSkipped
	}
	switch q.Kind {
	case model.QuestionSingleChoice:
		idx, ok := a.ChoiceIndex()
		if ok && q.CorrectOption != nil && idx == *q.CorrectOption {
			return VerdictCorrect
		}
	case model.QuestionNumeric:
		v, ok := a.NumericValue()
		if ok && q.CorrectNumericAnswer != nil && numericMatches(v, *q.CorrectNumericAnswer, q.NumericTolerance) {
			return VerdictCorrect
		}
	}
	return VerdictWrong
}

func numericMatches(got, want, tolerance float64) bool {
	if tolerance <= 0 {
		return got == want
	}
	return math.Abs(got-want) <= tolerance
}

// Score walks every question of the exam. A question without a response, or
// with an empty answer, is skipped. Net marks are not floored at zero.
func Score(questions []model.Question, responses []model.Response) ScoreCard {
	byQuestion := make(map[uint]model.Answer, len(responses))
	for i := range responses {
		byQuestion[responses[i].QuestionID] = responses[i].Answer()
	}

	var card ScoreCard
	for _, q := range questions {
		switch Grade(q, byQuestion[q.ID]) {
		case VerdictCorrect:
			card.Correct++
			card.NetMarks += q.Marks
		case VerdictWrong:
			card.Wrong++
			card.NetMarks -= q.NegativeMarks
		default:
			card.Skipped++
		}
	}
	card.NetMarks = round2(card.NetMarks)
	return card
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
