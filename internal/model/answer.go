package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

type AnswerKind uint8

const (
	AnswerEmpty AnswerKind = iota
	AnswerChoice
	AnswerNumeric
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerChoice:
		return "choice"
	case AnswerNumeric:
		return "numeric"
	}
	return "empty"
}

// Answer is a student's selection: nothing, an option index, or a number.
// On the wire it is null, {"choice": 1} or {"numeric": 12.5}.
type Answer struct {
	kind    AnswerKind
	choice  int
	numeric float64
}

func NoAnswer() Answer { return Answer{} }

func Choice(index int) Answer { return Answer{kind: AnswerChoice, choice: index} }

func Numeric(value float64) Answer { return Answer{kind: AnswerNumeric, numeric: value} }

func (a Answer) Kind() AnswerKind { return a.kind }

func (a Answer) IsEmpty() bool { return a.kind == AnswerEmpty }

func (a Answer) ChoiceIndex() (int, bool) {
	return a.choice, a.kind == AnswerChoice
}

func (a Answer) NumericValue() (float64, bool) {
	return a.numeric, a.kind == AnswerNumeric
}

func (a Answer) String() string {
	switch a.kind {
	case AnswerChoice:
		return "choice(" + strconv.Itoa(a.choice) + ")"
	case AnswerNumeric:
		return "numeric(" + strconv.FormatFloat(a.numeric, 'g', -1, 64) + ")"
	}
	return "empty"
}

type answerWire struct {
	Choice  *int     `json:"choice,omitempty"`
	Numeric *float64 `json:"numeric,omitempty"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AnswerChoice:
		return json.Marshal(answerWire{Choice: &a.choice})
	case AnswerNumeric:
		return json.Marshal(answerWire{Numeric: &a.numeric})
	}
	return []byte("null"), nil
}

var ErrMalformedAnswer = errors.New("malformed answer")

func (a *Answer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = NoAnswer()
		return nil
	}
	var w answerWire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	switch {
	case w.Choice != nil && w.Numeric != nil:
		return fmt.Errorf("%w: choice and numeric are mutually exclusive", ErrMalformedAnswer)
	case w.Choice != nil:
		if *w.Choice < 0 {
			return fmt.Errorf("%w: negative option index %d", ErrMalformedAnswer, *w.Choice)
		}
		*a = Choice(*w.Choice)
	case w.Numeric != nil:
		if math.IsNaN(*w.Numeric) || math.IsInf(*w.Numeric, 0) {
			return fmt.Errorf("%w: numeric value must be finite", ErrMalformedAnswer)
		}
		*a = Numeric(*w.Numeric)
	default:
		*a = NoAnswer()
	}
	return nil
}
