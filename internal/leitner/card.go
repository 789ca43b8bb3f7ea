package leitner

import (
	"fmt"

	"github.com/google/uuid"
)

// HistoryLen is the number of session outcomes a card remembers.
const HistoryLen = 10

// NumBoxes is the number of proficiency boxes. Box 1 holds the least
// mastered cards, box 5 the best known ones.
const NumBoxes = 5

// QuestionKind indexes the question slots of a card.
type QuestionKind int

const (
	// KindInput is a free-input question.
	KindInput QuestionKind = iota
	// KindChoice is a multiple-choice question: the prompt followed by three
	// distractors, joined by ChoiceSeparator.
	KindChoice
)

// ChoiceSeparator joins the prompt and distractors of a KindChoice question.
const ChoiceSeparator = ","

func (k QuestionKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("QuestionKind(%d)", int(k))
	}
}

// Questions holds one optional phrasing per QuestionKind. A nil slot means
// the card has no question of that kind.
type Questions [2]*string

// Text returns a pointer to s, for building Questions literals.
func Text(s string) *string { return &s }

// History is the rolling record of the last HistoryLen outcomes, oldest
// first. 1 is a pass, 0 a fail.
type History [HistoryLen]uint8

// Sum returns the number of passes in the history.
func (h History) Sum() int {
	s := 0
	for _, v := range h {
		s += int(v)
	}
	return s
}

// Card is a single question/answer unit.
type Card struct {
	id        string
	answer    string
	questions Questions
	history   History
	box       int
}

// NewCard creates a card in box 1 with an empty history.
func NewCard(answer string, questions Questions) *Card {
	return &Card{
		id:        uuid.NewString(),
		answer:    answer,
		questions: copyQuestions(questions),
		box:       1,
	}
}

// ID returns the persistence identity of the card.
func (c *Card) ID() string { return c.id }

// Answer returns the correct response.
func (c *Card) Answer() string { return c.answer }

// Question returns the phrasing for kind and whether the card has one.
// kind must be KindInput or KindChoice.
func (c *Card) Question(kind QuestionKind) (string, bool) {
	q := c.questions[kind]
	if q == nil {
		return "", false
	}
	return *q, true
}

// Questions returns a copy of both question slots.
func (c *Card) Questions() Questions { return copyQuestions(c.questions) }

// RecordOutcome appends the result of one presentation and drops the
// oldest entry.
func (c *Card) RecordOutcome(passed bool) {
	copy(c.history[:], c.history[1:])
	if passed {
		c.history[HistoryLen-1] = 1
	} else {
		c.history[HistoryLen-1] = 0
	}
}

// History returns a copy of the outcome history.
func (c *Card) History() History { return c.history }

// Box returns the box the card believes it is in.
func (c *Card) Box() int { return c.box }

// SetBox assigns the box field only. Use Box.Move to relocate a card.
func (c *Card) SetBox(n int) { c.box = n }

func copyQuestions(q Questions) Questions {
	var out Questions
	for i, s := range q {
		if s != nil {
			out[i] = Text(*s)
		}
	}
	return out
}
