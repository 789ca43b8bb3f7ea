// Package quiz turns Leitner cards into prompts and grades typed answers.
package quiz

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"

	"github.com/vytor/leitnerbox/internal/leitner"
)

var (
	ErrNoQuestion      = errors.New("quiz: card has no question")
	ErrMalformedChoice = errors.New("quiz: multiple choice question needs a prompt and three distractors")
)

// choiceParts is the prompt plus three distractors.
const choiceParts = 4

// Prompt is what a presentation layer shows for one card.
type Prompt struct {
	Kind     leitner.QuestionKind `json:"kind"`
	Question string               `json:"question"`
	Options  []string             `json:"options,omitempty"`
}

// Format picks a random question kind the card supports and builds its
// prompt. Multiple choice options are the answer and the three distractors
// in random order.
func Format(card *leitner.Card, rng *rand.Rand) (Prompt, error) {
	kinds := []leitner.QuestionKind{leitner.KindInput, leitner.KindChoice}
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })

	kind := kinds[0]
	text, ok := card.Question(kind)
	if !ok {
		kind = kinds[1]
		if text, ok = card.Question(kind); !ok {
			return Prompt{}, ErrNoQuestion
		}
	}

	if kind == leitner.KindInput {
		return Prompt{Kind: kind, Question: text}, nil
	}

	if err := ValidateChoice(text); err != nil {
		return Prompt{}, err
	}
	parts := strings.Split(text, leitner.ChoiceSeparator)
	options := []string{card.Answer(), parts[1], parts[2], parts[3]}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return Prompt{Kind: kind, Question: parts[0], Options: options}, nil
}

// ValidateChoice reports ErrMalformedChoice unless text holds a prompt and
// three distractors.
func ValidateChoice(text string) error {
	if len(strings.Split(text, leitner.ChoiceSeparator)) < choiceParts {
		return ErrMalformedChoice
	}
	return nil
}

var answerSplit = regexp.MustCompile(`[,\s\-.:;]`)

// Check reports whether input is an acceptable response for answer. The
// comparison ignores case and surrounding space; every word of the answer
// must appear somewhere in the input, in any order.
func Check(input, answer string) bool {
	in := strings.ToLower(strings.TrimSpace(input))
	want := strings.ToLower(strings.TrimSpace(answer))
	if in == "" {
		return want == ""
	}
	for _, part := range answerSplit.Split(want, -1) {
		if part == "" {
			continue
		}
		if !strings.Contains(in, part) {
			return false
		}
	}
	return true
}
