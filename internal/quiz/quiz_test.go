package quiz_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/quiz"
)

func TestFormat_InputOnly(t *testing.T) {
	card := leitner.NewCard("Paris", leitner.Questions{leitner.Text("Capital of France?"), nil})

	for seed := int64(0); seed < 10; seed++ {
		p, err := quiz.Format(card, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Equal(t, leitner.KindInput, p.Kind)
		assert.Equal(t, "Capital of France?", p.Question)
		assert.Empty(t, p.Options)
	}
}

func TestFormat_ChoiceOnly(t *testing.T) {
	card := leitner.NewCard("Paris", leitner.Questions{nil, leitner.Text("Capital of France?,Lyon,Nice,Lille")})

	p, err := quiz.Format(card, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, leitner.KindChoice, p.Kind)
	assert.Equal(t, "Capital of France?", p.Question)
	assert.ElementsMatch(t, []string{"Paris", "Lyon", "Nice", "Lille"}, p.Options)
}

func TestFormat_PicksBothKinds(t *testing.T) {
	card := leitner.NewCard("Paris", leitner.Questions{
		leitner.Text("Capital of France?"),
		leitner.Text("Capital of France?,Lyon,Nice,Lille"),
	})

	kinds := make(map[leitner.QuestionKind]bool)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 30; i++ {
		p, err := quiz.Format(card, rng)
		require.NoError(t, err)
		kinds[p.Kind] = true
	}

	assert.True(t, kinds[leitner.KindInput])
	assert.True(t, kinds[leitner.KindChoice])
}

func TestFormat_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := quiz.Format(leitner.NewCard("a", leitner.Questions{}), rng)
	assert.ErrorIs(t, err, quiz.ErrNoQuestion)

	_, err = quiz.Format(leitner.NewCard("a", leitner.Questions{nil, leitner.Text("prompt,only one")}), rng)
	assert.ErrorIs(t, err, quiz.ErrMalformedChoice)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		answer   string
		expected bool
	}{
		{name: "exact", input: "Paris", answer: "Paris", expected: true},
		{name: "case and space", input: "  pARis ", answer: "Paris", expected: true},
		{name: "wrong", input: "Lyon", answer: "Paris", expected: false},
		{name: "words in any order", input: "bonaparte napoleon", answer: "Napoleon Bonaparte", expected: true},
		{name: "missing word", input: "napoleon", answer: "Napoleon Bonaparte", expected: false},
		{name: "punctuation in answer", input: "1789 french revolution", answer: "French-Revolution: 1789", expected: true},
		{name: "extra words allowed", input: "it is paris of course", answer: "Paris", expected: true},
		{name: "empty input", input: "", answer: "Paris", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, quiz.Check(tt.input, tt.answer))
		})
	}
}

func TestValidateChoice(t *testing.T) {
	assert.NoError(t, quiz.ValidateChoice("Capital of France?,Lyon,Nice,Lille"))
	assert.ErrorIs(t, quiz.ValidateChoice("Capital of France?,Lyon"), quiz.ErrMalformedChoice)
	assert.ErrorIs(t, quiz.ValidateChoice(""), quiz.ErrMalformedChoice)
}
