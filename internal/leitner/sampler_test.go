package leitner_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/leitnerbox/internal/leitner"
)

// populatedBox builds a box with counts[i] cards in box i+1.
func populatedBox(t *testing.T, counts [leitner.NumBoxes]int) *leitner.Box {
	t.Helper()
	box, err := leitner.NewBox()
	require.NoError(t, err)
	for i, n := range counts {
		for j := 0; j < n; j++ {
			card := leitner.NewCard(fmt.Sprintf("answer%d-%d", i+1, j), leitner.Questions{leitner.Text("q"), nil})
			card.SetBox(i + 1)
			require.NoError(t, box.Insert(card))
		}
	}
	return box
}

// origins counts how many selected cards came from each box.
func origins(cards []*leitner.Card) [leitner.NumBoxes]int {
	var out [leitner.NumBoxes]int
	for _, c := range cards {
		out[c.Box()-1]++
	}
	return out
}

func newTestSampler(seed int64) *leitner.Sampler {
	return leitner.NewSampler(rand.NewSource(seed))
}

func TestSelect_MatchesAllocationTable(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{50, 50, 50, 50, 50})

	tests := []struct {
		size     int
		expected [leitner.NumBoxes]int
	}{
		{size: 10, expected: [leitner.NumBoxes]int{4, 3, 2, 1, 0}},
		{size: 20, expected: [leitner.NumBoxes]int{8, 6, 4, 2, 0}},
		{size: 50, expected: [leitner.NumBoxes]int{20, 14, 9, 5, 2}},
		{size: 100, expected: [leitner.NumBoxes]int{40, 28, 18, 10, 4}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size %d", tt.size), func(t *testing.T) {
			cards, err := newTestSampler(1).Select(box, tt.size)
			require.NoError(t, err)

			assert.Len(t, cards, tt.size)
			assert.Equal(t, tt.expected, origins(cards))
		})
	}
}

func TestSelect_DoesNotMutateBox(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{50, 50, 50, 50, 50})

	_, err := newTestSampler(1).Select(box, 100)
	require.NoError(t, err)

	assert.Equal(t, [leitner.NumBoxes]int{50, 50, 50, 50, 50}, box.Counts())
}

func TestSelect_NoDuplicates(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{40, 28, 18, 10, 4})

	cards, err := newTestSampler(7).Select(box, 100)
	require.NoError(t, err)

	seen := make(map[*leitner.Card]bool)
	for _, c := range cards {
		assert.False(t, seen[c], "card %s selected twice", c.Answer())
		seen[c] = true
	}
	assert.Len(t, cards, 100)
}

func TestSelect_InvalidSize(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{50, 50, 50, 50, 50})

	for _, size := range []int{0, 5, 15, 30, 99, 101, -10} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			cards, err := newTestSampler(1).Select(box, size)
			assert.ErrorIs(t, err, leitner.ErrInvalidSessionSize)
			assert.Nil(t, cards)
		})
	}
}

func TestSelect_Cascade(t *testing.T) {
	tests := []struct {
		name     string
		counts   [leitner.NumBoxes]int
		size     int
		expected [leitner.NumBoxes]int
	}{
		{
			name:     "empty box5 with zero allocation changes nothing",
			counts:   [leitner.NumBoxes]int{50, 50, 50, 50, 0},
			size:     10,
			expected: [leitner.NumBoxes]int{4, 3, 2, 1, 0},
		},
		{
			name:     "empty box4 carries its share to box3",
			counts:   [leitner.NumBoxes]int{50, 50, 50, 0, 50},
			size:     10,
			expected: [leitner.NumBoxes]int{4, 3, 3, 0, 0},
		},
		{
			name:     "partial box takes everything and carries the rest",
			counts:   [leitner.NumBoxes]int{50, 50, 1, 50, 50},
			size:     10,
			expected: [leitner.NumBoxes]int{4, 4, 1, 1, 0},
		},
		{
			name:     "box5 shortfall cascades for size 50",
			counts:   [leitner.NumBoxes]int{50, 50, 50, 50, 0},
			size:     50,
			expected: [leitner.NumBoxes]int{20, 14, 9, 7, 0},
		},
		{
			name:     "everything cascades to box1",
			counts:   [leitner.NumBoxes]int{50, 0, 0, 0, 0},
			size:     10,
			expected: [leitner.NumBoxes]int{10, 0, 0, 0, 0},
		},
		{
			name:     "corpus smaller than session",
			counts:   [leitner.NumBoxes]int{2, 3, 0, 1, 0},
			size:     20,
			expected: [leitner.NumBoxes]int{2, 3, 0, 1, 0},
		},
		{
			name:     "cards above the session top box are never drawn",
			counts:   [leitner.NumBoxes]int{1, 0, 0, 0, 30},
			size:     10,
			expected: [leitner.NumBoxes]int{1, 0, 0, 0, 0},
		},
		{
			name:     "empty corpus",
			counts:   [leitner.NumBoxes]int{},
			size:     10,
			expected: [leitner.NumBoxes]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := populatedBox(t, tt.counts)

			cards, err := newTestSampler(3).Select(box, tt.size)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, origins(cards))
		})
	}
}

func TestSelect_EndToEndBoxOneOnly(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{50, 0, 0, 0, 0})

	cards, err := newTestSampler(11).Select(box, 10)
	require.NoError(t, err)

	require.Len(t, cards, 10)
	for _, c := range cards {
		assert.Equal(t, 1, c.Box())
		assert.Equal(t, 0, c.History().Sum())
	}
}

func TestSelect_DeterministicForSeed(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{50, 50, 50, 50, 50})

	first, err := newTestSampler(42).Select(box, 20)
	require.NoError(t, err)
	second, err := newTestSampler(42).Select(box, 20)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelect_ShufflesAcrossBoxes(t *testing.T) {
	box := populatedBox(t, [leitner.NumBoxes]int{50, 50, 50, 50, 50})

	// Without a shuffle the draw order is box4, box3, box2, box1, so the
	// first card would always come from box 4.
	firstBoxes := make(map[int]bool)
	for seed := int64(0); seed < 30; seed++ {
		cards, err := newTestSampler(seed).Select(box, 10)
		require.NoError(t, err)
		firstBoxes[cards[0].Box()] = true
	}

	assert.Greater(t, len(firstBoxes), 1)
}

func TestAllocationFor(t *testing.T) {
	alloc, err := leitner.AllocationFor(50)
	require.NoError(t, err)
	assert.Equal(t, leitner.Allocation{20, 14, 9, 5, 2}, alloc)

	for size, a := range leitner.Allocations {
		sum := 0
		for _, n := range a {
			sum += n
		}
		assert.Equal(t, size, sum, "allocation for %d must add up", size)
	}

	_, err = leitner.AllocationFor(25)
	assert.ErrorIs(t, err, leitner.ErrInvalidSessionSize)
}
