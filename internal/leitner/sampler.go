package leitner

import (
	"fmt"
	"math/rand"
	"time"
)

// Allocation is the target number of cards drawn from boxes 1..5.
type Allocation [NumBoxes]int

// Allocations maps each supported session size to its per-box targets.
// Lower boxes get more of the session.
var Allocations = map[int]Allocation{
	10:  {4, 3, 2, 1, 0},
	20:  {8, 6, 4, 2, 0},
	50:  {20, 14, 9, 5, 2},
	100: {40, 28, 18, 10, 4},
}

// AllocationFor returns the allocation for a session of n cards.
func AllocationFor(n int) (Allocation, error) {
	a, ok := Allocations[n]
	if !ok {
		return Allocation{}, fmt.Errorf("%w: got %d", ErrInvalidSessionSize, n)
	}
	return a, nil
}

// Sampler draws session cards from a Box. A Sampler owns its random source
// and is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler drawing from src. A nil src is seeded from
// the clock.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Sampler{rng: rand.New(src)}
}

// Rand exposes the sampler's random source so callers formatting the same
// session can share it.
func (s *Sampler) Rand() *rand.Rand { return s.rng }

// Select returns up to n cards from b, weighted toward low boxes, in random
// order. Boxes are visited from 5 down to 1 and any shortfall in a box
// carries down to the next lower box. If the whole box holds fewer cards
// than n the result is shorter.
func (s *Sampler) Select(b *Box, n int) ([]*Card, error) {
	alloc, err := AllocationFor(n)
	if err != nil {
		return nil, err
	}

	out := make([]*Card, 0, n)
	owed := 0
	for i := NumBoxes; i >= 1; i-- {
		if alloc[i-1] == 0 {
			continue
		}
		owed += alloc[i-1]
		pool := b.slots[i-1]

		switch {
		case owed <= len(pool):
			out = append(out, s.sample(pool, owed)...)
			owed = 0
		case len(pool) == 0:
			// nothing here, carry the whole debt down
		default:
			out = append(out, pool...)
			owed -= len(pool)
		}
	}

	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

// sample picks k distinct cards from pool uniformly.
func (s *Sampler) sample(pool []*Card, k int) []*Card {
	perm := s.rng.Perm(len(pool))
	out := make([]*Card, k)
	for i := 0; i < k; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}
