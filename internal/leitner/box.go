package leitner

import "fmt"

// Box is the working set of a Leitner deck: five ordered collections of
// cards. A card lives in exactly one collection, the one its box field
// names. Box is not safe for concurrent use.
type Box struct {
	slots [NumBoxes][]*Card
}

// NewBox returns a box holding cards, each placed by its own box field.
func NewBox(cards ...*Card) (*Box, error) {
	b := &Box{}
	for _, c := range cards {
		if err := b.Insert(c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Insert places an existing card into the collection named by its box field.
func (b *Box) Insert(c *Card) error {
	if !validBox(c.box) {
		return fmt.Errorf("%w: card %s has box %d", ErrInvalidBox, c.id, c.box)
	}
	b.slots[c.box-1] = append(b.slots[c.box-1], c)
	return nil
}

// Add creates a new card in box 1 and returns it.
func (b *Box) Add(answer string, questions Questions) *Card {
	c := NewCard(answer, questions)
	b.slots[0] = append(b.slots[0], c)
	return c
}

// Move relocates c from the collection named by its box field to newBox and
// updates the field. It fails with ErrCardBoxDesync if c is not where its
// box field says.
func (b *Box) Move(c *Card, newBox int) error {
	if !validBox(newBox) {
		return fmt.Errorf("%w: %d", ErrInvalidBox, newBox)
	}
	if !validBox(c.box) {
		return fmt.Errorf("%w: card %s claims box %d", ErrCardBoxDesync, c.id, c.box)
	}

	from := b.slots[c.box-1]
	idx := -1
	for i, other := range from {
		if other == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: card %s not found in box %d", ErrCardBoxDesync, c.id, c.box)
	}

	b.slots[c.box-1] = append(from[:idx:idx], from[idx+1:]...)
	b.slots[newBox-1] = append(b.slots[newBox-1], c)
	c.box = newBox
	return nil
}

// Cards returns a copy of the collection for box n (1..5).
func (b *Box) Cards(n int) []*Card {
	return append([]*Card(nil), b.slots[n-1]...)
}

// Len returns the number of cards in box n (1..5).
func (b *Box) Len(n int) int { return len(b.slots[n-1]) }

// Counts returns the size of every collection, box 1 first.
func (b *Box) Counts() [NumBoxes]int {
	var out [NumBoxes]int
	for i, s := range b.slots {
		out[i] = len(s)
	}
	return out
}

// Total returns the number of cards across all boxes.
func (b *Box) Total() int {
	n := 0
	for _, s := range b.slots {
		n += len(s)
	}
	return n
}

// Empty reports whether all five collections are empty.
func (b *Box) Empty() bool { return b.Total() == 0 }

// All returns every card, box 1 first.
func (b *Box) All() []*Card {
	out := make([]*Card, 0, b.Total())
	for _, s := range b.slots {
		out = append(out, s...)
	}
	return out
}

// Drain empties the box and returns the cards it held, box 1 first.
func (b *Box) Drain() []*Card {
	out := b.All()
	for i := range b.slots {
		b.slots[i] = nil
	}
	return out
}

func validBox(n int) bool { return n >= 1 && n <= NumBoxes }
