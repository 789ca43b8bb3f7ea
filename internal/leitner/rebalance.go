package leitner

// TargetBox returns the box a card with history h belongs in.
func TargetBox(h History) int {
	s := h.Sum()
	switch {
	case s >= 8:
		return 5
	case s >= 6:
		return 4
	case s >= 4:
		return 3
	case s >= 2:
		return 2
	default:
		return 1
	}
}

// Move describes one card relocation made by Rebalance.
type Move struct {
	Card *Card
	From int
	To   int
}

// Rebalance recomputes every card's box from its history and moves the
// cards whose box changed. All targets are computed before any card moves.
// The moves applied so far are returned along with any error.
func Rebalance(b *Box) ([]Move, error) {
	var pending []Move
	for i := range b.slots {
		for _, c := range b.slots[i] {
			if t := TargetBox(c.history); t != c.box {
				pending = append(pending, Move{Card: c, From: c.box, To: t})
			}
		}
	}

	applied := make([]Move, 0, len(pending))
	for _, m := range pending {
		if err := b.Move(m.Card, m.To); err != nil {
			return applied, err
		}
		applied = append(applied, m)
	}
	return applied, nil
}
