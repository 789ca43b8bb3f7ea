package leitner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Record is the persisted shape of a card.
type Record struct {
	ID        string    `json:"id,omitempty"`
	Answer    string    `json:"answer"`
	Questions Questions `json:"questions"`
	Box       int       `json:"box"`
	History   []int     `json:"history"`
}

// Record serializes the card for the persistence collaborator.
func (c *Card) Record() Record {
	h := make([]int, HistoryLen)
	for i, v := range c.history {
		h[i] = int(v)
	}
	return Record{
		ID:        c.id,
		Answer:    c.answer,
		Questions: copyQuestions(c.questions),
		Box:       c.box,
		History:   h,
	}
}

// RestoreCard rebuilds a card from a persisted record. A record without an
// ID gets a fresh one. A nil or empty history means a new card.
func RestoreCard(r Record) (*Card, error) {
	if r.Box < 1 || r.Box > NumBoxes {
		return nil, fmt.Errorf("%w: box %d out of range", ErrInvalidRecord, r.Box)
	}
	if r.Questions[KindInput] == nil && r.Questions[KindChoice] == nil {
		return nil, fmt.Errorf("%w: card %q has no question", ErrInvalidRecord, r.Answer)
	}

	var h History
	if len(r.History) != 0 {
		if len(r.History) != HistoryLen {
			return nil, fmt.Errorf("%w: history has %d entries, want %d", ErrInvalidRecord, len(r.History), HistoryLen)
		}
		for i, v := range r.History {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("%w: history[%d] = %d", ErrInvalidRecord, i, v)
			}
			h[i] = uint8(v)
		}
	}

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Card{
		id:        id,
		answer:    r.Answer,
		questions: copyQuestions(r.Questions),
		history:   h,
		box:       r.Box,
	}, nil
}

// EncodeHistory renders a history as a string of '0' and '1' runes.
func EncodeHistory(h []int) string {
	var sb strings.Builder
	for _, v := range h {
		if v == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// DecodeHistory parses the output of EncodeHistory.
func DecodeHistory(s string) ([]int, error) {
	if len(s) != HistoryLen {
		return nil, fmt.Errorf("%w: encoded history %q", ErrInvalidRecord, s)
	}
	h := make([]int, HistoryLen)
	for i, r := range s {
		switch r {
		case '0':
		case '1':
			h[i] = 1
		default:
			return nil, fmt.Errorf("%w: encoded history %q", ErrInvalidRecord, s)
		}
	}
	return h, nil
}
