package models

import (
	"fmt"
	"time"

	"github.com/vytor/leitnerbox/internal/leitner"
)

// Card is the stored form of a leitner card.
type Card struct {
	ID             string    `json:"id"`
	ProfileID      int64     `json:"profile_id"`
	Answer         string    `json:"answer"`
	QuestionInput  *string   `json:"question_input"`
	QuestionChoice *string   `json:"question_choice"`
	Box            int       `json:"box"`
	History        string    `json:"history"`
	CheckedOut     bool      `json:"checked_out"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CardFilter struct {
	ProfileID  int64
	Box        int // 0 means every box
	CheckedOut *bool
	Limit      int
	Offset     int
}

// CardFromRecord builds the stored form of a record for a profile.
func CardFromRecord(profileID int64, r leitner.Record) Card {
	history := r.History
	if len(history) == 0 {
		history = make([]int, leitner.HistoryLen)
	}
	return Card{
		ID:             r.ID,
		ProfileID:      profileID,
		Answer:         r.Answer,
		QuestionInput:  r.Questions[leitner.KindInput],
		QuestionChoice: r.Questions[leitner.KindChoice],
		Box:            r.Box,
		History:        leitner.EncodeHistory(history),
	}
}

// Record converts a stored card back into a leitner record.
func (c Card) Record() (leitner.Record, error) {
	history, err := leitner.DecodeHistory(c.History)
	if err != nil {
		return leitner.Record{}, fmt.Errorf("card %s: %w", c.ID, err)
	}
	return leitner.Record{
		ID:        c.ID,
		Answer:    c.Answer,
		Questions: leitner.Questions{c.QuestionInput, c.QuestionChoice},
		Box:       c.Box,
		History:   history,
	}, nil
}
