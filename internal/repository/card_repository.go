package repository

import (
	"context"

	"github.com/vytor/leitnerbox/internal/models"
)

// CardRepository handles card data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) error
	// InsertBatch inserts cards in one transaction, skipping ids that already exist.
	InsertBatch(ctx context.Context, cards []models.Card) (int, error)
	Get(ctx context.Context, profileID int64, id string) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	CountByBox(ctx context.Context, profileID int64) ([]models.BoxCount, error)
	// CheckOut marks up to perBox random available cards of every box as
	// checked out and returns them.
	CheckOut(ctx context.Context, profileID int64, perBox int) ([]models.Card, error)
	// CheckIn stores box and history for every card, inserting unknown ones,
	// and releases them.
	CheckIn(ctx context.Context, profileID int64, cards []models.Card) error
	// ReleaseAll clears every checkout left behind by a previous process.
	ReleaseAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, profileID int64, id string) error
}
