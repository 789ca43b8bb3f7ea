package worker

import (
	"context"

	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
)

// CardImporter stores imported card records. It is satisfied by the card
// service and keeps this package free of a services import.
type CardImporter interface {
	Import(ctx context.Context, profileID int64, records []leitner.Record) (*models.ImportResult, error)
}

// ImportCardsJob inserts a batch of card records for one profile.
type ImportCardsJob struct {
	Importer  CardImporter
	ProfileID int64
	Records   []leitner.Record
}

func (j *ImportCardsJob) Name() string { return "import_cards" }

func (j *ImportCardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"profile_id": j.ProfileID,
		"records":    len(j.Records),
	})
	log.Info("starting background card import")

	result, err := j.Importer.Import(ctx, j.ProfileID, j.Records)
	if err != nil {
		return err
	}

	log.Info("card import finished: inserted=%d, skipped=%d", result.Inserted, result.Skipped)
	return nil
}
