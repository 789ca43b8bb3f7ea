package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
)

// CardService handles stored cards outside of any working set
type CardService interface {
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, int, error)
	DeleteCard(ctx context.Context, profileID int64, id string) error
	Import(ctx context.Context, profileID int64, records []leitner.Record) (*models.ImportResult, error)
}

type cardService struct {
	cardRepo    repository.CardRepository
	profileRepo repository.ProfileRepository
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, profileRepo repository.ProfileRepository) CardService {
	return &cardService{cardRepo: cardRepo, profileRepo: profileRepo}
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: profile_id=%d, box=%d", filter.ProfileID, filter.Box)

	if filter.Box < 0 || filter.Box > leitner.NumBoxes {
		return nil, 0, errors.NewValidationError("box", "must be between 1 and 5")
	}

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	total, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count cards: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return cards, total, nil
}

func (s *cardService) DeleteCard(ctx context.Context, profileID int64, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: profile_id=%d, id=%s", profileID, id)

	err := s.cardRepo.Delete(ctx, profileID, id)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NewNotFoundError("card", id)
	case stderrors.Is(err, repository.ErrCardCheckedOut):
		return errors.NewConflictError("card is in the loaded deck; save the deck first")
	default:
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
}

func (s *cardService) Import(ctx context.Context, profileID int64, records []leitner.Record) (*models.ImportResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing %d cards: profile_id=%d", len(records), profileID)

	profile, err := s.profileRepo.Get(ctx, profileID)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	cards := make([]models.Card, 0, len(records))
	for i, r := range records {
		answer, questions, appErr := normalizeCard(r.Answer, r.Questions)
		if appErr != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("records[%d]", i), appErr.Message)
		}
		r.Answer, r.Questions = answer, questions

		card, err := leitner.RestoreCard(r)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("records[%d]", i), err.Error())
		}
		cards = append(cards, models.CardFromRecord(profileID, card.Record()))
	}

	inserted, err := s.cardRepo.InsertBatch(ctx, cards)
	if err != nil {
		log.Error("failed to insert cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	result := &models.ImportResult{
		Received: len(records),
		Inserted: inserted,
		Skipped:  len(records) - inserted,
	}
	log.Info("imported cards: profile_id=%d, inserted=%d, skipped=%d", profileID, result.Inserted, result.Skipped)
	return result, nil
}
