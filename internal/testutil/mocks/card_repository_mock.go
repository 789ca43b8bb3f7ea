package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/leitnerbox/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) InsertBatch(ctx context.Context, cards []models.Card) (int, error) {
	args := m.Called(ctx, cards)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) Get(ctx context.Context, profileID int64, id string) (*models.Card, error) {
	args := m.Called(ctx, profileID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) CountByBox(ctx context.Context, profileID int64) ([]models.BoxCount, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BoxCount), args.Error(1)
}

func (m *MockCardRepository) CheckOut(ctx context.Context, profileID int64, perBox int) ([]models.Card, error) {
	args := m.Called(ctx, profileID, perBox)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) CheckIn(ctx context.Context, profileID int64, cards []models.Card) error {
	args := m.Called(ctx, profileID, cards)
	return args.Error(0)
}

func (m *MockCardRepository) ReleaseAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, profileID int64, id string) error {
	args := m.Called(ctx, profileID, id)
	return args.Error(0)
}
