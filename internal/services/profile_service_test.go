package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/repository"
	"github.com/vytor/leitnerbox/internal/services"
	"github.com/vytor/leitnerbox/internal/testutil/mocks"
)

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestProfileService_CreateNormalizesUsername(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Upsert", mock.Anything, "ana").Return(&models.Profile{ID: 1, Username: "ana"}, nil)

	svc := services.NewProfileService(repo, nil)
	p, err := svc.CreateProfile(context.Background(), "  Ana ")

	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	repo.AssertExpectations(t)
}

func TestProfileService_CreateRejectsBlank(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	svc := services.NewProfileService(repo, nil)

	_, err := svc.CreateProfile(context.Background(), "   ")

	assert.Equal(t, errors.ErrCodeValidation, appErrorCode(t, err))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestProfileService_GetProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Get", mock.Anything, int64(1)).Return(&models.Profile{ID: 1}, nil)
	repo.On("Get", mock.Anything, int64(2)).Return(nil, nil)
	repo.On("Get", mock.Anything, int64(3)).Return(nil, stderrors.New("db down"))

	svc := services.NewProfileService(repo, nil)
	ctx := context.Background()

	p, err := svc.GetProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	_, err = svc.GetProfile(ctx, 2)
	assert.Equal(t, errors.ErrCodeNotFound, appErrorCode(t, err))

	_, err = svc.GetProfile(ctx, 3)
	assert.Equal(t, errors.ErrCodeInternal, appErrorCode(t, err))
}

func TestProfileService_FindProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("GetByUsername", mock.Anything, "bruno").Return(&models.Profile{ID: 4, Username: "bruno"}, nil)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	svc := services.NewProfileService(repo, nil)

	p, err := svc.FindProfile(context.Background(), "Bruno")
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)

	_, err = svc.FindProfile(context.Background(), "ghost")
	assert.Equal(t, errors.ErrCodeNotFound, appErrorCode(t, err))
}

func TestProfileService_DeleteProfile(t *testing.T) {
	repo := new(mocks.MockProfileRepository)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)
	repo.On("Delete", mock.Anything, int64(2)).Return(repository.ErrNotFound)

	svc := services.NewProfileService(repo, nil)

	assert.NoError(t, svc.DeleteProfile(context.Background(), 1))
	assert.Equal(t, errors.ErrCodeNotFound, appErrorCode(t, svc.DeleteProfile(context.Background(), 2)))
	repo.AssertExpectations(t)
}
