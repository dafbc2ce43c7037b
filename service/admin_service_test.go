package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"spicetracker/apperr"
	"spicetracker/events"
)

func TestAdminService_SetRate(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockSettingRepo := new(MockSettingRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockSettingRepo, nil, nil, nil, mockPublisher)

	service := NewAdminService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockSettingRepo.On("GetSandPerMelange", ctx).Return(int64(50), nil)
	mockSettingRepo.On("SetSandPerMelange", ctx, int64(75)).Return(nil)

	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.RateChangeEvent)
		return ok && ev.OldRate == 50 && ev.NewRate == 75 && ev.AdminID == 99
	})).Return()

	err := service.SetRate(ctx, 99, true, 75)

	assert.NoError(t, err)
	mockSettingRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestAdminService_SetRate_Rejected(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewAdminService(mockFactory)

	err := service.SetRate(ctx, 99, false, 75)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	err = service.SetRate(ctx, 99, true, 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	err = service.SetRate(ctx, 99, true, -10)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestAdminService_GetRate(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockSettingRepo := new(MockSettingRepository)

	mockUoW.SetRepositories(nil, mockSettingRepo, nil, nil, nil, nil)

	service := NewAdminService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockSettingRepo.On("GetSandPerMelange", ctx).Return(int64(60), nil)

	rate, err := service.GetRate(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(60), rate)
}

func TestAdminService_ResetStats(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, mockPublisher)

	service := NewAdminService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("ResetAllTotals", ctx).Return(int64(12), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.StatsResetEvent)
		return ok && ev.AdminID == 99 && ev.UsersCleared == 12
	})).Return()

	cleared, err := service.ResetStats(ctx, 99, true, true)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), cleared)
	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestAdminService_ResetStats_RequiresAdminAndConfirmation(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewAdminService(mockFactory)

	_, err := service.ResetStats(ctx, 99, false, true)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = service.ResetStats(ctx, 99, true, false)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	mockFactory.AssertNotCalled(t, "Create")
}
