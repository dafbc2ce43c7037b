package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"spicetracker/apperr"
	"spicetracker/models"
)

func treasuryMocks() (*MockUnitOfWork, *MockUnitOfWorkFactory, *MockSettingRepository, *MockGuildTreasuryRepository, *MockGuildTransactionRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockSettingRepo := new(MockSettingRepository)
	mockTreasuryRepo := new(MockGuildTreasuryRepository)
	mockTxnRepo := new(MockGuildTransactionRepository)

	mockUoW.SetRepositories(nil, mockSettingRepo, nil, mockTreasuryRepo, mockTxnRepo, nil)

	return mockUoW, mockFactory, mockSettingRepo, mockTreasuryRepo, mockTxnRepo
}

func TestTreasuryService_Deposit(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, mockSettingRepo, mockTreasuryRepo, mockTxnRepo := treasuryMocks()
	service := NewTreasuryService(mockFactory, "Fremen")

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	treasury := &models.GuildTreasury{ID: 3, GuildName: "Fremen", TotalSand: 1000}
	mockTreasuryRepo.On("GetOrCreate", ctx, "Fremen").Return(treasury, nil)
	mockTreasuryRepo.On("Credit", ctx, int64(3), int64(500)).Return(int64(1500), nil)
	mockTxnRepo.On("Record", ctx, mock.MatchedBy(func(txn *models.GuildTransaction) bool {
		return txn.Type == models.TransactionTypeDeposit &&
			txn.SandAmount == 500 &&
			txn.AdminID != nil && *txn.AdminID == 99 &&
			txn.AdminUsername != nil && *txn.AdminUsername == "stilgar"
	})).Return(&models.GuildTransaction{ID: 1}, nil)
	mockSettingRepo.On("GetSandPerMelange", ctx).Return(int64(50), nil)
	mockTxnRepo.On("GetRecent", ctx, int64(3), 5).Return([]*models.GuildTransaction{{ID: 1}}, nil)

	status, err := service.Deposit(ctx, 99, "stilgar", true, 500, "tithe")

	assert.NoError(t, err)
	assert.Equal(t, "Fremen", status.GuildName)
	assert.Len(t, status.Recent, 1)

	mockTreasuryRepo.AssertExpectations(t)
	mockTxnRepo.AssertExpectations(t)
}

func TestTreasuryService_Deposit_RequiresAdmin(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewTreasuryService(mockFactory, "Fremen")

	status, err := service.Deposit(ctx, 99, "stilgar", false, 500, "tithe")
	assert.Nil(t, status)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	status, err = service.Deposit(ctx, 99, "stilgar", true, 0, "tithe")
	assert.Nil(t, status)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestTreasuryService_Withdraw_InsufficientFunds(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockTreasuryRepo, mockTxnRepo := treasuryMocks()
	service := NewTreasuryService(mockFactory, "Fremen")

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	treasury := &models.GuildTreasury{ID: 3, GuildName: "Fremen", TotalSand: 100}
	mockTreasuryRepo.On("GetOrCreate", ctx, "Fremen").Return(treasury, nil)
	mockTreasuryRepo.On("Credit", ctx, int64(3), int64(-500)).Return(int64(0), apperr.InvalidInputf("treasury 3 has insufficient sand for change of -500"))

	status, err := service.Withdraw(ctx, 99, "stilgar", true, 500, "supplies", nil, nil)

	// An overdraft is a constraint violation the admin should see verbatim,
	// not a storage or consistency failure
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.NotErrorIs(t, err, apperr.ErrStorage)
	assert.NotErrorIs(t, err, apperr.ErrConsistency)
	assert.Contains(t, err.Error(), "insufficient sand")
	assert.Nil(t, status)

	mockUoW.AssertNotCalled(t, "Commit")
	mockTxnRepo.AssertNotCalled(t, "Record")
}

func TestTreasuryService_Reconcile(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockTreasuryRepo, mockTxnRepo := treasuryMocks()
	service := NewTreasuryService(mockFactory, "Fremen")

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	treasury := &models.GuildTreasury{ID: 3, GuildName: "Fremen", TotalSand: 1000}
	mockTreasuryRepo.On("GetOrCreate", ctx, "Fremen").Return(treasury, nil)
	mockTxnRepo.On("NetTotal", ctx, int64(3)).Return(int64(1000), nil)

	assert.NoError(t, service.Reconcile(ctx))
}

func TestTreasuryService_Reconcile_Mismatch(t *testing.T) {
	ctx := context.Background()

	mockUoW, mockFactory, _, mockTreasuryRepo, mockTxnRepo := treasuryMocks()
	service := NewTreasuryService(mockFactory, "Fremen")

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	treasury := &models.GuildTreasury{ID: 3, GuildName: "Fremen", TotalSand: 1000}
	mockTreasuryRepo.On("GetOrCreate", ctx, "Fremen").Return(treasury, nil)
	mockTxnRepo.On("NetTotal", ctx, int64(3)).Return(int64(900), nil)

	err := service.Reconcile(ctx)

	assert.ErrorIs(t, err, apperr.ErrConsistency)
	mockUoW.AssertNotCalled(t, "Commit")
}
