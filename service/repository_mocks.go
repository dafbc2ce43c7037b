package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"spicetracker/events"
	"spicetracker/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Credit(ctx context.Context, discordID int64, username string, sandDelta, melangeDelta int64) (*models.User, error) {
	args := m.Called(ctx, discordID, username, sandDelta, melangeDelta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

func (m *MockUserRepository) ResetAllTotals(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSettingRepository is a mock implementation of SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) GetSandPerMelange(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettingRepository) SetSandPerMelange(ctx context.Context, rate int64) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockExpeditionRepository is a mock implementation of ExpeditionRepository
type MockExpeditionRepository struct {
	mock.Mock
}

func (m *MockExpeditionRepository) Create(ctx context.Context, exp *models.Expedition) (*models.Expedition, error) {
	args := m.Called(ctx, exp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expedition), args.Error(1)
}

func (m *MockExpeditionRepository) AddParticipant(ctx context.Context, expeditionID, discordID, sandAmount int64, isHarvester bool) error {
	args := m.Called(ctx, expeditionID, discordID, sandAmount, isHarvester)
	return args.Error(0)
}

func (m *MockExpeditionRepository) GetByID(ctx context.Context, id int64) (*models.Expedition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expedition), args.Error(1)
}

func (m *MockExpeditionRepository) GetParticipants(ctx context.Context, expeditionID int64) ([]*models.ExpeditionParticipant, error) {
	args := m.Called(ctx, expeditionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpeditionParticipant), args.Error(1)
}

// MockGuildTreasuryRepository is a mock implementation of GuildTreasuryRepository
type MockGuildTreasuryRepository struct {
	mock.Mock
}

func (m *MockGuildTreasuryRepository) GetOrCreate(ctx context.Context, guildName string) (*models.GuildTreasury, error) {
	args := m.Called(ctx, guildName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildTreasury), args.Error(1)
}

func (m *MockGuildTreasuryRepository) Credit(ctx context.Context, treasuryID, delta int64) (int64, error) {
	args := m.Called(ctx, treasuryID, delta)
	return args.Get(0).(int64), args.Error(1)
}

// MockGuildTransactionRepository is a mock implementation of GuildTransactionRepository
type MockGuildTransactionRepository struct {
	mock.Mock
}

func (m *MockGuildTransactionRepository) Record(ctx context.Context, txn *models.GuildTransaction) (*models.GuildTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildTransaction), args.Error(1)
}

func (m *MockGuildTransactionRepository) GetRecent(ctx context.Context, treasuryID int64, limit int) ([]*models.GuildTransaction, error) {
	args := m.Called(ctx, treasuryID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GuildTransaction), args.Error(1)
}

func (m *MockGuildTransactionRepository) NetTotal(ctx context.Context, treasuryID int64) (int64, error) {
	args := m.Called(ctx, treasuryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// noopPublisher swallows events for tests that don't assert on them
type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories rather than mocked so getters don't need
// expectations.
type MockUnitOfWork struct {
	mock.Mock

	userRepo             UserRepository
	settingRepo          SettingRepository
	expeditionRepo       ExpeditionRepository
	guildTreasuryRepo    GuildTreasuryRepository
	guildTransactionRepo GuildTransactionRepository
	eventPublisher       EventPublisher
}

// SetRepositories wires the repositories this unit of work hands out. Pass
// nil for any the test doesn't touch.
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	settingRepo SettingRepository,
	expeditionRepo ExpeditionRepository,
	guildTreasuryRepo GuildTreasuryRepository,
	guildTransactionRepo GuildTransactionRepository,
	eventPublisher EventPublisher,
) {
	m.userRepo = userRepo
	m.settingRepo = settingRepo
	m.expeditionRepo = expeditionRepo
	m.guildTreasuryRepo = guildTreasuryRepo
	m.guildTransactionRepo = guildTransactionRepo
	m.eventPublisher = eventPublisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) SettingRepository() SettingRepository {
	return m.settingRepo
}

func (m *MockUnitOfWork) ExpeditionRepository() ExpeditionRepository {
	return m.expeditionRepo
}

func (m *MockUnitOfWork) GuildTreasuryRepository() GuildTreasuryRepository {
	return m.guildTreasuryRepo
}

func (m *MockUnitOfWork) GuildTransactionRepository() GuildTransactionRepository {
	return m.guildTransactionRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventPublisher == nil {
		return noopPublisher{}
	}
	return m.eventPublisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
