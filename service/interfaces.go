package service

import (
	"context"

	"spicetracker/events"
	"spicetracker/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)

	// Credit atomically adds sand and melange deltas to a user's totals,
	// creating the row if needed, and returns the updated totals
	Credit(ctx context.Context, discordID int64, username string, sandDelta, melangeDelta int64) (*models.User, error)

	// Leaderboard returns the top users ranked by melange
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)

	// ResetAllTotals zeroes every user's totals and returns the rows cleared
	ResetAllTotals(ctx context.Context) (int64, error)
}

// SettingRepository defines the interface for guild-wide settings
type SettingRepository interface {
	// GetSandPerMelange returns the current conversion rate
	GetSandPerMelange(ctx context.Context) (int64, error)

	// SetSandPerMelange updates the conversion rate
	SetSandPerMelange(ctx context.Context, rate int64) error
}

// ExpeditionRepository defines the interface for expedition data access
type ExpeditionRepository interface {
	// Create records an expedition and returns it with its assigned ID
	Create(ctx context.Context, exp *models.Expedition) (*models.Expedition, error)

	// AddParticipant records one member's share of an expedition
	AddParticipant(ctx context.Context, expeditionID, discordID, sandAmount int64, isHarvester bool) error

	// GetByID retrieves an expedition by its ID
	GetByID(ctx context.Context, id int64) (*models.Expedition, error)

	// GetParticipants returns all participant rows for an expedition
	GetParticipants(ctx context.Context, expeditionID int64) ([]*models.ExpeditionParticipant, error)
}

// GuildTreasuryRepository defines the interface for treasury balance access
type GuildTreasuryRepository interface {
	// GetOrCreate returns the treasury row, creating it on first use
	GetOrCreate(ctx context.Context, guildName string) (*models.GuildTreasury, error)

	// Credit atomically adjusts the balance by delta, refusing changes that
	// would make it negative, and returns the new balance
	Credit(ctx context.Context, treasuryID, delta int64) (int64, error)
}

// GuildTransactionRepository defines the interface for the treasury audit trail
type GuildTransactionRepository interface {
	// Record appends one audit row for a treasury movement
	Record(ctx context.Context, txn *models.GuildTransaction) (*models.GuildTransaction, error)

	// GetRecent returns the newest audit rows for a treasury
	GetRecent(ctx context.Context, treasuryID int64, limit int) ([]*models.GuildTransaction, error)

	// NetTotal sums deposits minus withdrawals for a treasury
	NetTotal(ctx context.Context, treasuryID int64) (int64, error)
}

// LedgerService defines the interface for individual harvest tracking
type LedgerService interface {
	// LogDeposit credits a harvest of sand to a user, refining any newly
	// completed melange at the current rate
	LogDeposit(ctx context.Context, discordID int64, username string, sandAmount int64) (*models.DepositResult, error)

	// GetRefinery returns a user's current totals and progress to the next melange
	GetRefinery(ctx context.Context, discordID int64) (*models.RefineryStatus, error)

	// GetLeaderboard returns the top harvesters ranked by melange
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// ExpeditionService defines the interface for recording harvest splits
type ExpeditionService interface {
	// RunExpedition splits totalSand between the guild, the harvester, and
	// the participants, credits every share, and records the expedition.
	// All writes succeed or none do.
	RunExpedition(ctx context.Context, params ExpeditionParams) (*models.ExpeditionResult, error)
}

// ExpeditionParams carries the inputs for one expedition split
type ExpeditionParams struct {
	HarvesterID       int64
	HarvesterUsername string
	TotalSand         int64
	HarvesterCutPct   float64
	GuildCutPct       float64
	Participants      []ExpeditionMember
}

// ExpeditionMember identifies one participant of an expedition
type ExpeditionMember struct {
	DiscordID int64
	Username  string
}

// TreasuryService defines the interface for guild treasury operations
type TreasuryService interface {
	// GetTreasury returns the treasury balance with recent activity
	GetTreasury(ctx context.Context, limit int) (*models.TreasuryStatus, error)

	// Deposit adds sand to the treasury with an audit row
	Deposit(ctx context.Context, adminID int64, adminUsername string, isAdmin bool, amount int64, description string) (*models.TreasuryStatus, error)

	// Withdraw removes sand from the treasury with an audit row, failing if
	// the balance would go negative
	Withdraw(ctx context.Context, adminID int64, adminUsername string, isAdmin bool, amount int64, description string, targetID *int64, targetUsername *string) (*models.TreasuryStatus, error)

	// Reconcile verifies the stored balance matches the audit trail
	Reconcile(ctx context.Context) error
}

// AdminService defines the interface for privileged configuration operations
type AdminService interface {
	// GetRate returns the current sand-per-melange conversion rate
	GetRate(ctx context.Context) (int64, error)

	// SetRate updates the conversion rate, admin only
	SetRate(ctx context.Context, adminID int64, isAdmin bool, rate int64) error

	// ResetStats zeroes all user totals, admin only, requires confirmation
	ResetStats(ctx context.Context, adminID int64, isAdmin bool, confirm bool) (int64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	SettingRepository() SettingRepository
	ExpeditionRepository() ExpeditionRepository
	GuildTreasuryRepository() GuildTreasuryRepository
	GuildTransactionRepository() GuildTransactionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
