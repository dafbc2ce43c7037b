package models

import "time"

// TransactionType represents the direction of a treasury change
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// GuildTreasury represents the guild's accumulated sand reserve
type GuildTreasury struct {
	ID           int64     `db:"id"`
	GuildName    string    `db:"guild_name"`
	TotalSand    int64     `db:"total_sand"`
	TotalMelange int64     `db:"total_melange"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// GuildTransaction represents one audited treasury movement
type GuildTransaction struct {
	ID             int64           `db:"id"`
	TreasuryID     int64           `db:"treasury_id"`
	Type           TransactionType `db:"transaction_type"`
	SandAmount     int64           `db:"sand_amount"`
	MelangeAmount  int64           `db:"melange_amount"`
	Description    string          `db:"description"`
	AdminID        *int64          `db:"admin_id"`
	AdminUsername  *string         `db:"admin_username"`
	TargetID       *int64          `db:"target_id"`
	TargetUsername *string         `db:"target_username"`
	ExpeditionID   *int64          `db:"expedition_id"`
	CreatedAt      time.Time       `db:"created_at"`
}
