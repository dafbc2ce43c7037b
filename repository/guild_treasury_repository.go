package repository

import (
	"context"

	"spicetracker/apperr"
	"spicetracker/database"
	"spicetracker/models"
)

// GuildTreasuryRepository implements the service.GuildTreasuryRepository interface
type GuildTreasuryRepository struct {
	q queryable
}

// NewGuildTreasuryRepository creates a new guild treasury repository
func NewGuildTreasuryRepository(db *database.DB) *GuildTreasuryRepository {
	return &GuildTreasuryRepository{q: db.Pool}
}

// newGuildTreasuryRepositoryWithTx creates a new guild treasury repository with a transaction
func newGuildTreasuryRepositoryWithTx(tx queryable) *GuildTreasuryRepository {
	return &GuildTreasuryRepository{q: tx}
}

// GetOrCreate returns the treasury row for the guild, creating it with a
// zero balance on first use
func (r *GuildTreasuryRepository) GetOrCreate(ctx context.Context, guildName string) (*models.GuildTreasury, error) {
	query := `
		INSERT INTO guild_treasury (guild_name)
		VALUES ($1)
		ON CONFLICT (guild_name) DO UPDATE
		SET guild_name = EXCLUDED.guild_name
		RETURNING id, guild_name, total_sand, total_melange, created_at, updated_at
	`

	var treasury models.GuildTreasury
	err := r.q.QueryRow(ctx, query, guildName).Scan(
		&treasury.ID,
		&treasury.GuildName,
		&treasury.TotalSand,
		&treasury.TotalMelange,
		&treasury.CreatedAt,
		&treasury.UpdatedAt,
	)

	if err != nil {
		return nil, storageErr("get or create treasury", err)
	}

	return &treasury, nil
}

// Credit atomically adjusts the treasury balance by delta, which may be
// negative for withdrawals. The guard clause refuses the update if the
// balance would go negative. Returns the new balance.
func (r *GuildTreasuryRepository) Credit(ctx context.Context, treasuryID, delta int64) (int64, error) {
	query := `
		UPDATE guild_treasury
		SET total_sand = total_sand + $1, updated_at = NOW()
		WHERE id = $2 AND total_sand + $1 >= 0
		RETURNING total_sand
	`

	var newTotal int64
	rows, err := r.q.Query(ctx, query, delta, treasuryID)
	if err != nil {
		return 0, storageErr("credit treasury", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, storageErr("credit treasury", err)
		}
		return 0, apperr.InvalidInputf("treasury %d has insufficient sand for change of %d", treasuryID, delta)
	}
	if err := rows.Scan(&newTotal); err != nil {
		return 0, storageErr("scan treasury balance", err)
	}

	return newTotal, nil
}
