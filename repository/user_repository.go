package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"spicetracker/database"
	"spicetracker/models"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByDiscordID retrieves a user by their Discord ID
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	query := `
		SELECT discord_id, username, total_sand, total_melange, created_at, updated_at
		FROM users
		WHERE discord_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&user.DiscordID,
		&user.Username,
		&user.TotalSand,
		&user.TotalMelange,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}

	return &user, nil
}

// Credit atomically adds sand and melange deltas to a user's running totals,
// creating the row if it doesn't exist yet. The username is refreshed on
// every credit so display names stay current. Returns the updated totals.
func (r *UserRepository) Credit(ctx context.Context, discordID int64, username string, sandDelta, melangeDelta int64) (*models.User, error) {
	query := `
		INSERT INTO users (discord_id, username, total_sand, total_melange)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (discord_id) DO UPDATE
		SET username = EXCLUDED.username,
		    total_sand = users.total_sand + EXCLUDED.total_sand,
		    total_melange = users.total_melange + EXCLUDED.total_melange,
		    updated_at = NOW()
		RETURNING discord_id, username, total_sand, total_melange, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, discordID, username, sandDelta, melangeDelta).Scan(
		&user.DiscordID,
		&user.Username,
		&user.TotalSand,
		&user.TotalMelange,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, storageErr("credit user", err)
	}

	return &user, nil
}

// Leaderboard returns the top users ranked by melange, breaking ties by sand
// and then Discord ID for a stable ordering
func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT discord_id, username, total_sand, total_melange
		FROM users
		WHERE total_sand > 0 OR total_melange > 0
		ORDER BY total_melange DESC, total_sand DESC, discord_id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, storageErr("get leaderboard", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	rank := 0
	for rows.Next() {
		rank++
		entry := models.LeaderboardEntry{Rank: rank}
		err := rows.Scan(
			&entry.DiscordID,
			&entry.Username,
			&entry.TotalSand,
			&entry.TotalMelange,
		)
		if err != nil {
			return nil, storageErr("scan leaderboard entry", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate leaderboard", err)
	}

	return entries, nil
}

// ResetAllTotals zeroes every user's sand and melange totals, returning the
// number of rows cleared. Treasury balances and audit rows are untouched.
func (r *UserRepository) ResetAllTotals(ctx context.Context) (int64, error) {
	query := `
		UPDATE users
		SET total_sand = 0, total_melange = 0, updated_at = NOW()
		WHERE total_sand > 0 OR total_melange > 0
	`

	result, err := r.q.Exec(ctx, query)
	if err != nil {
		return 0, storageErr("reset user totals", err)
	}

	return result.RowsAffected(), nil
}
