package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"spicetracker/database"
	"spicetracker/models"
)

// SeedUsers inserts users in one transaction so a test never observes a
// partially seeded table.
func SeedUsers(t *testing.T, db *database.DB, users ...*models.User) {
	t.Helper()

	ctx := context.Background()
	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, u := range users {
			_, err := tx.Exec(ctx, `
				INSERT INTO users (discord_id, username, total_sand, total_melange)
				VALUES ($1, $2, $3, $4)`,
				u.DiscordID, u.Username, u.TotalSand, u.TotalMelange)
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

// CreateTestExpedition creates an expedition with a consistent default split
func CreateTestExpedition(harvesterID int64) *models.Expedition {
	return &models.Expedition{
		HarvesterID:      harvesterID,
		TotalSand:        50000,
		GuildSand:        5000,
		HarvesterSand:    11250,
		SandPerUser:      6750,
		UnallocatedSand:  0,
		HarvesterCutPct:  25,
		GuildCutPct:      10,
		SandPerMelange:   50,
		ParticipantCount: 5,
	}
}

// CreateTestTransaction creates a deposit audit row for a treasury
func CreateTestTransaction(treasuryID, amount int64) *models.GuildTransaction {
	return &models.GuildTransaction{
		TreasuryID:  treasuryID,
		Type:        models.TransactionTypeDeposit,
		SandAmount:  amount,
		Description: "test deposit",
	}
}
