package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicetracker/models"
	"spicetracker/repository/testutil"
)

func TestUserRepository_Credit(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates user on first credit", func(t *testing.T) {
		user, err := repo.Credit(ctx, 100, "paul", 2549, 50)
		require.NoError(t, err)

		assert.Equal(t, int64(100), user.DiscordID)
		assert.Equal(t, "paul", user.Username)
		assert.Equal(t, int64(2549), user.TotalSand)
		assert.Equal(t, int64(50), user.TotalMelange)
	})

	t.Run("accumulates on repeat credits", func(t *testing.T) {
		user, err := repo.Credit(ctx, 100, "paul", 451, 1)
		require.NoError(t, err)

		assert.Equal(t, int64(3000), user.TotalSand)
		assert.Equal(t, int64(51), user.TotalMelange)
	})

	t.Run("refreshes username", func(t *testing.T) {
		user, err := repo.Credit(ctx, 100, "muaddib", 0, 0)
		require.NoError(t, err)

		assert.Equal(t, "muaddib", user.Username)
		assert.Equal(t, int64(3000), user.TotalSand)
	})

	t.Run("unknown user reads as nil", func(t *testing.T) {
		user, err := repo.GetByDiscordID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_Credit_Concurrent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	// N concurrent deposits must all land; no update may be lost
	const workers = 20
	const perWorker = int64(100)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Credit(ctx, 555, "worker", perWorker, 2)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	user, err := repo.GetByDiscordID(ctx, 555)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, workers*perWorker, user.TotalSand)
	assert.Equal(t, int64(workers*2), user.TotalMelange)
}

func TestUserRepository_Leaderboard(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	// Melange descending, then sand descending, then ID ascending
	testutil.SeedUsers(t, testDB.DB,
		&models.User{DiscordID: 3, Username: "low", TotalSand: 100, TotalMelange: 1},
		&models.User{DiscordID: 2, Username: "tied-more-sand", TotalSand: 500, TotalMelange: 5},
		&models.User{DiscordID: 4, Username: "tied-less-sand", TotalSand: 400, TotalMelange: 5},
		&models.User{DiscordID: 1, Username: "tied-exact-b", TotalSand: 400, TotalMelange: 5},
	)

	entries, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, int64(2), entries[0].DiscordID)
	assert.Equal(t, int64(1), entries[1].DiscordID) // exact tie broken by lower ID
	assert.Equal(t, int64(4), entries[2].DiscordID)
	assert.Equal(t, int64(3), entries[3].DiscordID)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 4, entries[3].Rank)

	t.Run("limit caps results", func(t *testing.T) {
		entries, err := repo.Leaderboard(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestUserRepository_ResetAllTotals(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Credit(ctx, 1, "a", 1000, 20)
	require.NoError(t, err)
	_, err = repo.Credit(ctx, 2, "b", 500, 10)
	require.NoError(t, err)

	cleared, err := repo.ResetAllTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	user, err := repo.GetByDiscordID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user) // rows survive, totals are zeroed
	assert.Equal(t, int64(0), user.TotalSand)
	assert.Equal(t, int64(0), user.TotalMelange)

	// Second reset touches nothing
	cleared, err = repo.ResetAllTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cleared)
}
