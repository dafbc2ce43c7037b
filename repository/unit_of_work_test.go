package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicetracker/events"
	"spicetracker/repository/testutil"
)

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	readRepo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("commit persists writes", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		_, err := uow.UserRepository().Credit(ctx, 1, "paul", 100, 2)
		require.NoError(t, err)
		require.NoError(t, uow.Commit())

		user, err := readRepo.GetByDiscordID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(100), user.TotalSand)
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		_, err := uow.UserRepository().Credit(ctx, 2, "chani", 100, 2)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback())

		user, err := readRepo.GetByDiscordID(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("writes across repositories commit together", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		treasury, err := uow.GuildTreasuryRepository().GetOrCreate(ctx, "Fremen")
		require.NoError(t, err)
		_, err = uow.GuildTreasuryRepository().Credit(ctx, treasury.ID, 5000)
		require.NoError(t, err)
		_, err = uow.GuildTransactionRepository().Record(ctx, testutil.CreateTestTransaction(treasury.ID, 5000))
		require.NoError(t, err)
		require.NoError(t, uow.Commit())

		txnRepo := NewGuildTransactionRepository(testDB.DB)
		net, err := txnRepo.NetTotal(ctx, treasury.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), net)
	})

	t.Run("double begin fails", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.Error(t, uow.Begin(ctx))
	})
}
