package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"spicetracker/database"
	"spicetracker/events"
	"spicetracker/service"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus

	userRepo             service.UserRepository
	settingRepo          service.SettingRepository
	expeditionRepo       service.ExpeditionRepository
	guildTreasuryRepo    service.GuildTreasuryRepository
	guildTransactionRepo service.GuildTransactionRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return storageErr("begin transaction", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.settingRepo = newSettingRepositoryWithTx(tx)
	u.expeditionRepo = newExpeditionRepositoryWithTx(tx)
	u.guildTreasuryRepo = newGuildTreasuryRepositoryWithTx(tx)
	u.guildTransactionRepo = newGuildTransactionRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return storageErr("commit transaction", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return storageErr("rollback transaction", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// SettingRepository returns the setting repository for this unit of work
func (u *unitOfWork) SettingRepository() service.SettingRepository {
	if u.settingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settingRepo
}

// ExpeditionRepository returns the expedition repository for this unit of work
func (u *unitOfWork) ExpeditionRepository() service.ExpeditionRepository {
	if u.expeditionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.expeditionRepo
}

// GuildTreasuryRepository returns the guild treasury repository for this unit of work
func (u *unitOfWork) GuildTreasuryRepository() service.GuildTreasuryRepository {
	if u.guildTreasuryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildTreasuryRepo
}

// GuildTransactionRepository returns the guild transaction repository for this unit of work
func (u *unitOfWork) GuildTransactionRepository() service.GuildTransactionRepository {
	if u.guildTransactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildTransactionRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
