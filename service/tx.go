package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"spicetracker/apperr"
)

// execInTx runs fn inside a unit of work, committing on success and rolling
// back on error. A transient storage failure is retried exactly once on a
// fresh transaction; anything else surfaces immediately.
func execInTx(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	err := runOnce(ctx, factory, fn)
	if err == nil || !apperr.IsTransient(err) {
		return err
	}

	log.WithError(err).Warn("Transient storage failure, retrying transaction once")
	return runOnce(ctx, factory, fn)
}

func runOnce(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback() // No-op if already committed

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit()
}
