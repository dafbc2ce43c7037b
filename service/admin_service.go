package service

import (
	"context"
	"fmt"

	"spicetracker/apperr"
	"spicetracker/events"
)

type adminService struct {
	uowFactory UnitOfWorkFactory
}

// NewAdminService creates a new admin service
func NewAdminService(uowFactory UnitOfWorkFactory) AdminService {
	return &adminService{
		uowFactory: uowFactory,
	}
}

// GetRate returns the current sand-per-melange conversion rate
func (s *adminService) GetRate(ctx context.Context) (int64, error) {
	var rate int64
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		rate, err = uow.SettingRepository().GetSandPerMelange(ctx)
		if err != nil {
			return fmt.Errorf("failed to get conversion rate: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return rate, nil
}

// SetRate updates the conversion rate. Already refined melange keeps its
// value, only future refinements use the new rate.
func (s *adminService) SetRate(ctx context.Context, adminID int64, isAdmin bool, rate int64) error {
	if !isAdmin {
		return apperr.InvalidInputf("only admins can change the conversion rate")
	}
	if rate <= 0 {
		return apperr.InvalidInputf("conversion rate must be positive, got %d", rate)
	}

	return execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		oldRate, err := uow.SettingRepository().GetSandPerMelange(ctx)
		if err != nil {
			return fmt.Errorf("failed to get conversion rate: %w", err)
		}

		if err := uow.SettingRepository().SetSandPerMelange(ctx, rate); err != nil {
			return fmt.Errorf("failed to set conversion rate: %w", err)
		}

		uow.EventBus().Publish(events.RateChangeEvent{
			OldRate: oldRate,
			NewRate: rate,
			AdminID: adminID,
		})

		return nil
	})
}

// ResetStats zeroes all user totals. The treasury and its audit trail are
// preserved. Requires an explicit confirmation flag on top of admin rights.
func (s *adminService) ResetStats(ctx context.Context, adminID int64, isAdmin bool, confirm bool) (int64, error) {
	if !isAdmin {
		return 0, apperr.InvalidInputf("only admins can reset harvest stats")
	}
	if !confirm {
		return 0, apperr.InvalidInputf("reset requires confirmation")
	}

	var cleared int64
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		cleared, err = uow.UserRepository().ResetAllTotals(ctx)
		if err != nil {
			return fmt.Errorf("failed to reset user totals: %w", err)
		}

		uow.EventBus().Publish(events.StatsResetEvent{
			AdminID:      adminID,
			UsersCleared: cleared,
		})

		return nil
	})
	if err != nil {
		return 0, err
	}

	return cleared, nil
}
