package service

import (
	"context"
	"fmt"

	"spicetracker/apperr"
	"spicetracker/calculator"
	"spicetracker/events"
	"spicetracker/models"
)

// Deposit size limits per harvest
const (
	MinDepositSand = 1
	MaxDepositSand = 10000
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// LogDeposit credits a harvest of sand to a user. Newly completed melange is
// refined at the current rate, so past refinements are never recomputed when
// the rate changes.
func (s *ledgerService) LogDeposit(ctx context.Context, discordID int64, username string, sandAmount int64) (*models.DepositResult, error) {
	if sandAmount < MinDepositSand || sandAmount > MaxDepositSand {
		return nil, apperr.InvalidInputf("sand amount must be between %d and %d, got %d", MinDepositSand, MaxDepositSand, sandAmount)
	}

	var result *models.DepositResult
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		rate, err := uow.SettingRepository().GetSandPerMelange(ctx)
		if err != nil {
			return fmt.Errorf("failed to get conversion rate: %w", err)
		}

		user, newMelange, err := creditWithRefine(ctx, uow, discordID, username, sandAmount, rate)
		if err != nil {
			return err
		}

		result = &models.DepositResult{
			SandDeposited:  sandAmount,
			NewMelange:     newMelange,
			TotalSand:      user.TotalSand,
			TotalMelange:   user.TotalMelange,
			LeftoverSand:   user.TotalSand % rate,
			SandPerMelange: rate,
		}

		uow.EventBus().Publish(events.DepositLoggedEvent{
			DiscordID:    discordID,
			Username:     username,
			SandAmount:   sandAmount,
			NewMelange:   newMelange,
			TotalSand:    user.TotalSand,
			TotalMelange: user.TotalMelange,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// creditWithRefine adds sandDelta to a user's totals and refines however
// much melange the new lifetime total has completed. The melange delta is
// derived from lifetime sand so repeated small deposits refine exactly as
// much as one large deposit would.
func creditWithRefine(ctx context.Context, uow UnitOfWork, discordID int64, username string, sandDelta, rate int64) (*models.User, int64, error) {
	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get user: %w", err)
	}

	var curSand, curMelange int64
	if user != nil {
		curSand = user.TotalSand
		curMelange = user.TotalMelange
	}

	earned, _, err := calculator.Convert(curSand+sandDelta, rate)
	if err != nil {
		return nil, 0, err
	}

	// Rate increases can put the lifetime conversion below what was already
	// refined. Never claw melange back.
	newMelange := earned - curMelange
	if newMelange < 0 {
		newMelange = 0
	}

	updated, err := uow.UserRepository().Credit(ctx, discordID, username, sandDelta, newMelange)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to credit user: %w", err)
	}

	return updated, newMelange, nil
}

// GetRefinery returns a user's current totals and progress to the next melange
func (s *ledgerService) GetRefinery(ctx context.Context, discordID int64) (*models.RefineryStatus, error) {
	var status *models.RefineryStatus
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		rate, err := uow.SettingRepository().GetSandPerMelange(ctx)
		if err != nil {
			return fmt.Errorf("failed to get conversion rate: %w", err)
		}

		user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}

		status = &models.RefineryStatus{SandPerMelange: rate, SandToNext: rate}
		if user == nil {
			return nil
		}

		leftover := user.TotalSand % rate
		status.Username = user.Username
		status.TotalSand = user.TotalSand
		status.TotalMelange = user.TotalMelange
		status.LeftoverSand = leftover
		status.SandToNext = rate - leftover

		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// GetLeaderboard returns the top harvesters ranked by melange
func (s *ledgerService) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, apperr.InvalidInputf("leaderboard limit must be positive, got %d", limit)
	}

	var entries []*models.LeaderboardEntry
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		entries, err = uow.UserRepository().Leaderboard(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to get leaderboard: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
