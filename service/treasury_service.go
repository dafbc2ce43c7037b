package service

import (
	"context"
	"fmt"

	"spicetracker/apperr"
	"spicetracker/calculator"
	"spicetracker/events"
	"spicetracker/models"
)

type treasuryService struct {
	uowFactory UnitOfWorkFactory
	guildName  string
}

// NewTreasuryService creates a new treasury service
func NewTreasuryService(uowFactory UnitOfWorkFactory, guildName string) TreasuryService {
	return &treasuryService{
		uowFactory: uowFactory,
		guildName:  guildName,
	}
}

// GetTreasury returns the treasury balance with recent activity
func (s *treasuryService) GetTreasury(ctx context.Context, limit int) (*models.TreasuryStatus, error) {
	if limit <= 0 {
		return nil, apperr.InvalidInputf("history limit must be positive, got %d", limit)
	}

	var status *models.TreasuryStatus
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		var err error
		status, err = s.buildStatus(ctx, uow, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

// Deposit adds sand to the treasury with an audit row
func (s *treasuryService) Deposit(ctx context.Context, adminID int64, adminUsername string, isAdmin bool, amount int64, description string) (*models.TreasuryStatus, error) {
	if !isAdmin {
		return nil, apperr.InvalidInputf("only admins can modify the treasury")
	}
	if amount <= 0 {
		return nil, apperr.InvalidInputf("deposit amount must be positive, got %d", amount)
	}

	return s.adjust(ctx, adminID, adminUsername, amount, models.TransactionTypeDeposit, description, nil, nil)
}

// Withdraw removes sand from the treasury with an audit row, failing if the
// balance would go negative
func (s *treasuryService) Withdraw(ctx context.Context, adminID int64, adminUsername string, isAdmin bool, amount int64, description string, targetID *int64, targetUsername *string) (*models.TreasuryStatus, error) {
	if !isAdmin {
		return nil, apperr.InvalidInputf("only admins can modify the treasury")
	}
	if amount <= 0 {
		return nil, apperr.InvalidInputf("withdrawal amount must be positive, got %d", amount)
	}

	return s.adjust(ctx, adminID, adminUsername, -amount, models.TransactionTypeWithdrawal, description, targetID, targetUsername)
}

func (s *treasuryService) adjust(ctx context.Context, adminID int64, adminUsername string, delta int64, txnType models.TransactionType, description string, targetID *int64, targetUsername *string) (*models.TreasuryStatus, error) {
	var status *models.TreasuryStatus
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		treasury, err := uow.GuildTreasuryRepository().GetOrCreate(ctx, s.guildName)
		if err != nil {
			return err
		}

		newTotal, err := uow.GuildTreasuryRepository().Credit(ctx, treasury.ID, delta)
		if err != nil {
			return err
		}

		amount := delta
		if amount < 0 {
			amount = -amount
		}
		if _, err := uow.GuildTransactionRepository().Record(ctx, &models.GuildTransaction{
			TreasuryID:     treasury.ID,
			Type:           txnType,
			SandAmount:     amount,
			Description:    description,
			AdminID:        &adminID,
			AdminUsername:  &adminUsername,
			TargetID:       targetID,
			TargetUsername: targetUsername,
		}); err != nil {
			return err
		}

		status, err = s.buildStatus(ctx, uow, 5)
		if err != nil {
			return err
		}

		uow.EventBus().Publish(events.TreasuryChangeEvent{
			TreasuryID: treasury.ID,
			GuildName:  s.guildName,
			SandAmount: delta,
			NewTotal:   newTotal,
			AdminID:    adminID,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}

func (s *treasuryService) buildStatus(ctx context.Context, uow UnitOfWork, limit int) (*models.TreasuryStatus, error) {
	treasury, err := uow.GuildTreasuryRepository().GetOrCreate(ctx, s.guildName)
	if err != nil {
		return nil, err
	}

	rate, err := uow.SettingRepository().GetSandPerMelange(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion rate: %w", err)
	}

	recent, err := uow.GuildTransactionRepository().GetRecent(ctx, treasury.ID, limit)
	if err != nil {
		return nil, err
	}

	melange, _, err := calculator.Convert(treasury.TotalSand, rate)
	if err != nil {
		return nil, err
	}

	return &models.TreasuryStatus{
		GuildName:      treasury.GuildName,
		TotalSand:      treasury.TotalSand,
		Melange:        melange,
		SandPerMelange: rate,
		Recent:         recent,
	}, nil
}

// Reconcile verifies the stored treasury balance matches the sum of its
// audit trail
func (s *treasuryService) Reconcile(ctx context.Context) error {
	return execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		treasury, err := uow.GuildTreasuryRepository().GetOrCreate(ctx, s.guildName)
		if err != nil {
			return err
		}

		net, err := uow.GuildTransactionRepository().NetTotal(ctx, treasury.ID)
		if err != nil {
			return err
		}

		if net != treasury.TotalSand {
			return apperr.Consistencyf("treasury balance %d does not match audit trail sum %d", treasury.TotalSand, net)
		}

		return nil
	})
}
