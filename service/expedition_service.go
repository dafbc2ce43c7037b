package service

import (
	"context"
	"fmt"

	"spicetracker/apperr"
	"spicetracker/calculator"
	"spicetracker/events"
	"spicetracker/models"
)

type expeditionService struct {
	uowFactory UnitOfWorkFactory
	guildName  string
}

// NewExpeditionService creates a new expedition service
func NewExpeditionService(uowFactory UnitOfWorkFactory, guildName string) ExpeditionService {
	return &expeditionService{
		uowFactory: uowFactory,
		guildName:  guildName,
	}
}

// RunExpedition splits totalSand between the guild, the harvester, and the
// participants, credits every share, and records the expedition with its
// treasury audit row. The whole split commits atomically or not at all.
func (s *expeditionService) RunExpedition(ctx context.Context, params ExpeditionParams) (*models.ExpeditionResult, error) {
	if params.TotalSand <= 0 {
		return nil, apperr.InvalidInputf("total sand must be positive, got %d", params.TotalSand)
	}
	if len(params.Participants) == 0 {
		return nil, apperr.InvalidInputf("expedition needs at least one participant")
	}

	seen := make(map[int64]bool, len(params.Participants))
	for _, p := range params.Participants {
		if seen[p.DiscordID] {
			return nil, apperr.InvalidInputf("participant %d listed more than once", p.DiscordID)
		}
		seen[p.DiscordID] = true
	}

	var result *models.ExpeditionResult
	err := execInTx(ctx, s.uowFactory, func(uow UnitOfWork) error {
		rate, err := uow.SettingRepository().GetSandPerMelange(ctx)
		if err != nil {
			return fmt.Errorf("failed to get conversion rate: %w", err)
		}

		split, err := calculator.ComputeSplit(params.TotalSand, len(params.Participants), params.HarvesterCutPct, params.GuildCutPct, rate)
		if err != nil {
			return err
		}
		if !split.Reconciles() {
			return apperr.Consistencyf("split of %d sand does not reconcile", params.TotalSand)
		}

		// Credit the harvester first so the user row exists for the
		// expedition's foreign key
		_, harvesterMelange, err := creditWithRefine(ctx, uow, params.HarvesterID, params.HarvesterUsername, split.HarvesterSand, rate)
		if err != nil {
			return err
		}

		exp, err := uow.ExpeditionRepository().Create(ctx, &models.Expedition{
			HarvesterID:      params.HarvesterID,
			TotalSand:        split.TotalSand,
			GuildSand:        split.GuildSand,
			HarvesterSand:    split.HarvesterSand,
			SandPerUser:      split.PerParticipantSand,
			UnallocatedSand:  split.UnallocatedSand,
			HarvesterCutPct:  params.HarvesterCutPct,
			GuildCutPct:      params.GuildCutPct,
			SandPerMelange:   rate,
			ParticipantCount: split.ParticipantCount,
		})
		if err != nil {
			return err
		}

		if err := uow.ExpeditionRepository().AddParticipant(ctx, exp.ID, params.HarvesterID, split.HarvesterSand, true); err != nil {
			return err
		}

		shares := []models.ExpeditionShare{{
			DiscordID:   params.HarvesterID,
			SandAmount:  split.HarvesterSand,
			NewMelange:  harvesterMelange,
			IsHarvester: true,
		}}

		for _, p := range params.Participants {
			_, newMelange, err := creditWithRefine(ctx, uow, p.DiscordID, p.Username, split.PerParticipantSand, rate)
			if err != nil {
				return err
			}
			if err := uow.ExpeditionRepository().AddParticipant(ctx, exp.ID, p.DiscordID, split.PerParticipantSand, false); err != nil {
				return err
			}
			shares = append(shares, models.ExpeditionShare{
				DiscordID:  p.DiscordID,
				SandAmount: split.PerParticipantSand,
				NewMelange: newMelange,
			})
		}

		if split.GuildSand > 0 {
			treasury, err := uow.GuildTreasuryRepository().GetOrCreate(ctx, s.guildName)
			if err != nil {
				return err
			}
			if _, err := uow.GuildTreasuryRepository().Credit(ctx, treasury.ID, split.GuildSand); err != nil {
				return err
			}
			if _, err := uow.GuildTransactionRepository().Record(ctx, &models.GuildTransaction{
				TreasuryID:     treasury.ID,
				Type:           models.TransactionTypeDeposit,
				SandAmount:     split.GuildSand,
				Description:    fmt.Sprintf("Guild cut from expedition led by %s", params.HarvesterUsername),
				TargetID:       &params.HarvesterID,
				TargetUsername: &params.HarvesterUsername,
				ExpeditionID:   &exp.ID,
			}); err != nil {
				return err
			}
		}

		result = &models.ExpeditionResult{
			ExpeditionID:    exp.ID,
			TotalSand:       split.TotalSand,
			GuildSand:       split.GuildSand,
			HarvesterSand:   split.HarvesterSand,
			SandPerUser:     split.PerParticipantSand,
			UnallocatedSand: split.UnallocatedSand,
			SandPerMelange:  rate,
			Shares:          shares,
		}

		uow.EventBus().Publish(events.ExpeditionCompletedEvent{
			ExpeditionID:     exp.ID,
			HarvesterID:      params.HarvesterID,
			TotalSand:        split.TotalSand,
			GuildSand:        split.GuildSand,
			ParticipantCount: split.ParticipantCount,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
