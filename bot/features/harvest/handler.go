package harvest

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
)

func (f *Feature) handleHarvest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please provide the amount of sand you harvested.")
		return
	}
	amount := options[0].IntValue()

	discordID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.ledgerService.LogDeposit(ctx, discordID, i.Member.User.Username, amount)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	message := displayName + ": " + common.FormatDeposit(
		result.SandDeposited,
		result.NewMelange,
		result.LeftoverSand,
		result.SandPerMelange-result.LeftoverSand,
	)
	common.RespondWithMessage(s, i, message)
}
