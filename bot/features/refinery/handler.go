package refinery

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
)

func (f *Feature) handleRefinery(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	// Optionally inspect another member's refinery
	targetID := i.Member.User.ID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			targetID = opt.UserValue(s).ID
		}
	}

	discordID, err := common.ParseUserID(targetID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", targetID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	status, err := f.ledgerService.GetRefinery(ctx, discordID)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, targetID)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⚗️ %s's Refinery", displayName),
		Color: 0xD2691E,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Melange", Value: common.FormatAmount(status.TotalMelange), Inline: true},
			{Name: "Lifetime Sand", Value: common.FormatAmount(status.TotalSand), Inline: true},
			{Name: "Unrefined Sand", Value: common.FormatAmount(status.LeftoverSand), Inline: true},
			{
				Name: "Next Melange",
				Value: fmt.Sprintf("%s sand to go (rate: %s sand per melange)",
					common.FormatAmount(status.SandToNext), common.FormatAmount(status.SandPerMelange)),
			},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to refinery command: %v", err)
	}
}
