package settings

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
)

func (f *Feature) handleRate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	rate, err := f.adminService.GetRate(ctx)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	common.RespondWithMessage(s, i, fmt.Sprintf("Current conversion rate: **%s sand** per melange.", common.FormatAmount(rate)))
}

func (f *Feature) handleSetRate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please provide the new rate.")
		return
	}
	rate := options[0].IntValue()

	adminID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := f.adminService.SetRate(ctx, adminID, common.IsAdmin(i), rate); err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	message := fmt.Sprintf("Conversion rate set to **%s sand** per melange. Existing melange keeps its value.", common.FormatAmount(rate))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to setrate command: %v", err)
	}
}

func (f *Feature) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	confirm := false
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "confirm" {
			confirm = opt.BoolValue()
		}
	}

	adminID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	cleared, err := f.adminService.ResetStats(ctx, adminID, common.IsAdmin(i), confirm)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	message := fmt.Sprintf("Harvest stats reset for **%d** members. Treasury and audit history are untouched.", cleared)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to reset command: %v", err)
	}
}
