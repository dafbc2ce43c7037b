package treasury

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
	"spicetracker/models"
)

const historyLimit = 5

func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	status, err := f.treasuryService.GetTreasury(ctx, historyLimit)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	if err := common.RespondWithEmbed(s, i, buildTreasuryEmbed(status), false); err != nil {
		log.Errorf("Error responding to treasury view: %v", err)
	}
}

func (f *Feature) handleDeposit(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	amount, description := parseAdjustment(options)

	adminID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	status, err := f.treasuryService.Deposit(ctx, adminID, i.Member.User.Username, common.IsAdmin(i), amount, description)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	message := fmt.Sprintf("Deposited **%s sand** into the treasury. New balance: **%s sand**.",
		common.FormatAmount(amount), common.FormatAmount(status.TotalSand))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to treasury deposit: %v", err)
	}
}

func (f *Feature) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	amount, description := parseAdjustment(options)

	var targetID *int64
	var targetUsername *string
	for _, opt := range options {
		if opt.Name == "user" {
			target := opt.UserValue(s)
			if id, err := common.ParseUserID(target.ID); err == nil {
				targetID = &id
				targetUsername = &target.Username
			}
		}
	}

	adminID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	status, err := f.treasuryService.Withdraw(ctx, adminID, i.Member.User.Username, common.IsAdmin(i), amount, description, targetID, targetUsername)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	message := fmt.Sprintf("Withdrew **%s sand** from the treasury. New balance: **%s sand**.",
		common.FormatAmount(amount), common.FormatAmount(status.TotalSand))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to treasury withdraw: %v", err)
	}
}

func parseAdjustment(options []*discordgo.ApplicationCommandInteractionDataOption) (amount int64, description string) {
	for _, opt := range options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "reason":
			description = opt.StringValue()
		}
	}
	return amount, description
}

func buildTreasuryEmbed(status *models.TreasuryStatus) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🏛️ %s Treasury", status.GuildName),
		Color: 0x8B4513,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Sand Reserve", Value: common.FormatAmount(status.TotalSand), Inline: true},
			{Name: "Melange Equivalent", Value: common.FormatAmount(status.Melange), Inline: true},
			{Name: "Conversion Rate", Value: fmt.Sprintf("%s sand per melange", common.FormatAmount(status.SandPerMelange)), Inline: true},
		},
	}

	if len(status.Recent) > 0 {
		var history strings.Builder
		for _, txn := range status.Recent {
			sign := "+"
			if txn.Type == models.TransactionTypeWithdrawal {
				sign = "-"
			}
			line := fmt.Sprintf("%s%s sand", sign, common.FormatAmount(txn.SandAmount))
			if txn.Description != "" {
				line += " · " + txn.Description
			}
			line += " · " + common.FormatDiscordTimestamp(txn.CreatedAt, "R")
			history.WriteString(line + "\n")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Recent Activity",
			Value: history.String(),
		})
	}

	return embed
}
