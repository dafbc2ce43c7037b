package split

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
	"spicetracker/models"
	"spicetracker/service"
)

// Matches user mentions in both plain and nickname form
var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

func (f *Feature) handleSplit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var totalSand int64
	var usersRaw string
	harvesterCut := 0.0
	guildCut := f.defaultGuildCut

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "sand":
			totalSand = opt.IntValue()
		case "users":
			usersRaw = opt.StringValue()
		case "harvester_cut":
			harvesterCut = opt.FloatValue()
		case "guild_cut":
			guildCut = opt.FloatValue()
		}
	}

	harvesterID, err := common.ParseUserID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	participants, err := parseParticipants(s, i.GuildID, usersRaw)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	result, err := f.expeditionService.RunExpedition(ctx, service.ExpeditionParams{
		HarvesterID:       harvesterID,
		HarvesterUsername: i.Member.User.Username,
		TotalSand:         totalSand,
		HarvesterCutPct:   harvesterCut,
		GuildCutPct:       guildCut,
		Participants:      participants,
	})
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	embed := buildResultEmbed(result, harvesterCut, guildCut)
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to split command: %v", err)
	}
}

// parseParticipants extracts the mentioned users, deduplicated in mention
// order
func parseParticipants(s *discordgo.Session, guildID, raw string) ([]service.ExpeditionMember, error) {
	matches := mentionPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("mention at least one participant, e.g. @user1 @user2")
	}

	seen := make(map[int64]bool, len(matches))
	members := make([]service.ExpeditionMember, 0, len(matches))
	for _, match := range matches {
		id, err := common.ParseUserID(match[1])
		if err != nil {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, service.ExpeditionMember{
			DiscordID: id,
			Username:  common.GetDisplayName(s, guildID, match[1]),
		})
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("no valid participants mentioned")
	}

	return members, nil
}

func buildResultEmbed(result *models.ExpeditionResult, harvesterCut, guildCut float64) *discordgo.MessageEmbed {
	var body strings.Builder
	body.WriteString(fmt.Sprintf("Total haul: **%s sand**\n", common.FormatAmount(result.TotalSand)))
	if result.GuildSand > 0 {
		body.WriteString(fmt.Sprintf("Guild cut (%.4g%%): **%s sand**\n", guildCut, common.FormatAmount(result.GuildSand)))
	}
	if result.HarvesterSand > 0 {
		body.WriteString(fmt.Sprintf("Harvester bonus (%.4g%%): **%s sand**\n", harvesterCut, common.FormatAmount(result.HarvesterSand)))
	}
	body.WriteString(fmt.Sprintf("Each participant: **%s sand**\n", common.FormatAmount(result.SandPerUser)))
	if result.UnallocatedSand > 0 {
		body.WriteString(fmt.Sprintf("Unallocated remainder: **%s sand**\n", common.FormatAmount(result.UnallocatedSand)))
	}

	body.WriteString("\n**Shares**\n")
	for _, share := range result.Shares {
		label := ""
		if share.IsHarvester {
			label = " (harvester)"
		}
		line := fmt.Sprintf("%s%s: %s sand", common.GetUserMention(share.DiscordID), label, common.FormatAmount(share.SandAmount))
		if share.NewMelange > 0 {
			line += fmt.Sprintf(" (refined %s melange)", common.FormatAmount(share.NewMelange))
		}
		body.WriteString(line + "\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "⛏️ Expedition Split",
		Description: body.String(),
		Color:       0xC2B280,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Expedition #%d · %d sand per melange", result.ExpeditionID, result.SandPerMelange),
		},
	}
}
