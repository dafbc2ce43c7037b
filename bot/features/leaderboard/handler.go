package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
)

var rankMedals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	entries, err := f.ledgerService.GetLeaderboard(ctx, f.limit)
	if err != nil {
		common.HandleServiceError(s, i, err)
		return
	}

	if len(entries) == 0 {
		common.RespondWithMessage(s, i, "No harvests recorded yet. Be the first with `/harvest`!")
		return
	}

	var body strings.Builder
	for _, entry := range entries {
		medal, ok := rankMedals[entry.Rank]
		if !ok {
			medal = fmt.Sprintf("`#%d`", entry.Rank)
		}
		body.WriteString(fmt.Sprintf("%s **%s**: %s melange (%s sand)\n",
			medal, entry.Username,
			common.FormatAmount(entry.TotalMelange),
			common.FormatAmount(entry.TotalSand)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Melange Leaderboard",
		Description: body.String(),
		Color:       0xFFD700,
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}
