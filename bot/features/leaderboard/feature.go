package leaderboard

import (
	"github.com/bwmarrin/discordgo"

	"spicetracker/service"
)

type Feature struct {
	ledgerService service.LedgerService
	limit         int
}

func New(ledgerService service.LedgerService, limit int) *Feature {
	return &Feature{
		ledgerService: ledgerService,
		limit:         limit,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLeaderboard(s, i)
}
