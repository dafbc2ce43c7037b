package refinery

import (
	"github.com/bwmarrin/discordgo"

	"spicetracker/service"
)

type Feature struct {
	ledgerService service.LedgerService
}

func New(ledgerService service.LedgerService) *Feature {
	return &Feature{
		ledgerService: ledgerService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRefinery(s, i)
}
