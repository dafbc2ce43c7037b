package treasury

import (
	"github.com/bwmarrin/discordgo"

	"spicetracker/bot/common"
	"spicetracker/service"
)

type Feature struct {
	treasuryService service.TreasuryService
}

func New(treasuryService service.TreasuryService) *Feature {
	return &Feature{
		treasuryService: treasuryService,
	}
}

// HandleCommand handles the /treasury command and its subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: view, deposit, or withdraw")
		return
	}

	switch options[0].Name {
	case "view":
		f.handleView(s, i)
	case "deposit":
		f.handleDeposit(s, i, options[0].Options)
	case "withdraw":
		f.handleWithdraw(s, i, options[0].Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
