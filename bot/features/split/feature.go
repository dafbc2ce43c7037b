package split

import (
	"github.com/bwmarrin/discordgo"

	"spicetracker/service"
)

type Feature struct {
	expeditionService service.ExpeditionService
	defaultGuildCut   float64
}

func New(expeditionService service.ExpeditionService, defaultGuildCut float64) *Feature {
	return &Feature{
		expeditionService: expeditionService,
		defaultGuildCut:   defaultGuildCut,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSplit(s, i)
}
