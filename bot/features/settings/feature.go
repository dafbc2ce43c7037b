package settings

import (
	"github.com/bwmarrin/discordgo"

	"spicetracker/service"
)

// Feature bundles the conversion-rate and reset commands
type Feature struct {
	adminService service.AdminService
}

func New(adminService service.AdminService) *Feature {
	return &Feature{
		adminService: adminService,
	}
}

// HandleRate handles the /rate command
func (f *Feature) HandleRate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRate(s, i)
}

// HandleSetRate handles the /setrate command
func (f *Feature) HandleSetRate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSetRate(s, i)
}

// HandleReset handles the /reset command
func (f *Feature) HandleReset(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleReset(s, i)
}
