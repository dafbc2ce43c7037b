package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/apperr"
)

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// HandleServiceError logs err and responds with a message matching its
// class. Validation failures echo their constraint to the user; storage and
// consistency failures get a generic message.
func HandleServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	log.WithFields(log.Fields{
		"user_id": i.Member.User.ID,
		"command": i.ApplicationCommandData().Name,
		"error":   err.Error(),
	}).Error("Command failed")

	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		RespondWithError(s, i, err.Error())
	case errors.Is(err, apperr.ErrConsistency):
		RespondWithError(s, i, "The books don't balance. An admin has been notified.")
	default:
		RespondWithError(s, i, "Something went wrong. Please try again later.")
	}
}
