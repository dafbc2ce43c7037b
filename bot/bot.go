package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"spicetracker/bot/common"
	"spicetracker/bot/features/harvest"
	"spicetracker/bot/features/leaderboard"
	"spicetracker/bot/features/refinery"
	"spicetracker/bot/features/settings"
	"spicetracker/bot/features/split"
	"spicetracker/bot/features/treasury"
	"spicetracker/bot/ratelimit"
	"spicetracker/events"
	"spicetracker/service"
)

// Config holds bot configuration
type Config struct {
	Token            string
	GuildID          string
	DefaultGuildCut  float64
	LeaderboardLimit int
}

type Bot struct {
	config  Config
	session *discordgo.Session
	limiter *ratelimit.Limiter

	harvestFeature     *harvest.Feature
	splitFeature       *split.Feature
	refineryFeature    *refinery.Feature
	leaderboardFeature *leaderboard.Feature
	treasuryFeature    *treasury.Feature
	settingsFeature    *settings.Feature
}

func New(config Config, ledgerService service.LedgerService, expeditionService service.ExpeditionService, treasuryService service.TreasuryService, adminService service.AdminService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:             config,
		session:            dg,
		limiter:            ratelimit.New(),
		harvestFeature:     harvest.New(ledgerService),
		splitFeature:       split.New(expeditionService, config.DefaultGuildCut),
		refineryFeature:    refinery.New(ledgerService),
		leaderboardFeature: leaderboard.New(ledgerService, config.LeaderboardLimit),
		treasuryFeature:    treasury.New(treasuryService),
		settingsFeature:    settings.New(adminService),
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Audit log completed expeditions
	eventBus.Subscribe(events.EventTypeExpeditionCompleted, func(ctx context.Context, event events.Event) {
		if ev, ok := event.(events.ExpeditionCompletedEvent); ok {
			log.WithFields(log.Fields{
				"expeditionID": ev.ExpeditionID,
				"harvesterID":  ev.HarvesterID,
				"totalSand":    ev.TotalSand,
				"guildSand":    ev.GuildSand,
				"participants": ev.ParticipantCount,
			}).Info("Expedition recorded")
		}
	})

	eventBus.Subscribe(events.EventTypeRateChange, func(ctx context.Context, event events.Event) {
		if ev, ok := event.(events.RateChangeEvent); ok {
			log.WithFields(log.Fields{
				"oldRate": ev.OldRate,
				"newRate": ev.NewRate,
				"adminID": ev.AdminID,
			}).Info("Conversion rate changed")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) registerCommands() error {
	minOne := float64(1)

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "harvest",
			Description: "Log sand you harvested",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of sand harvested",
					Required:    true,
					MinValue:    &minOne,
				},
			},
		},
		{
			Name:        "split",
			Description: "Split an expedition haul between participants",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "sand",
					Description: "Total sand collected by the expedition",
					Required:    true,
					MinValue:    &minOne,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "users",
					Description: "Mention every participant, e.g. @user1 @user2",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "harvester_cut",
					Description: "Harvester bonus percentage (0-100)",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "guild_cut",
					Description: "Guild cut percentage (0-100), defaults to the configured cut",
					Required:    false,
				},
			},
		},
		{
			Name:        "refinery",
			Description: "Check refining progress",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to inspect (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the top melange producers",
		},
		{
			Name:        "treasury",
			Description: "Guild treasury operations",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show the treasury balance and recent activity",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "deposit",
					Description: "Deposit sand into the treasury (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Amount of sand to deposit",
							Required:    true,
							MinValue:    &minOne,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "reason",
							Description: "Why the sand is being deposited",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "withdraw",
					Description: "Withdraw sand from the treasury (admin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Amount of sand to withdraw",
							Required:    true,
							MinValue:    &minOne,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "reason",
							Description: "Why the sand is being withdrawn",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Member receiving the withdrawal",
							Required:    false,
						},
					},
				},
			},
		},
		{
			Name:        "rate",
			Description: "Show the current sand-per-melange conversion rate",
		},
		{
			Name:        "setrate",
			Description: "Set the sand-per-melange conversion rate (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "rate",
					Description: "Sand required per melange",
					Required:    true,
					MinValue:    &minOne,
				},
			},
		},
		{
			Name:        "reset",
			Description: "Reset all harvest stats (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "confirm",
					Description: "Confirm that you really want to wipe all totals",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name

	if userID, err := common.ParseUserID(i.Member.User.ID); err == nil {
		if allowed, retryAfter := b.limiter.Allow(userID, name); !allowed {
			common.RespondWithError(s, i, fmt.Sprintf("Slow down! Try `/%s` again in %d seconds.", name, int(retryAfter.Seconds())+1))
			return
		}
	}

	switch name {
	case "harvest":
		b.harvestFeature.HandleCommand(s, i)
	case "split":
		b.splitFeature.HandleCommand(s, i)
	case "refinery":
		b.refineryFeature.HandleCommand(s, i)
	case "leaderboard":
		b.leaderboardFeature.HandleCommand(s, i)
	case "treasury":
		b.treasuryFeature.HandleCommand(s, i)
	case "rate":
		b.settingsFeature.HandleRate(s, i)
	case "setrate":
		b.settingsFeature.HandleSetRate(s, i)
	case "reset":
		b.settingsFeature.HandleReset(s, i)
	}
}
