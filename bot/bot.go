package bot

import (
	"fmt"

	"lolbot/pkg/logger"
	"lolbot/riot"
	"lolbot/riot/assets"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Bot manages the Discord session and dispatches the slash commands into the
// resolution chain.
type Bot struct {
	session       *discordgo.Session
	riot          *riot.Client
	champions     *assets.ChampionStore
	audit         *logger.AuditLogger
	defaultServer string
}

// New creates the bot, opens the gateway connection and registers the
// slash commands.
func New(token string, riotClient *riot.Client, champions *assets.ChampionStore, audit *logger.AuditLogger, defaultServer string) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		session:       dg,
		riot:          riotClient,
		champions:     champions,
		audit:         audit,
		defaultServer: defaultServer,
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleInteraction)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Set the presence once the gateway is up.
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Infof("logged in as %s (ID: %s)", r.User.String(), r.User.ID)
	if err := s.UpdateGameStatus(0, "League of Legends"); err != nil {
		log.Warnf("couldn't update the presence: %v", err)
	}
}

// Close gracefully shuts down the bot.
func (b *Bot) Close() error {
	return b.session.Close()
}
