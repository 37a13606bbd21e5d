package bot

import (
	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord.
func (b *Bot) registerCommands() error {
	serverOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "server",
		Description: "Game server (default " + b.defaultServer + ")",
		Required:    false,
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "match",
			Description: "Shows n-th last match of a player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Riot account name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tag",
					Description: "Riot account tag",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Which match to show, 1 is the latest (1-100)",
					Required:    false,
				},
				serverOption,
			},
		},
		{
			Name:        "profile",
			Description: "Shows profile of a player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Riot account name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tag",
					Description: "Riot account tag",
					Required:    true,
				},
				serverOption,
			},
		},
		{
			Name:        "history",
			Description: "Shows last n matches of a player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Riot account name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tag",
					Description: "Riot account tag",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many matches to show (1-20, default 5)",
					Required:    false,
				},
				serverOption,
			},
		},
		{
			Name:        "help",
			Description: "Shows the available commands and servers",
		},
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commands)
	return err
}
