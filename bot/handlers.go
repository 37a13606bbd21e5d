package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lolbot/pkg/messages"
	"lolbot/riot"
	"lolbot/riot/regions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Default and bounds for the user-facing arguments, validated before any
// network call happens.
const (
	defaultHistoryCount = 5
	maxHistoryCount     = 20
	maxMatchIndex       = 100
)

// handleInteraction dispatches a slash command to its handler.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	b.logCommand(i)

	switch data.Name {
	case "match":
		b.handleMatch(s, i)
	case "profile":
		b.handleProfile(s, i)
	case "history":
		b.handleHistory(s, i)
	case "help":
		b.handleHelp(s, i)
	}
}

// Record who ran what, for the audit log.
func (b *Bot) logCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	options := make([]string, 0, len(data.Options))
	for _, option := range data.Options {
		options = append(options, fmt.Sprint(option.Value))
	}

	user := "unknown"
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User.String()
	} else if i.User != nil {
		user = i.User.String()
	}

	b.audit.CommandLog(data.Name, strings.Join(options, " "), user, i.GuildID, i.ChannelID)
	log.Infof("command [%s] with options [%s] from [%s]", data.Name, strings.Join(options, " "), user)
}

// Pull the options into a name -> option map.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	mapped := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, option := range options {
		mapped[option.Name] = option
	}
	return mapped
}

// Resolve the server option through the display name table, falling back to
// the configured default.
func (b *Bot) resolveServer(options map[string]*discordgo.ApplicationCommandInteractionDataOption) (regions.Platform, error) {
	display := b.defaultServer
	if option, ok := options["server"]; ok {
		display = option.StringValue()
	}
	return regions.Resolve(display)
}

// clampHistoryCount silently clamps an out-of-range history count to the
// default before any network call.
func clampHistoryCount(count int) int {
	if count < 1 || count > maxHistoryCount {
		return defaultHistoryCount
	}
	return count
}

// validMatchIndex reports whether the 1-based match index is serviceable.
func validMatchIndex(index int) bool {
	return index >= 1 && index <= maxMatchIndex
}

func (b *Bot) handleMatch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)
	name := options["name"].StringValue()
	tag := options["tag"].StringValue()

	index := 1
	if option, ok := options["id"]; ok {
		index = int(option.IntValue())
	}
	if !validMatchIndex(index) {
		respond(s, i, messages.MatchIndexRange)
		return
	}

	platform, err := b.resolveServer(options)
	if err != nil {
		respond(s, i, serverError(err))
		return
	}

	puuid, err := b.riot.AccountPUUID(ctx, name, tag)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}
	if puuid == "" {
		respond(s, i, fmt.Sprintf(messages.AccountNotFound, name, tag))
		return
	}

	summoner, err := b.riot.SummonerByPUUID(ctx, puuid, platform)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}
	if summoner == nil {
		respond(s, i, fmt.Sprintf(messages.SummonerNotFound, name, tag))
		return
	}

	match, err := b.riot.RecentMatchInfo(ctx, puuid, platform, index-1)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}
	if match == nil {
		respond(s, i, messages.MatchNotFound)
		return
	}

	respondEmbed(s, i, b.matchEmbed(match, puuid))
}

func (b *Bot) handleProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)
	name := options["name"].StringValue()
	tag := options["tag"].StringValue()

	platform, err := b.resolveServer(options)
	if err != nil {
		respond(s, i, serverError(err))
		return
	}

	puuid, err := b.riot.AccountPUUID(ctx, name, tag)
	if err != nil {
		respondInternalError(s, i, err)
		return
	}
	if puuid == "" {
		respond(s, i, fmt.Sprintf(messages.AccountNotFound, name, tag))
		return
	}

	user, err := b.riot.ProfileInfo(ctx, puuid, platform)
	if err != nil {
		if errors.Is(err, riot.ErrSummonerNotFound) {
			respond(s, i, fmt.Sprintf(messages.SummonerNotFound, name, tag))
			return
		}
		respondInternalError(s, i, err)
		return
	}

	respondEmbed(s, i, b.profileEmbed(user))
}

func (b *Bot) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	options := optionMap(i)
	name := options["name"].StringValue()
	tag := options["tag"].StringValue()

	count := defaultHistoryCount
	if option, ok := options["count"]; ok {
		count = int(option.IntValue())
	}
	count = clampHistoryCount(count)

	platform, err := b.resolveServer(options)
	if err != nil {
		respond(s, i, serverError(err))
		return
	}

	// Resolving a whole history takes a while, defer the reply.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		log.Errorf("couldn't defer the history reply: %v", err)
		return
	}

	puuid, err := b.riot.AccountPUUID(ctx, name, tag)
	if err != nil {
		followUpInternalError(s, i, err)
		return
	}
	if puuid == "" {
		followUp(s, i, fmt.Sprintf(messages.AccountNotFound, name, tag))
		return
	}

	matches, summoner, err := b.riot.RecentMatchesInfos(ctx, puuid, platform, count)
	if err != nil {
		followUpInternalError(s, i, err)
		return
	}
	if len(matches) == 0 || summoner == nil {
		followUp(s, i, fmt.Sprintf(messages.NoMatchHistory, name, tag))
		return
	}

	nameTag, err := b.riot.NameTagByPUUID(ctx, puuid)
	if err != nil {
		followUpInternalError(s, i, err)
		return
	}

	followUpEmbed(s, i, b.historyEmbed(matches, summoner, nameTag))
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEmbed(s, i, b.helpEmbed())
}

// Render the unknown-server error with the valid names.
func serverError(err error) string {
	return strings.ToUpper(err.Error()[:1]) + err.Error()[1:]
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.Errorf("couldn't send the reply: %v", err)
	}
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		log.Errorf("couldn't send the embed reply: %v", err)
	}
}

func respondInternalError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	log.Errorf("command failed: %v", err)
	respond(s, i, "Something went wrong, try again later.")
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: content})
	if err != nil {
		log.Errorf("couldn't send the follow-up: %v", err)
	}
}

func followUpEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}})
	if err != nil {
		log.Errorf("couldn't send the follow-up embed: %v", err)
	}
}

func followUpInternalError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	log.Errorf("command failed: %v", err)
	followUp(s, i, "Something went wrong, try again later.")
}
