package bot

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"lolbot/riot"
	"lolbot/riot/assets"
	"lolbot/riot/gameinfo"
	"lolbot/riot/regions"

	"github.com/bwmarrin/discordgo"
)

// Embed colors per outcome.
const (
	colorRemake  = 0xAFAEAE
	colorVictory = 0x53A8E8
	colorDefeat  = 0xDA2D43
)

var multikillNames = [4]string{"Doublekill", "Triplekill", "Quadrakill", "Pentakill"}

// Rank crest images per tier.
var rankAssets = map[string]string{
	"UNRANKED":    "https://cdn.discordapp.com/attachments/989905618494181386/989936020013334628/unranked.png",
	"IRON":        "https://cdn.discordapp.com/attachments/989905618494181386/989905732445036614/iron.png",
	"BRONZE":      "https://cdn.discordapp.com/attachments/989905618494181386/989905730805047356/bronze.png",
	"SILVER":      "https://cdn.discordapp.com/attachments/989905618494181386/989905733128687626/silver.png",
	"GOLD":        "https://cdn.discordapp.com/attachments/989905618494181386/989905731933311027/gold.png",
	"PLATINUM":    "https://cdn.discordapp.com/attachments/989905618494181386/989905732856053851/platinum.png",
	"EMERALD":     "https://cdn.discordapp.com/attachments/989905618494181386/1132067774584324096/emerald.png",
	"DIAMOND":     "https://cdn.discordapp.com/attachments/989905618494181386/989905731463577600/diamond.png",
	"MASTER":      "https://cdn.discordapp.com/attachments/989905618494181386/989905732654739516/master.png",
	"GRANDMASTER": "https://cdn.discordapp.com/attachments/989905618494181386/989905732176592956/grandmaster.png",
	"CHALLENGER":  "https://cdn.discordapp.com/attachments/989905618494181386/989905731186749470/challenger.png",
}

// matchEmbed renders one match with the given player highlighted.
func (b *Bot) matchEmbed(game *gameinfo.GameInfo, puuid string) *discordgo.MessageEmbed {
	blueKills, redKills := game.TeamKills()
	maxMultikill := game.MaxMultikillTier()
	topDamage := game.TopDamageIndex()
	outcome := game.Outcome(puuid)

	title := fmt.Sprintf("%s - %s TEAM WINS", outcome, strings.ToUpper(game.Winner))
	color := colorDefeat
	if outcome == gameinfo.OutcomeVictory {
		color = colorVictory
	}
	if game.IsRemake() {
		title = string(gameinfo.OutcomeRemake)
		color = colorRemake
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Description: fmt.Sprintf("Type: **%s**, Score: **%d - %d**, Time: **%s**",
			game.QueueType, blueKills, redKills, gameinfo.FormatDuration(game.Duration)),
		Color:     color,
		Timestamp: time.UnixMilli(game.StartTime).UTC().Format(time.RFC3339),
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  ":blue_circle: Blue Team",
		Value: fmt.Sprintf("Total Kills: **%d**", blueKills),
	})

	for counter, player := range game.Participants {
		if counter == 5 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  ":red_circle: Red Team",
				Value: fmt.Sprintf("Total Kills: **%d**", redKills),
			})
		}

		highlight := ""
		if player.Puuid == puuid {
			highlight = " :green_heart:"
		}

		// Only annotate a player's multikill when nobody got a higher one.
		multikill := ""
		if maxMultikill >= 0 {
			if count := player.Multikills[maxMultikill]; count > 0 {
				multikill = " " + multikillNames[maxMultikill]
				if count > 1 {
					multikill += fmt.Sprintf(" x%d", count)
				}
				if maxMultikill >= 2 {
					multikill += ":exclamation:"
				}
			}
		}

		star := ""
		if counter == topDamage {
			star = "★"
		}

		csLine := strconv.Itoa(player.CreepScore)
		if perMinute, ok := gameinfo.CSPerMinute(player.CreepScore, game.Duration); ok {
			csLine += fmt.Sprintf(" (%s)", gameinfo.FormatRatio(perMinute))
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s - %s %d/%d/%d%s%s",
				playerName(&player), assets.PrettyName(player.ChampionName),
				player.Kills, player.Deaths, player.Assists, highlight, multikill),
			Value: fmt.Sprintf("KDA: **%s**, CS: **%s**, %sDMG: **%d**, GOLD: **%d**",
				player.KDA(), csLine, star, player.Damage, player.Gold),
		})
	}

	return embed
}

// profileEmbed renders a profile snapshot.
func (b *Bot) profileEmbed(user *gameinfo.UserInfo) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%d level", user.Level),
		Color: rand.Intn(0xFFFFFF + 1),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    nameTagString(user.NameTag),
			IconURL: b.champions.IconURL(user.Icon),
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: rankAssets[user.MaxDivision],
		},
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{
			Name:   "Solo/Duo - " + user.RankSolo,
			Value:  rankLine(user.RankSolo, user.LPSolo, user.WinsSolo, user.LossesSolo),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Flex - " + user.RankFlex,
			Value:  rankLine(user.RankFlex, user.LPFlex, user.WinsFlex, user.LossesFlex),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Total Mastery: %d", user.TotalMastery),
			Value: fmt.Sprintf("Total Points: %s", groupDigits(user.TotalPoints)),
		},
	)

	for _, champion := range user.TopChamps {
		name := fmt.Sprintf("ID: %d", champion.ChampionID)
		if champName, ok := b.champions.Name(champion.ChampionID); ok {
			name = assets.PrettyName(champName)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%d lvl)", name, champion.Level),
			Value:  fmt.Sprintf("%s pts.", groupDigits(champion.Points)),
			Inline: true,
		})
	}

	return embed
}

// historyEmbed renders the recent matches of a player, one line per game.
func (b *Bot) historyEmbed(matches []*gameinfo.GameInfo, summoner *riot.Summoner, nameTag *gameinfo.NameTag) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Last %d Games", len(matches)),
		Color: rand.Intn(0xFFFFFF + 1),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("%s (%d lvl)", nameTagString(nameTag), summoner.SummonerLevel),
			IconURL: b.champions.IconURL(summoner.ProfileIconID),
		},
	}

	for i, match := range matches {
		participant := match.ParticipantByPuuid(summoner.Puuid)
		if participant == nil {
			continue
		}

		resultEmoji := ":red_circle:"
		switch match.Outcome(summoner.Puuid) {
		case gameinfo.OutcomeRemake:
			resultEmoji = ":white_circle:"
		case gameinfo.OutcomeVictory:
			resultEmoji = ":blue_circle:"
		}

		csLine := strconv.Itoa(participant.CreepScore)
		if perMinute, ok := gameinfo.CSPerMinute(participant.CreepScore, match.Duration); ok {
			csLine += fmt.Sprintf(" (%s)", gameinfo.FormatRatio(perMinute))
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s %d - %s - %s %d/%d/%d - %s",
				resultEmoji, i+1, match.QueueType, assets.PrettyName(participant.ChampionName),
				participant.Kills, participant.Deaths, participant.Assists,
				gameinfo.FormatDuration(match.Duration)),
			Value: fmt.Sprintf("KDA: **%s**, CS: **%s**, DMG: **%d**, GOLD: **%d**",
				participant.KDA(), csLine, participant.Damage, participant.Gold),
		})
	}

	return embed
}

// helpEmbed renders the command reference.
func (b *Bot) helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Help",
		Color: rand.Intn(0xFFFFFF + 1),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "/profile {name} {tag} {server?}",
				Value: "See your rank, mastery and favourite champs",
			},
			{
				Name:  "/match {name} {tag} {id?} {server?}",
				Value: "Inspect a game from your history, default last game. Use /history to get a game id.",
			},
			{
				Name:  "/history {name} {tag} {count?} {server?}",
				Value: "Check last 1-20 games of a player, default 5",
			},
			{
				Name:  fmt.Sprintf("Available game servers (default is %s)", b.defaultServer),
				Value: availableServers(),
			},
		},
	}
}

// Prefer the resolved name tag, fall back to the champion for bulk views
// where the name tags were intentionally skipped.
func playerName(player *gameinfo.PlayerInfo) string {
	if player.NameTag != nil {
		return player.NameTag.String()
	}
	return assets.PrettyName(player.ChampionName)
}

func availableServers() string {
	return strings.Join(regions.DisplayNames(), ", ")
}

func nameTagString(nameTag *gameinfo.NameTag) string {
	if nameTag == nil {
		return "Unknown"
	}
	return nameTag.String()
}

// Render the per-queue rank line, LP only when ranked, win-rate only when
// there is anything to divide by.
func rankLine(rank string, lp int, wins int, losses int) string {
	line := ""
	if rank != "UNRANKED" {
		line += fmt.Sprintf("%d LP, ", lp)
	}
	line += fmt.Sprintf("%d games", wins+losses)
	if rate, ok := gameinfo.WinRate(wins, losses); ok {
		line += ", " + rate
	}
	return line
}

// groupDigits renders an integer with thousands separators.
func groupDigits(value int) string {
	s := strconv.Itoa(value)
	if len(s) <= 3 {
		return s
	}
	grouped := ""
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped += ","
		}
		grouped += string(digit)
	}
	return grouped
}
