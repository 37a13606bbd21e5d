package bot

import (
	"testing"

	"lolbot/riot"
	"lolbot/riot/assets"
	"lolbot/riot/gameinfo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *gameinfo.GameInfo {
	return &gameinfo.GameInfo{
		ID:        "EUN1_42",
		StartTime: 1700000000000,
		Duration:  1865,
		Winner:    gameinfo.TeamBlue,
		QueueType: "Ranked Solo/Duo",
		Participants: []gameinfo.PlayerInfo{
			{
				Puuid:        "p1",
				NameTag:      &gameinfo.NameTag{Name: "Player", Tag: "EUW"},
				Kills:        4,
				Deaths:       2,
				Assists:      6,
				ChampionName: "MissFortune",
				Damage:       20000,
				CreepScore:   162,
				Team:         gameinfo.TeamBlue,
			},
			{
				Puuid:        "p2",
				NameTag:      &gameinfo.NameTag{Name: "Rival", Tag: "EUNE"},
				Kills:        10,
				Deaths:       1,
				Assists:      2,
				ChampionName: "Ahri",
				Damage:       31000,
				CreepScore:   200,
				Team:         gameinfo.TeamRed,
			},
		},
	}
}

func TestMatchEmbedVictoryTitle(t *testing.T) {
	b := &Bot{}
	embed := b.matchEmbed(testGame(), "p1")

	assert.Equal(t, "VICTORY - BLUE TEAM WINS", embed.Title)
	assert.Equal(t, colorVictory, embed.Color)

	embed = b.matchEmbed(testGame(), "p2")
	assert.Equal(t, "DEFEAT - BLUE TEAM WINS", embed.Title)
	assert.Equal(t, colorDefeat, embed.Color)
}

func TestMatchEmbedRemake(t *testing.T) {
	game := testGame()
	game.Duration = 250

	b := &Bot{}
	embed := b.matchEmbed(game, "p1")

	assert.Equal(t, "REMAKE", embed.Title)
	assert.Equal(t, colorRemake, embed.Color)
}

func TestMatchEmbedHighlightsTheRequestedPlayer(t *testing.T) {
	b := &Bot{}
	embed := b.matchEmbed(testGame(), "p1")

	// First field is the blue team header, player rows follow.
	require.True(t, len(embed.Fields) >= 3)
	assert.Contains(t, embed.Fields[1].Name, ":green_heart:")
	assert.NotContains(t, embed.Fields[2].Name, ":green_heart:")
}

func TestMatchEmbedStarsTheFirstTopDamageOnly(t *testing.T) {
	game := testGame()
	game.Participants[0].Damage = 31000 // ties with p2

	b := &Bot{}
	embed := b.matchEmbed(game, "p1")

	assert.Contains(t, embed.Fields[1].Value, "★")
	assert.NotContains(t, embed.Fields[2].Value, "★")
}

func TestMatchEmbedAnnotatesOnlyTheHighestMultikill(t *testing.T) {
	game := testGame()
	game.Participants[0].Multikills = [4]int{2, 0, 0, 0}
	game.Participants[1].Multikills = [4]int{0, 0, 1, 0}

	b := &Bot{}
	embed := b.matchEmbed(game, "p1")

	// The doublekills lose to the quadra and stay silent.
	assert.NotContains(t, embed.Fields[1].Name, "Doublekill")
	assert.Contains(t, embed.Fields[2].Name, "Quadrakill:exclamation:")
}

func TestMatchEmbedRepeatedMultikillGetsACounter(t *testing.T) {
	game := testGame()
	game.Participants[1].Multikills = [4]int{0, 2, 0, 0}

	b := &Bot{}
	embed := b.matchEmbed(game, "p1")

	assert.Contains(t, embed.Fields[2].Name, "Triplekill x2")
}

func TestMatchEmbedCSLineCarriesThePerMinuteRate(t *testing.T) {
	b := &Bot{}
	embed := b.matchEmbed(testGame(), "p1")

	// 162 creeps over 1865 seconds.
	assert.Contains(t, embed.Fields[1].Value, "CS: **162 (5.21)**")
}

func TestProfileEmbed(t *testing.T) {
	b := &Bot{champions: assets.NewChampionStore("14.3.1", map[int64]string{21: "MissFortune"})}

	user := &gameinfo.UserInfo{
		NameTag:      &gameinfo.NameTag{Name: "Player", Tag: "EUW"},
		Level:        312,
		Icon:         4567,
		RankSolo:     "GOLD II",
		LPSolo:       50,
		WinsSolo:     30,
		LossesSolo:   10,
		RankFlex:     "UNRANKED",
		MaxDivision:  "GOLD",
		TotalMastery: 35,
		TotalPoints:  439000,
		TopChamps: []gameinfo.MasteryChamp{
			{ChampionID: 21, Level: 15, Points: 250000},
			{ChampionID: 9999, Level: 10, Points: 120000},
		},
	}

	embed := b.profileEmbed(user)

	assert.Equal(t, "312 level", embed.Title)
	assert.Equal(t, "Player#EUW", embed.Author.Name)
	assert.Equal(t, rankAssets["GOLD"], embed.Thumbnail.URL)

	require.True(t, len(embed.Fields) >= 5)
	assert.Equal(t, "Solo/Duo - GOLD II", embed.Fields[0].Name)
	assert.Equal(t, "50 LP, 40 games, 75.0% WR", embed.Fields[0].Value)
	assert.Equal(t, "Flex - UNRANKED", embed.Fields[1].Name)
	assert.Equal(t, "0 games", embed.Fields[1].Value, "no LP and no win rate without ranked games")
	assert.Equal(t, "Total Points: 439,000", embed.Fields[2].Value)

	assert.Equal(t, "Miss Fortune (15 lvl)", embed.Fields[3].Name)
	assert.Equal(t, "ID: 9999 (10 lvl)", embed.Fields[4].Name, "unknown champions fall back to the raw id")
}

func TestHistoryEmbed(t *testing.T) {
	b := &Bot{champions: assets.NewChampionStore("14.3.1", nil)}

	lost := testGame()
	lost.Winner = gameinfo.TeamRed
	remake := testGame()
	remake.Duration = 200

	summoner := &riot.Summoner{Puuid: "p1", ProfileIconID: 1, SummonerLevel: 200}
	nameTag := &gameinfo.NameTag{Name: "Player", Tag: "EUW"}

	embed := b.historyEmbed([]*gameinfo.GameInfo{testGame(), lost, remake}, summoner, nameTag)

	assert.Equal(t, "Last 3 Games", embed.Title)
	assert.Equal(t, "Player#EUW (200 lvl)", embed.Author.Name)

	require.Len(t, embed.Fields, 3)
	assert.Contains(t, embed.Fields[0].Name, ":blue_circle: 1")
	assert.Contains(t, embed.Fields[1].Name, ":red_circle: 2")
	assert.Contains(t, embed.Fields[2].Name, ":white_circle: 3")
	assert.Contains(t, embed.Fields[0].Name, "Miss Fortune 4/2/6")
}

func TestRankLine(t *testing.T) {
	assert.Equal(t, "50 LP, 40 games, 75.0% WR", rankLine("GOLD II", 50, 30, 10))
	assert.Equal(t, "0 games", rankLine("UNRANKED", 0, 0, 0))
	assert.Equal(t, "3 games, 100.0% WR", rankLine("UNRANKED", 0, 3, 0))
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "1,000", groupDigits(1000))
	assert.Equal(t, "439,000", groupDigits(439000))
	assert.Equal(t, "1,234,567", groupDigits(1234567))
}

func TestPlayerNameFallsBackToTheChampion(t *testing.T) {
	withTag := &gameinfo.PlayerInfo{
		NameTag:      &gameinfo.NameTag{Name: "Player", Tag: "EUW"},
		ChampionName: "MissFortune",
	}
	assert.Equal(t, "Player#EUW", playerName(withTag))

	withoutTag := &gameinfo.PlayerInfo{ChampionName: "MissFortune"}
	assert.Equal(t, "Miss Fortune", playerName(withoutTag))
}
