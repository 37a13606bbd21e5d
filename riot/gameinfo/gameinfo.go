package gameinfo

import (
	"math"
	"strconv"
	"strings"

	tiervalues "lolbot/pkg/riotvalues/tier"
)

// Games shorter than this are administratively voided upstream and count as
// remakes no matter who "won".
const RemakeThreshold = 300

// Team labels derived from the upstream team id.
const (
	TeamBlue = "Blue"
	TeamRed  = "Red"
)

// Outcome of a match relative to one participant.
type Outcome string

const (
	OutcomeVictory Outcome = "VICTORY"
	OutcomeDefeat  Outcome = "DEFEAT"
	OutcomeRemake  Outcome = "REMAKE"
)

// NameTag is the user-facing name#tag identity pair.
type NameTag struct {
	Name string
	Tag  string
}

func (n NameTag) String() string {
	return n.Name + "#" + n.Tag
}

// PlayerInfo is one participant of a completed match.
// The NameTag is nil unless the resolution chain was asked to load it,
// bulk views skip that round-trip on purpose.
type PlayerInfo struct {
	Puuid        string
	NameTag      *NameTag
	Kills        int
	Deaths       int
	Assists      int
	ChampionName string
	ChampionID   int64
	Gold         int
	Damage       int
	CreepScore   int
	VisionScore  int
	Team         string
	Multikills   [4]int
	Position     string
}

// KDA renders the kill/death/assist ratio, "Perfect" for a deathless game.
func (p *PlayerInfo) KDA() string {
	if p.Deaths == 0 {
		return "Perfect"
	}
	return FormatRatio(float64(p.Kills+p.Assists) / float64(p.Deaths))
}

// GameInfo is one completed match.
type GameInfo struct {
	ID           string
	StartTime    int64 // epoch milliseconds
	Duration     int64 // seconds
	Winner       string
	Participants []PlayerInfo
	QueueType    string
}

// IsRemake reports whether the match was voided before the five minute mark.
// A game of exactly 300 seconds is scored normally.
func (g *GameInfo) IsRemake() bool {
	return g.Duration < RemakeThreshold
}

// Outcome classifies the match for the given participant.
func (g *GameInfo) Outcome(puuid string) Outcome {
	if g.IsRemake() {
		return OutcomeRemake
	}
	for i := range g.Participants {
		if g.Participants[i].Puuid == puuid && g.Participants[i].Team == g.Winner {
			return OutcomeVictory
		}
	}
	return OutcomeDefeat
}

// ParticipantByPuuid returns the participant with the given puuid, or nil.
func (g *GameInfo) ParticipantByPuuid(puuid string) *PlayerInfo {
	for i := range g.Participants {
		if g.Participants[i].Puuid == puuid {
			return &g.Participants[i]
		}
	}
	return nil
}

// TeamKills sums the kills per team label.
func (g *GameInfo) TeamKills() (blue int, red int) {
	for i := range g.Participants {
		if g.Participants[i].Team == TeamBlue {
			blue += g.Participants[i].Kills
		} else {
			red += g.Participants[i].Kills
		}
	}
	return blue, red
}

// MaxMultikillTier returns the highest multikill tier anyone achieved
// (0=double .. 3=penta), or -1 when nobody got one. A player's multikill is
// only worth annotating when nobody in the game got a higher one.
func (g *GameInfo) MaxMultikillTier() int {
	max := -1
	for i := range g.Participants {
		for tier := 0; tier < 4; tier++ {
			if g.Participants[i].Multikills[tier] > 0 && tier > max {
				max = tier
			}
		}
	}
	return max
}

// TopDamageIndex returns the index of the participant with the highest
// damage, -1 for an empty match. Ties keep the first participant in upstream
// order, the scan uses a strict greater-than update.
func (g *GameInfo) TopDamageIndex() int {
	top := -1
	for i := range g.Participants {
		if top == -1 || g.Participants[i].Damage > g.Participants[top].Damage {
			top = i
		}
	}
	return top
}

// MasteryChamp is one [champion, level, points] mastery triple.
type MasteryChamp struct {
	ChampionID int64
	Level      int
	Points     int
	LastPlay   int64
}

// RankEntry is one normalized row of the ranked endpoint.
type RankEntry struct {
	Queue    string
	Tier     string
	Division string
	LP       int
	Wins     int
	Losses   int
}

// UserInfo is a profile snapshot assembled fresh per request.
type UserInfo struct {
	Puuid        string
	NameTag      *NameTag
	Level        int
	Icon         int
	RankSolo     string
	RankFlex     string
	LPSolo       int
	LPFlex       int
	WinsSolo     int
	LossesSolo   int
	WinsFlex     int
	LossesFlex   int
	MaxDivision  string
	TopChamps    []MasteryChamp
	TotalPoints  int
	TotalMastery int
}

// MaxDivision scans the ranked rows and keeps the tier with the highest
// weight, UNRANKED floor. Ties keep the first-seen tier at that weight.
func MaxDivision(ranks []RankEntry) string {
	max := tiervalues.Unranked
	for _, rank := range ranks {
		tier := strings.ToUpper(rank.Tier)
		if tiervalues.WeightOf(tier) > tiervalues.WeightOf(max) {
			max = tier
		}
	}
	return max
}

// CSPerMinute computes the creep score per minute rounded to two decimals.
// Undefined for zero-length games.
func CSPerMinute(creepScore int, duration int64) (float64, bool) {
	if duration == 0 {
		return 0, false
	}
	minutes := float64(duration) / 60.0
	ratio := float64(creepScore) / minutes
	return round2(ratio), true
}

// WinRate renders the win percentage, omitted entirely when no games were
// played so there is nothing to divide by.
func WinRate(wins int, losses int) (string, bool) {
	games := wins + losses
	if games == 0 {
		return "", false
	}
	rate := float64(wins) / float64(games) * 100
	return FormatRatio(rate) + "% WR", true
}

// FormatDuration renders seconds as MM:SS.
func FormatDuration(seconds int64) string {
	m := seconds / 60
	s := seconds % 60
	return pad2(m) + ":" + pad2(s)
}

// FormatRatio renders a value rounded to two decimals, keeping at least one
// decimal place: 4 -> "4.0", 4.25 -> "4.25", 4.30 -> "4.3".
func FormatRatio(value float64) string {
	s := strconv.FormatFloat(round2(value), 'f', 2, 64)
	if strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
