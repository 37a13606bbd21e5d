package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	queuevalues "lolbot/pkg/riotvalues/queue"
	"lolbot/riot/cache"
	"lolbot/riot/gameinfo"
	"lolbot/riot/regions"
	"lolbot/riot/requests"

	log "github.com/sirupsen/logrus"
)

// Returned by the profile chain when the summoner doesn't exist on the server.
var ErrSummonerNotFound = errors.New("summoner not found")

// Cache tuning per endpoint family. Identity lookups are stable and can live
// long, match lists and ranked standings move and get a short TTL.
const (
	identityTTL       = 24 * time.Hour
	identityCacheSize = 1024
	matchTTL          = 24 * time.Hour
	defaultTTL        = 60 * time.Second
	defaultCacheSize  = 128
)

// Client resolves account, summoner, match, ranked and mastery data from the
// Riot API, memoizing every network accessor behind its own TTL cache.
type Client struct {
	exec *requests.Executor

	// https://europe.api.riotgames.com/ style regional host for account and
	// match data, and the format producing per-platform hosts for summoner,
	// league and mastery data.
	regionalURL  string
	platformURLf string

	accountCache  *cache.Cache[string]
	nametagCache  *cache.Cache[*gameinfo.NameTag]
	summonerCache *cache.Cache[*Summoner]
	matchIDsCache *cache.Cache[[]string]
	rawMatchCache *cache.Cache[*rawMatch]
	rankedCache   *cache.Cache[[]gameinfo.RankEntry]
	masteryCache  *cache.Cache[[]gameinfo.MasteryChamp]
}

// Summoner record as the platform endpoint returns it.
type Summoner struct {
	Puuid         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

// NewClient creates a client routed at the given regional host.
func NewClient(apiKey string, region regions.Region) *Client {
	return newClient(
		requests.NewExecutor(apiKey),
		fmt.Sprintf("https://%s.api.riotgames.com/", region),
		"https://%s.api.riotgames.com/",
	)
}

func newClient(exec *requests.Executor, regionalURL string, platformURLf string) *Client {
	return &Client{
		exec:          exec,
		regionalURL:   regionalURL,
		platformURLf:  platformURLf,
		accountCache:  cache.New[string](identityTTL, identityCacheSize),
		nametagCache:  cache.New[*gameinfo.NameTag](identityTTL, identityCacheSize),
		summonerCache: cache.New[*Summoner](identityTTL, identityCacheSize),
		matchIDsCache: cache.New[[]string](defaultTTL, defaultCacheSize),
		rawMatchCache: cache.New[*rawMatch](matchTTL, defaultCacheSize),
		rankedCache:   cache.New[[]gameinfo.RankEntry](defaultTTL, defaultCacheSize),
		masteryCache:  cache.New[[]gameinfo.MasteryChamp](defaultTTL, defaultCacheSize),
	}
}

// Build the per-platform host for a given server.
func (c *Client) platformURL(platform regions.Platform) string {
	return fmt.Sprintf(c.platformURLf, platform)
}

// Split a status-carrying upstream failure from a transport failure.
// Upstream failures become typed absences at the accessor, transport failures
// propagate to the caller untouched.
func asStatusError(err error) (*requests.StatusError, bool) {
	var statusErr *requests.StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// AccountPUUID resolves a riot id to its puuid, empty when the account
// doesn't exist.
func (c *Client) AccountPUUID(ctx context.Context, name string, tag string) (string, error) {
	return c.accountCache.GetOrCompute(cache.Key(name, tag), func() (string, error) {
		log.Debugf("fetching PUUID for %s#%s", name, tag)

		reqURL := c.regionalURL + "riot/account/v1/accounts/by-riot-id/" + url.PathEscape(name) + "/" + url.PathEscape(tag)
		body, _, err := c.exec.Get(ctx, reqURL, nil)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get PUUID for %s#%s, status: %d", name, tag, statusErr.Code)
				return "", nil
			}
			return "", err
		}

		var account struct {
			Puuid string `json:"puuid"`
		}
		if err := json.Unmarshal(body, &account); err != nil {
			return "", err
		}
		return account.Puuid, nil
	})
}

// NameTagByPUUID is the reverse lookup, used to label match participants.
func (c *Client) NameTagByPUUID(ctx context.Context, puuid string) (*gameinfo.NameTag, error) {
	return c.nametagCache.GetOrCompute(cache.Key(puuid), func() (*gameinfo.NameTag, error) {
		log.Debugf("fetching NameTag for PUUID %s", puuid)

		reqURL := c.regionalURL + "riot/account/v1/accounts/by-puuid/" + url.PathEscape(puuid)
		body, _, err := c.exec.Get(ctx, reqURL, nil)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get nametag for PUUID %s, status: %d", puuid, statusErr.Code)
				return nil, nil
			}
			return nil, err
		}

		var account struct {
			GameName string `json:"gameName"`
			TagLine  string `json:"tagLine"`
		}
		if err := json.Unmarshal(body, &account); err != nil {
			return nil, err
		}
		return &gameinfo.NameTag{Name: account.GameName, Tag: account.TagLine}, nil
	})
}

// SummonerByPUUID resolves the per-server summoner record, nil when the
// summoner doesn't exist on that server.
func (c *Client) SummonerByPUUID(ctx context.Context, puuid string, platform regions.Platform) (*Summoner, error) {
	return c.summonerCache.GetOrCompute(cache.Key(puuid, platform), func() (*Summoner, error) {
		log.Debugf("fetching summoner for PUUID %s on %s", puuid, platform)

		reqURL := c.platformURL(platform) + "lol/summoner/v4/summoners/by-puuid/" + url.PathEscape(puuid)
		body, _, err := c.exec.Get(ctx, reqURL, nil)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get summoner for PUUID %s on %s, status: %d", puuid, platform, statusErr.Code)
				return nil, nil
			}
			return nil, err
		}

		var summoner Summoner
		if err := json.Unmarshal(body, &summoner); err != nil {
			return nil, err
		}
		return &summoner, nil
	})
}

// MatchIDsByPUUID lists the most recent match ids, empty on upstream failure.
func (c *Client) MatchIDsByPUUID(ctx context.Context, puuid string, count int, start int) ([]string, error) {
	return c.matchIDsCache.GetOrCompute(cache.Key(puuid, count, start), func() ([]string, error) {
		log.Debugf("fetching match IDs for PUUID %s with count %d", puuid, count)

		reqURL := c.regionalURL + "lol/match/v5/matches/by-puuid/" + url.PathEscape(puuid) + "/ids"
		params := url.Values{}
		params.Set("count", strconv.Itoa(count))
		params.Set("start", strconv.Itoa(start))

		body, _, err := c.exec.Get(ctx, reqURL, params)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get match IDs for PUUID %s, status: %d", puuid, statusErr.Code)
				return []string{}, nil
			}
			return nil, err
		}

		var ids []string
		if err := json.Unmarshal(body, &ids); err != nil {
			return nil, err
		}
		return ids, nil
	})
}

// Raw match document from the match endpoint, only the fields the domain
// model normalizes.
type rawMatch struct {
	Info struct {
		GameStartTimestamp int64            `json:"gameStartTimestamp"`
		GameDuration       int64            `json:"gameDuration"`
		QueueID            int              `json:"queueId"`
		Participants       []rawParticipant `json:"participants"`
	} `json:"info"`
}

type rawParticipant struct {
	Puuid                       string `json:"puuid"`
	Kills                       int    `json:"kills"`
	Deaths                      int    `json:"deaths"`
	Assists                     int    `json:"assists"`
	ChampionName                string `json:"championName"`
	ChampionID                  int64  `json:"championId"`
	GoldEarned                  int    `json:"goldEarned"`
	TotalDamageDealtToChampions int    `json:"totalDamageDealtToChampions"`
	TotalMinionsKilled          int    `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int    `json:"neutralMinionsKilled"`
	VisionScore                 int    `json:"visionScore"`
	TeamID                      int    `json:"teamId"`
	Win                         bool   `json:"win"`
	DoubleKills                 int    `json:"doubleKills"`
	TripleKills                 int    `json:"tripleKills"`
	QuadraKills                 int    `json:"quadraKills"`
	PentaKills                  int    `json:"pentaKills"`
	IndividualPosition          string `json:"individualPosition"`
}

// Fetch one raw match document, nil when the match doesn't exist.
func (c *Client) rawMatchByID(ctx context.Context, matchID string) (*rawMatch, error) {
	return c.rawMatchCache.GetOrCompute(cache.Key(matchID), func() (*rawMatch, error) {
		log.Debugf("fetching raw match info for match ID %s", matchID)

		reqURL := c.regionalURL + "lol/match/v5/matches/" + url.PathEscape(matchID)
		body, _, err := c.exec.Get(ctx, reqURL, nil)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get match info for %s, status: %d", matchID, statusErr.Code)
				return nil, nil
			}
			return nil, err
		}

		var match rawMatch
		if err := json.Unmarshal(body, &match); err != nil {
			return nil, err
		}
		return &match, nil
	})
}

// RankedInfo lists the normalized ranked rows, empty on upstream failure.
// Rows lacking a division are skipped, those are apex-tier artifacts the
// profile view can't render.
func (c *Client) RankedInfo(ctx context.Context, puuid string, platform regions.Platform) ([]gameinfo.RankEntry, error) {
	return c.rankedCache.GetOrCompute(cache.Key(puuid, platform), func() ([]gameinfo.RankEntry, error) {
		log.Debugf("fetching ranked info for PUUID %s on %s", puuid, platform)

		reqURL := c.platformURL(platform) + "lol/league/v4/entries/by-puuid/" + url.PathEscape(puuid)
		body, _, err := c.exec.Get(ctx, reqURL, nil)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get ranked info for PUUID %s on %s, status: %d", puuid, platform, statusErr.Code)
				return []gameinfo.RankEntry{}, nil
			}
			return nil, err
		}

		var rows []struct {
			QueueType    string `json:"queueType"`
			Tier         string `json:"tier"`
			Rank         string `json:"rank"`
			LeaguePoints int    `json:"leaguePoints"`
			Wins         int    `json:"wins"`
			Losses       int    `json:"losses"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}

		ranks := make([]gameinfo.RankEntry, 0, len(rows))
		for _, row := range rows {
			if row.Rank == "" {
				continue
			}
			ranks = append(ranks, gameinfo.RankEntry{
				Queue:    row.QueueType,
				Tier:     row.Tier,
				Division: row.Rank,
				LP:       row.LeaguePoints,
				Wins:     row.Wins,
				Losses:   row.Losses,
			})
		}
		return ranks, nil
	})
}

// MasteryInfo lists the champion mastery triples in upstream order,
// empty on upstream failure.
func (c *Client) MasteryInfo(ctx context.Context, puuid string, platform regions.Platform) ([]gameinfo.MasteryChamp, error) {
	return c.masteryCache.GetOrCompute(cache.Key(puuid, platform), func() ([]gameinfo.MasteryChamp, error) {
		log.Debugf("fetching mastery info for PUUID %s on %s", puuid, platform)

		reqURL := c.platformURL(platform) + "lol/champion-mastery/v4/champion-masteries/by-puuid/" + url.PathEscape(puuid)
		body, _, err := c.exec.Get(ctx, reqURL, nil)
		if err != nil {
			if statusErr, ok := asStatusError(err); ok {
				log.Errorf("failed to get mastery info for PUUID %s on %s, status: %d", puuid, platform, statusErr.Code)
				return []gameinfo.MasteryChamp{}, nil
			}
			return nil, err
		}

		var rows []struct {
			ChampionID     int64 `json:"championId"`
			ChampionLevel  int   `json:"championLevel"`
			ChampionPoints int   `json:"championPoints"`
			LastPlayTime   int64 `json:"lastPlayTime"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, err
		}

		champions := make([]gameinfo.MasteryChamp, 0, len(rows))
		for _, row := range rows {
			champions = append(champions, gameinfo.MasteryChamp{
				ChampionID: row.ChampionID,
				Level:      row.ChampionLevel,
				Points:     row.ChampionPoints,
				LastPlay:   row.LastPlayTime,
			})
		}
		return champions, nil
	})
}

// RecentMatchesIDs resolves the summoner and lists its recent match ids.
// A missing summoner yields an empty list and a nil summoner.
func (c *Client) RecentMatchesIDs(ctx context.Context, puuid string, platform regions.Platform, count int) ([]string, *Summoner, error) {
	summoner, err := c.SummonerByPUUID(ctx, puuid, platform)
	if err != nil {
		return nil, nil, err
	}
	if summoner == nil {
		return []string{}, nil, nil
	}

	ids, err := c.MatchIDsByPUUID(ctx, summoner.Puuid, count, 0)
	if err != nil {
		return nil, nil, err
	}
	return ids, summoner, nil
}

// MatchInfoByID builds the normalized GameInfo for one match, nil when the
// match doesn't exist. Name tags cost one extra round-trip per participant
// and are only resolved when asked for, bulk views skip them.
func (c *Client) MatchInfoByID(ctx context.Context, matchID string, loadNameTags bool) (*gameinfo.GameInfo, error) {
	raw, err := c.rawMatchByID(ctx, matchID)
	if err != nil || raw == nil {
		return nil, err
	}

	winner := gameinfo.TeamBlue
	participants := make([]gameinfo.PlayerInfo, 0, len(raw.Info.Participants))
	for _, p := range raw.Info.Participants {
		var nameTag *gameinfo.NameTag
		if loadNameTags {
			nameTag, err = c.NameTagByPUUID(ctx, p.Puuid)
			if err != nil {
				return nil, err
			}
		}

		team := gameinfo.TeamRed
		if p.TeamID == 100 {
			team = gameinfo.TeamBlue
		}
		if p.Win && team == gameinfo.TeamRed {
			winner = gameinfo.TeamRed
		}

		participants = append(participants, gameinfo.PlayerInfo{
			Puuid:        p.Puuid,
			NameTag:      nameTag,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
			ChampionName: p.ChampionName,
			ChampionID:   p.ChampionID,
			Gold:         p.GoldEarned,
			Damage:       p.TotalDamageDealtToChampions,
			CreepScore:   p.TotalMinionsKilled + p.NeutralMinionsKilled,
			VisionScore:  p.VisionScore,
			Team:         team,
			Multikills:   [4]int{p.DoubleKills, p.TripleKills, p.QuadraKills, p.PentaKills},
			Position:     p.IndividualPosition,
		})
	}

	return &gameinfo.GameInfo{
		ID:           matchID,
		StartTime:    raw.Info.GameStartTimestamp,
		Duration:     raw.Info.GameDuration,
		Winner:       winner,
		Participants: participants,
		QueueType:    queuevalues.DisplayName(raw.Info.QueueID),
	}, nil
}

// RecentMatchInfo returns the detail of the index-th most recent match
// (0-based), with participant name tags resolved, or nil when the player has
// fewer matches.
func (c *Client) RecentMatchInfo(ctx context.Context, puuid string, platform regions.Platform, index int) (*gameinfo.GameInfo, error) {
	ids, _, err := c.RecentMatchesIDs(ctx, puuid, platform, index+1)
	if err != nil {
		return nil, err
	}
	if index >= len(ids) {
		return nil, nil
	}
	return c.MatchInfoByID(ctx, ids[index], true)
}

// RecentMatchesInfos resolves up to count recent matches, skipping any that
// fail to resolve, together with the summoner record for the header.
func (c *Client) RecentMatchesInfos(ctx context.Context, puuid string, platform regions.Platform, count int) ([]*gameinfo.GameInfo, *Summoner, error) {
	ids, summoner, err := c.RecentMatchesIDs(ctx, puuid, platform, count)
	if err != nil {
		return nil, nil, err
	}

	matches := make([]*gameinfo.GameInfo, 0, len(ids))
	for _, id := range ids {
		match, err := c.MatchInfoByID(ctx, id, false)
		if err != nil {
			return nil, nil, err
		}
		if match != nil {
			matches = append(matches, match)
		}
	}
	return matches, summoner, nil
}

// ProfileInfo assembles the full profile snapshot for a summoner.
// Ranked and mastery are independent branches, an upstream hiccup in one
// doesn't abort the other.
func (c *Client) ProfileInfo(ctx context.Context, puuid string, platform regions.Platform) (*gameinfo.UserInfo, error) {
	summoner, err := c.SummonerByPUUID(ctx, puuid, platform)
	if err != nil {
		return nil, err
	}
	if summoner == nil {
		return nil, ErrSummonerNotFound
	}

	nameTag, err := c.NameTagByPUUID(ctx, summoner.Puuid)
	if err != nil {
		return nil, err
	}

	ranks, err := c.RankedInfo(ctx, summoner.Puuid, platform)
	if err != nil {
		return nil, err
	}

	user := &gameinfo.UserInfo{
		Puuid:       summoner.Puuid,
		NameTag:     nameTag,
		Level:       summoner.SummonerLevel,
		Icon:        summoner.ProfileIconID,
		RankSolo:    "UNRANKED",
		RankFlex:    "UNRANKED",
		MaxDivision: gameinfo.MaxDivision(ranks),
	}
	for _, rank := range ranks {
		switch rank.Queue {
		case queuevalues.RankedSolo:
			user.RankSolo = rank.Tier + " " + rank.Division
			user.LPSolo = rank.LP
			user.WinsSolo = rank.Wins
			user.LossesSolo = rank.Losses
		case queuevalues.RankedFlex:
			user.RankFlex = rank.Tier + " " + rank.Division
			user.LPFlex = rank.LP
			user.WinsFlex = rank.Wins
			user.LossesFlex = rank.Losses
		}
	}

	champions, err := c.MasteryInfo(ctx, summoner.Puuid, platform)
	if err != nil {
		return nil, err
	}

	// Top champions keep the upstream mastery ordering.
	if len(champions) > 3 {
		user.TopChamps = champions[:3]
	} else {
		user.TopChamps = champions
	}
	for _, champion := range champions {
		user.TotalMastery += champion.Level
		user.TotalPoints += champion.Points
	}

	return user, nil
}
