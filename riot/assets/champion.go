package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"lolbot/pkg/redis"
	"lolbot/riot/requests"

	log "github.com/sirupsen/logrus"
)

// Consts used across the package.
const (
	championsKey = "ddragon:champions"
	versionKey   = "ddragon:version"
	cacheTTL     = 24 * time.Hour
)

// Base URL of the DDragon CDN. Var so tests can point it at a fake server.
var ddragon = "https://ddragon.leagueoflegends.com/"

// Definition for extracting the champion data.
type fullChampion struct {
	Data map[string]struct {
		Key string `json:"key"`
	} `json:"data"`
}

// ChampionStore is the immutable champion id to name table, loaded once at
// startup and passed by reference to the rendering layer.
type ChampionStore struct {
	version string
	names   map[int64]string
}

// NewChampionStore builds a store from an already known table.
func NewChampionStore(version string, names map[int64]string) *ChampionStore {
	return &ChampionStore{version: version, names: names}
}

// Name returns the champion name for the given key.
func (s *ChampionStore) Name(id int64) (string, bool) {
	name, ok := s.names[id]
	return name, ok
}

// Version returns the DDragon patch the table was built from.
func (s *ChampionStore) Version() string {
	return s.version
}

// IconURL builds the profile icon URL for the current patch.
func (s *ChampionStore) IconURL(iconID int) string {
	return fmt.Sprintf("%scdn/%s/img/profileicon/%d.png", ddragon, s.version, iconID)
}

// LoadChampions builds the champion table, from Redis when a previous run
// already cached it, else from the DDragon CDN. A failure to produce the
// table is a startup fault for the caller, not a runtime surprise.
func LoadChampions(ctx context.Context, rdb *redis.RedisClient) (*ChampionStore, error) {
	if rdb != nil {
		if store, err := loadFromRedis(ctx, rdb); err == nil {
			return store, nil
		}
	}

	version, err := latestVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the latest DDragon version: %w", err)
	}

	url := fmt.Sprintf("%scdn/%s/data/en_US/champion.json", ddragon, version)
	body, _, err := requests.PlainGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the champion data: %w", err)
	}

	var championsData fullChampion
	if err := json.Unmarshal(body, &championsData); err != nil {
		return nil, fmt.Errorf("couldn't parse the champion data: %w", err)
	}

	names := make(map[int64]string, len(championsData.Data))
	for championName, champion := range championsData.Data {
		key, err := strconv.ParseInt(champion.Key, 10, 64)
		if err != nil {
			continue
		}
		names[key] = championName
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("champion data for version %s came back empty", version)
	}

	store := &ChampionStore{version: version, names: names}
	if rdb != nil {
		saveToRedis(ctx, rdb, store)
	}

	return store, nil
}

// Get the latest version from the DDragon versions endpoint.
func latestVersion(ctx context.Context) (string, error) {
	body, _, err := requests.PlainGet(ctx, ddragon+"api/versions.json")
	if err != nil {
		return "", err
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("empty version list")
	}
	return versions[0], nil
}

// Read a previously cached table.
func loadFromRedis(ctx context.Context, rdb *redis.RedisClient) (*ChampionStore, error) {
	version, err := rdb.Get(ctx, versionKey)
	if err != nil {
		return nil, err
	}

	raw, err := rdb.Get(ctx, championsKey)
	if err != nil {
		return nil, err
	}

	var names map[int64]string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("cached champion table is empty")
	}

	return &ChampionStore{version: version, names: names}, nil
}

// Cache the table so restarts skip the remote fetch.
// Failing to cache is not fatal, the in-memory table is already built.
func saveToRedis(ctx context.Context, rdb *redis.RedisClient, store *ChampionStore) {
	raw, err := json.Marshal(store.names)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, championsKey, string(raw), cacheTTL); err != nil {
		log.Warnf("couldn't cache the champion table: %v", err)
		return
	}
	if err := rdb.Set(ctx, versionKey, store.version, cacheTTL); err != nil {
		log.Warnf("couldn't cache the champion table version: %v", err)
	}
}

// PrettyName re-spaces compound champion names ("MissFortune" -> "Miss Fortune").
func PrettyName(name string) string {
	pretty := ""
	for _, r := range name {
		if r >= 'A' && r <= 'Z' && pretty != "" {
			pretty += " "
		}
		pretty += string(r)
	}
	return pretty
}
