package regions

import (
	"fmt"
	"sort"
	"strings"
)

// Create the types for clarity.
type (
	// Platform is the per-server routing value (EUN1, KR, ...).
	Platform string
	// Region is the broader routing value serving account and match data.
	Region string
)

// Display server names as users type them, mapped to their platform codes.
var ServerNames = map[string]Platform{
	"BR":   "BR1",
	"EUNE": "EUN1",
	"EUW":  "EUW1",
	"LAN":  "LA1",
	"LAS":  "LA2",
	"NA":   "NA1",
	"OCE":  "OC1",
	"RU":   "RU",
	"TR":   "TR1",
	"JP":   "JP1",
	"KR":   "KR",
	"SEA":  "SG2",
	"TW":   "TW2",
	"VN":   "VN2",
}

// Which platforms are children of each regional route.
var RegionList = map[Region][]Platform{
	"americas": {"BR1", "LA1", "LA2", "NA1"},
	"europe":   {"EUN1", "EUW1", "TR1", "RU"},
	"asia":     {"KR", "JP1"},
	"sea":      {"OC1", "SG2", "TW2", "VN2"},
}

// Resolve maps a display server name to its platform code.
// Unknown names are rejected with the list of valid ones.
func Resolve(display string) (Platform, error) {
	platform, exists := ServerNames[strings.ToUpper(display)]
	if !exists {
		return "", fmt.Errorf("unknown server %s, available servers: %s", display, strings.Join(DisplayNames(), ", "))
	}
	return platform, nil
}

// DisplayNames returns the known display server names, sorted.
func DisplayNames() []string {
	names := make([]string, 0, len(ServerNames))
	for name := range ServerNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegionOf returns the regional route a platform belongs to.
func RegionOf(platform Platform) (Region, error) {
	for region, platforms := range RegionList {
		for _, p := range platforms {
			if p == platform {
				return region, nil
			}
		}
	}
	return "", fmt.Errorf("the platform %s doesn't belong to any region", platform)
}
