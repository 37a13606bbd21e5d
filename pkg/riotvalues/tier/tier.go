package tiervalues

// Unranked is the floor tier for players without ranked entries.
const Unranked = "UNRANKED"

// Ordinal weights for the ranked tiers.
var TierWeight = map[string]int{
	"UNRANKED":    -1,
	"IRON":        0,
	"BRONZE":      1,
	"SILVER":      2,
	"GOLD":        3,
	"PLATINUM":    4,
	"EMERALD":     5,
	"DIAMOND":     6,
	"MASTER":      7,
	"GRANDMASTER": 8,
	"CHALLENGER":  9,
}

// WeightOf returns the weight of a tier, treating unknown tiers as unranked.
func WeightOf(tier string) int {
	if weight, ok := TierWeight[tier]; ok {
		return weight
	}
	return -1
}
