package queuevalues

// Ranked queue keys as returned by the league endpoint.
const (
	RankedSolo = "RANKED_SOLO_5x5"
	RankedFlex = "RANKED_FLEX_SR"
)

// Display names for the queues the bot renders.
var QueueTypeNames = map[int]string{
	400: "Draft",
	420: "Solo/Duo",
	430: "Blind",
	440: "Flex",
	450: "ARAM",
	700: "Clash",
}

// DisplayName returns the queue label, or "Other" for untreated queues.
func DisplayName(queueID int) string {
	if name, ok := QueueTypeNames[queueID]; ok {
		return name
	}
	return "Other"
}
