package messages

const (
	BadStatusCodeMsg = "API returned status code %d on URL %s"
	RequestFailedMsg = "API request failed on URL %s"
	AccountNotFound  = "Riot Account %s#%s doesn't exist!"
	SummonerNotFound = "Summoner %s#%s doesn't exist!"
	MatchNotFound    = "Match not found!"
	MatchIndexRange  = "You can only see your last 100 matches!"
	NoMatchHistory   = "No match history found for summoner %s#%s"
)
