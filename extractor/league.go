package extractor

import "strings"

// leagueCatalogue maps known league-path fragments to display names. Lookup
// order matters: the first fragment found in the fixture URL or text wins.
var leagueCatalogue = []struct {
	fragment string
	name     string
}{
	{"finland-ykkonen", "Finland Ykkonen"},
	{"finland-kakkonen", "Finland Kakkonen"},
	{"uzbekistan-super-league", "Uzbekistan Super League"},
	{"club-world-cup", "Club World Cup"},
	{"ireland-premier-division", "Ireland Premier Division"},
	{"england-premier-league", "England Premier League"},
	{"spain-la-liga", "Spain La Liga"},
	{"germany-bundesliga", "Germany Bundesliga"},
	{"italy-serie-a", "Italy Serie A"},
	{"france-ligue-1", "France Ligue 1"},
}

// LeagueFromFixture resolves a league name from a fixture URL or label.
// Unknown paths resolve to the empty string, never an error.
func LeagueFromFixture(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	for _, l := range leagueCatalogue {
		if strings.Contains(lower, l.fragment) {
			return l.name
		}
	}
	return ""
}
