package models

// Teams holds the two side identities of a fixture. A MatchRecord is only
// ever built with both names non-empty; a container that cannot resolve both
// is skipped entirely rather than emitted half-blank.
type Teams struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Fixture is the derived fixture label. League is resolved by matching the
// fixture URL (or, failing that, its text) against the known league-path
// catalogue; no match leaves it empty.
type Fixture struct {
	Text   string `json:"text"`
	League string `json:"league"`
	URL    string `json:"url"`
}

// Prediction carries the site's free-text tip fields. Each is independently
// optional.
type Prediction struct {
	Type  string `json:"type"`
	Stake string `json:"stake"`
	Score string `json:"score"`
}

// MatchOdds is the 1X2 market. Values are decimal odds kept as text exactly
// as displayed; absent values are empty strings, never null.
type MatchOdds struct {
	Home string `json:"home"`
	Draw string `json:"draw"`
	Away string `json:"away"`
}

// OverUnder is the goals total market.
type OverUnder struct {
	Over  string `json:"over"`
	Under string `json:"under"`
}

// BTTS is the both-teams-to-score market.
type BTTS struct {
	Yes string `json:"yes"`
	No  string `json:"no"`
}

// Odds groups the three markets scraped per match.
type Odds struct {
	MatchOdds MatchOdds `json:"match_odds"`
	OverUnder OverUnder `json:"over_under"`
	BTTS      BTTS      `json:"btts"`
}

// Form holds recent-result sequences, most recent first, at most five
// entries per side, symbols drawn from W/D/L.
type Form struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

// MatchRecord is one prediction entry. Records are immutable once built by
// the extractor and consumed exactly once by the aggregator.
type MatchRecord struct {
	Teams      Teams      `json:"teams"`
	Fixture    Fixture    `json:"fixture"`
	Prediction Prediction `json:"prediction"`
	Odds       Odds       `json:"odds"`
	HasOdds    bool       `json:"has_odds"`
	Form       Form       `json:"form"`
}

// NewMatchRecord returns a record with form slices initialised so that an
// empty side serialises as [] rather than null.
func NewMatchRecord(home, away string) MatchRecord {
	return MatchRecord{
		Teams: Teams{Home: home, Away: away},
		Form:  Form{Home: []string{}, Away: []string{}},
	}
}

// RunSummary is the run-level payload written once per run, including runs
// that produced zero records.
type RunSummary struct {
	Timestamp          string        `json:"timestamp"`
	TotalMatches       int           `json:"total_matches"`
	MatchesWithOdds    int           `json:"matches_with_odds"`
	MatchesWithoutOdds int           `json:"matches_without_odds"`
	SourceURL          string        `json:"source_url"`
	Matches            []MatchRecord `json:"matches"`
}
