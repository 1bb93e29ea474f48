// Package aggregate assembles the run-level payload. It is pure: no DOM
// access, no I/O, no clock reads of its own.
package aggregate

import (
	"time"

	"github.com/drnewske/winscrape/models"
)

// Build packages extracted records into a RunSummary with the odds-presence
// split counted and the timestamp stamped in UTC. The summary is immutable
// after this returns, including for the zero-record case.
func Build(records []models.MatchRecord, sourceURL string, now time.Time) models.RunSummary {
	withOdds := 0
	for _, rec := range records {
		if rec.HasOdds {
			withOdds++
		}
	}

	if records == nil {
		records = []models.MatchRecord{}
	}

	return models.RunSummary{
		Timestamp:          now.UTC().Format(time.RFC3339),
		TotalMatches:       len(records),
		MatchesWithOdds:    withOdds,
		MatchesWithoutOdds: len(records) - withOdds,
		SourceURL:          sourceURL,
		Matches:            records,
	}
}
