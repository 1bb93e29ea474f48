package aggregate

import (
	"testing"
	"time"

	"github.com/drnewske/winscrape/models"
)

const sourceURL = "https://www.windrawwin.com/predictions/today/"

func rec(hasOdds bool) models.MatchRecord {
	r := models.NewMatchRecord("Home FC", "Away FC")
	r.HasOdds = hasOdds
	return r
}

func TestBuild_Counts(t *testing.T) {
	records := []models.MatchRecord{rec(true), rec(false), rec(true), rec(true)}
	summary := Build(records, sourceURL, time.Now())

	if summary.TotalMatches != 4 {
		t.Errorf("total_matches = %d, want 4", summary.TotalMatches)
	}
	if summary.MatchesWithOdds != 3 {
		t.Errorf("matches_with_odds = %d, want 3", summary.MatchesWithOdds)
	}
	if summary.MatchesWithoutOdds != 1 {
		t.Errorf("matches_without_odds = %d, want 1", summary.MatchesWithoutOdds)
	}
	if summary.SourceURL != sourceURL {
		t.Errorf("source_url = %q", summary.SourceURL)
	}
}

func TestBuild_Timestamp(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 6, 14, 9, 30, 0, 0, loc)

	summary := Build(nil, sourceURL, now)

	want := "2025-06-14T14:30:00Z"
	if summary.Timestamp != want {
		t.Errorf("timestamp = %q, want %q (UTC)", summary.Timestamp, want)
	}
}

func TestBuild_EmptyRun(t *testing.T) {
	summary := Build(nil, sourceURL, time.Now())

	if summary.TotalMatches != 0 || summary.MatchesWithOdds != 0 || summary.MatchesWithoutOdds != 0 {
		t.Errorf("empty run counts = %d/%d/%d, want 0/0/0",
			summary.TotalMatches, summary.MatchesWithOdds, summary.MatchesWithoutOdds)
	}
	if summary.Matches == nil {
		t.Error("matches must be an empty slice, not nil")
	}
}
