package extractor

import "testing"

func TestLeagueFromFixture(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"url with league path",
			"https://www.windrawwin.com/predictions/england-premier-league/arsenal-v-spurs/",
			"England Premier League",
		},
		{"uppercase path", "/Predictions/SPAIN-LA-LIGA/", "Spain La Liga"},
		{"fixture text", "finland-ykkonen round 12", "Finland Ykkonen"},
		{"unknown league", "/predictions/peru-liga-1/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LeagueFromFixture(tt.in)
			if got != tt.want {
				t.Errorf("LeagueFromFixture(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLeagueFromFixture_FirstMatchWins(t *testing.T) {
	// Both fragments appear; the catalogue is scanned in order, so the
	// earlier entry wins.
	got := LeagueFromFixture("/finland-kakkonen/via/finland-ykkonen/")
	if got != "Finland Ykkonen" {
		t.Errorf("expected first catalogue entry to win, got %q", got)
	}
}
