package extractor

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "Manchester United FC", "Manchester United FC"},
		{"leading and trailing space", "  Arsenal  ", "Arsenal"},
		{"collapsed runs", "Real   Madrid", "Real Madrid"},
		{"nbsp entity", "  Manchester   United  &nbsp;FC ", "Manchester United FC"},
		{"decoded nbsp rune", "Manchester United", "Manchester United"},
		{"amp entity", "Brighton &amp; Hove", "Brighton & Hove"},
		{"tabs and newlines", "St\tPatricks\nAthletic", "St Patricks Athletic"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.in)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"  Manchester   United  &nbsp;FC ",
		"Brighton &amp; Hove Albion",
		"already clean text",
		"",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean is not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
