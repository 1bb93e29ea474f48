package fetcher

import (
	"testing"
	"time"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want statusClass
	}{
		{"ok", 200, statusOK},
		{"redirect", 302, statusOK},
		{"unknown status", 0, statusOK},
		{"forbidden", 403, statusBlocked},
		{"not found", 404, statusNetworkError},
		{"rate limited", 429, statusNetworkError},
		{"server error", 503, statusNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyStatus(tt.code); got != tt.want {
				t.Errorf("classifyStatus(%d) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestBackoffDelay(t *testing.T) {
	base := 10 * time.Second
	jitter := 3 * time.Second

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 0},
		{2, 13 * time.Second},
		{3, 23 * time.Second},
		{4, 43 * time.Second},
	}

	for _, tt := range tests {
		got := backoffDelay(tt.attempt, base, jitter)
		if got != tt.want {
			t.Errorf("backoffDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestBackoffDelay_NonDecreasing(t *testing.T) {
	// The base term grows by at least one full base per attempt, which
	// dominates the jitter range, so worst-case jitter on attempt n still
	// sleeps less than best-case jitter on attempt n+1.
	base := 10 * time.Second
	jitterMin := 2 * time.Second
	jitterMax := 5 * time.Second

	for attempt := 2; attempt < 6; attempt++ {
		worstNow := backoffDelay(attempt, base, jitterMax)
		bestNext := backoffDelay(attempt+1, base, jitterMin)
		if bestNext < worstNow {
			t.Errorf("delay decreased between attempts %d and %d: %v -> %v",
				attempt, attempt+1, worstNow, bestNext)
		}
	}
}

func TestRandDuration(t *testing.T) {
	min := 2 * time.Second
	max := 5 * time.Second

	for i := 0; i < 100; i++ {
		d := randDuration(min, max)
		if d < min || d >= max {
			t.Fatalf("randDuration out of range: %v", d)
		}
	}
}

func TestRandDuration_DegenerateRange(t *testing.T) {
	if d := randDuration(3*time.Second, 3*time.Second); d != 3*time.Second {
		t.Errorf("expected min for empty range, got %v", d)
	}
	if d := randDuration(5*time.Second, 2*time.Second); d != 5*time.Second {
		t.Errorf("expected min for inverted range, got %v", d)
	}
}

func TestLooksLikeChallenge(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"cloudflare interstitial", "Checking your browser before accessing windrawwin.com", true},
		{"turnstile prompt", "Verify you are human by completing the action below", true},
		{"case insensitive", "CHECKING YOUR BROWSER", true},
		{"real content", "Arsenal v Chelsea Home Win 2-1", false},
		{"empty body", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeChallenge(tt.body); got != tt.want {
				t.Errorf("looksLikeChallenge(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}
