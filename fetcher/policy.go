package fetcher

import (
	"math/rand"
	"strings"
	"time"
)

// statusClass is the outcome of classifying a navigation response status.
type statusClass int

const (
	// statusOK covers 2xx/3xx and status 0 (the performance API was
	// unavailable); the attempt proceeds to the content gate.
	statusOK statusClass = iota

	// statusBlocked is HTTP 403: retryable until attempts are exhausted,
	// then fatal as a block.
	statusBlocked

	// statusNetworkError is any other >=400 status: retryable until
	// attempts are exhausted, then fatal as a network failure.
	statusNetworkError
)

func classifyStatus(code int) statusClass {
	switch {
	case code == 403:
		return statusBlocked
	case code >= 400:
		return statusNetworkError
	default:
		return statusOK
	}
}

// backoffDelay returns the sleep preceding the given 1-based attempt:
// base * 2^(n-2) + jitter. The first attempt starts immediately. The base
// term grows by at least one full base per step, so delays are
// non-decreasing for any jitter within the configured range.
func backoffDelay(attempt int, base, jitter time.Duration) time.Duration {
	if attempt <= 1 {
		return 0
	}
	return base*(1<<(attempt-2)) + jitter
}

// randDuration picks a uniform duration in [min, max).
func randDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// challengeMarkers are interstitial phrases shown by bot-mitigation services
// while real content is withheld.
var challengeMarkers = []string{
	"checking your browser",
	"verifying you are human",
	"verify you are human",
}

// looksLikeChallenge reports whether the page body text is an anti-bot
// interstitial rather than real content.
func looksLikeChallenge(bodyText string) bool {
	lower := strings.ToLower(bodyText)
	for _, marker := range challengeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
