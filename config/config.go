package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Target   TargetConfig
	Fetch    FetchConfig
	Browser  BrowserConfig
	Disguise DisguiseConfig
	Output   OutputConfig
	Log      LogConfig
}

// TargetConfig identifies the single page scraped per run.
type TargetConfig struct {
	// URL is the predictions listing page.
	URL string // default: https://www.windrawwin.com/predictions/today/
}

// FetchConfig controls the retry state machine around page navigation.
type FetchConfig struct {
	// MaxAttempts bounds the navigate-classify-check cycle.
	MaxAttempts int // default: 3

	// BaseDelay seeds the exponential backoff between attempts.
	BaseDelay time.Duration // default: 10s

	// JitterMin/JitterMax bound the random jitter added to each backoff.
	JitterMin time.Duration // default: 2s
	JitterMax time.Duration // default: 5s

	// ChallengeCooldown is the fixed wait after a bot-challenge marker is
	// seen, before the page is re-checked.
	ChallengeCooldown time.Duration // default: 15s

	// NavTimeout is the deadline for a single navigation.
	NavTimeout time.Duration // default: 60s

	// ContentTimeout is the deadline for the post-navigation settle wait.
	ContentTimeout time.Duration // default: 30s

	// PaceInterval gates navigations so retries never arrive faster than
	// one per interval regardless of backoff configuration.
	PaceInterval time.Duration // default: 2s

	// InitialDelayMin/Max bound the humanlike pause before the first
	// navigation of a run.
	InitialDelayMin time.Duration // default: 3s
	InitialDelayMax time.Duration // default: 8s
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string
}

// DisguiseConfig is the fingerprint profile applied to the page before
// navigation. Values mirror a common desktop Chrome install.
type DisguiseConfig struct {
	ViewportWidth  int    // default: 1920
	ViewportHeight int    // default: 1080
	UserAgent      string // default: desktop Chrome on Windows
	Locale         string // default: en-US
	Timezone       string // default: America/New_York
}

// OutputConfig names the run artifacts.
type OutputConfig struct {
	// ResultPath is the JSON payload, written every run.
	ResultPath string // default: today_matches.json

	// RunLogPath is the one-line-per-run log, appended every run.
	RunLogPath string // default: scrape_log.txt
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Target: TargetConfig{
			URL: envOr("WINSCRAPE_URL", "https://www.windrawwin.com/predictions/today/"),
		},
		Fetch: FetchConfig{
			MaxAttempts:       envIntOr("WINSCRAPE_MAX_ATTEMPTS", 3),
			BaseDelay:         envDurationOr("WINSCRAPE_BASE_DELAY", 10*time.Second),
			JitterMin:         envDurationOr("WINSCRAPE_JITTER_MIN", 2*time.Second),
			JitterMax:         envDurationOr("WINSCRAPE_JITTER_MAX", 5*time.Second),
			ChallengeCooldown: envDurationOr("WINSCRAPE_CHALLENGE_COOLDOWN", 15*time.Second),
			NavTimeout:        envDurationOr("WINSCRAPE_NAV_TIMEOUT", 60*time.Second),
			ContentTimeout:    envDurationOr("WINSCRAPE_CONTENT_TIMEOUT", 30*time.Second),
			PaceInterval:      envDurationOr("WINSCRAPE_PACE_INTERVAL", 2*time.Second),
			InitialDelayMin:   envDurationOr("WINSCRAPE_INITIAL_DELAY_MIN", 3*time.Second),
			InitialDelayMax:   envDurationOr("WINSCRAPE_INITIAL_DELAY_MAX", 8*time.Second),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("WINSCRAPE_HEADLESS", true),
			NoSandbox:  envBoolOr("WINSCRAPE_NO_SANDBOX", false),
			BrowserBin: os.Getenv("WINSCRAPE_BROWSER_BIN"),
		},
		Disguise: DisguiseConfig{
			ViewportWidth:  envIntOr("WINSCRAPE_VIEWPORT_WIDTH", 1920),
			ViewportHeight: envIntOr("WINSCRAPE_VIEWPORT_HEIGHT", 1080),
			UserAgent:      envOr("WINSCRAPE_USER_AGENT", defaultUserAgent),
			Locale:         envOr("WINSCRAPE_LOCALE", "en-US"),
			Timezone:       envOr("WINSCRAPE_TIMEZONE", "America/New_York"),
		},
		Output: OutputConfig{
			ResultPath: envOr("WINSCRAPE_RESULT_PATH", "today_matches.json"),
			RunLogPath: envOr("WINSCRAPE_RUN_LOG_PATH", "scrape_log.txt"),
		},
		Log: LogConfig{
			Level:  envOr("WINSCRAPE_LOG_LEVEL", "info"),
			Format: envOr("WINSCRAPE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
