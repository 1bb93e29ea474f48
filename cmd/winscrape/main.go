package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/drnewske/winscrape/aggregate"
	"github.com/drnewske/winscrape/config"
	"github.com/drnewske/winscrape/extractor"
	"github.com/drnewske/winscrape/fetcher"
	"github.com/drnewske/winscrape/models"
	"github.com/drnewske/winscrape/persist"
	"github.com/drnewske/winscrape/session"
)

func main() {
	os.Exit(run())
}

// run executes one scrape: session → fetch → extract → aggregate → persist.
// Every exit path, fatal ones included, writes the result payload and a run
// log line first.
func run() int {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	log := slog.Default().With("run_id", uuid.NewString())
	log.Info("winscrape starting",
		"url", cfg.Target.URL,
		"maxAttempts", cfg.Fetch.MaxAttempts,
		"headless", cfg.Browser.Headless,
	)

	ctx := context.Background()

	// ── 3. Start the render session (launches browser) ──────────────
	sess, err := session.New(cfg.Browser, log)
	if err != nil {
		log.Error("failed to start render session", "error", err)
		finishFailed(cfg, log, "browser failed to start")
		return 1
	}
	defer sess.Close()

	page, err := sess.Acquire(cfg.Target.URL, cfg.Disguise)
	if err != nil {
		log.Error("failed to acquire page", "error", err)
		finishFailed(cfg, log, "browser failed to start")
		return 1
	}

	// ── 4. Fetch the page ───────────────────────────────────────────
	f := fetcher.New(cfg.Fetch, log)
	if err := f.HumanDelay(ctx); err != nil {
		log.Error("interrupted before first navigation", "error", err)
		finishFailed(cfg, log, "interrupted")
		return 1
	}

	res, err := f.Fetch(ctx, page, cfg.Target.URL)
	if err != nil {
		log.Error("fetch failed after all attempts", "error", err)
		finishFailed(cfg, log, failureReason(err))
		return 1
	}

	// ── 5. Extract records ──────────────────────────────────────────
	var records []models.MatchRecord
	if !res.NoMatches {
		records, err = extractor.New(log).ExtractAll(res.HTML)
		if err != nil {
			log.Error("failed to parse rendered page", "error", err)
			finishFailed(cfg, log, "failed to parse rendered page")
			return 1
		}
	}

	// ── 6. Aggregate and persist ────────────────────────────────────
	summary := aggregate.Build(records, cfg.Target.URL, time.Now())
	if err := persist.WriteSummary(cfg.Output.ResultPath, summary); err != nil {
		log.Error("failed to write result payload", "error", err)
		if lerr := persist.AppendFailure(cfg.Output.RunLogPath, "failed to save data to file", time.Now()); lerr != nil {
			log.Error("failed to append run log", "error", lerr)
		}
		return 1
	}
	log.Info("result payload written",
		"path", cfg.Output.ResultPath,
		"totalMatches", summary.TotalMatches,
		"matchesWithOdds", summary.MatchesWithOdds,
	)

	// ── 7. Run log line ─────────────────────────────────────────────
	if summary.TotalMatches > 0 {
		if err := persist.AppendSuccess(cfg.Output.RunLogPath, summary.TotalMatches, time.Now()); err != nil {
			log.Error("failed to append run log", "error", err)
		}
		log.Info("scrape completed", "attempts", res.Attempts)
	} else {
		// A zero-match run succeeds, but the run log records why the
		// payload is empty.
		if err := persist.AppendFailure(cfg.Output.RunLogPath, "No matches found or extracted", time.Now()); err != nil {
			log.Error("failed to append run log", "error", err)
		}
		log.Warn("no matches found, empty payload written")
	}
	return 0
}

// finishFailed writes the empty payload and a failure log line on the
// fatal-error path so the caller still finds a consistent artifact.
func finishFailed(cfg *config.Config, log *slog.Logger, reason string) {
	summary := aggregate.Build(nil, cfg.Target.URL, time.Now())
	if err := persist.WriteSummary(cfg.Output.ResultPath, summary); err != nil {
		log.Error("failed to write empty payload", "error", err)
	}
	if err := persist.AppendFailure(cfg.Output.RunLogPath, reason, time.Now()); err != nil {
		log.Error("failed to append run log", "error", err)
	}
}

// failureReason maps a fetch error onto the short run-log reason string.
func failureReason(err error) string {
	var rerr *models.RunError
	if !errors.As(err, &rerr) {
		return err.Error()
	}
	switch rerr.Code {
	case models.CodeBlocked:
		return "blocked by target after all attempts"
	case models.CodeNavTimeout:
		return "navigation timed out after all attempts"
	case models.CodeNetwork:
		return "network failure after all attempts"
	default:
		return rerr.Message
	}
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
