// Package fetcher drives the bounded retry state machine that loads the
// predictions page: navigate, classify the response, wait out bot
// challenges, and verify that match content actually rendered.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"golang.org/x/time/rate"

	"github.com/drnewske/winscrape/config"
	"github.com/drnewske/winscrape/extractor"
	"github.com/drnewske/winscrape/models"
)

// maxChallengeChecks bounds the cooldown-and-recheck loop after a challenge
// marker is seen, so a never-clearing interstitial cannot stall an attempt
// forever.
const maxChallengeChecks = 3

// Result is a successfully acquired page snapshot. Extraction runs over the
// HTML string; the live page is never touched again after Fetch returns.
type Result struct {
	// HTML is the rendered DOM at the time the content gate passed.
	HTML string

	// Containers is the number of match containers seen on the page.
	Containers int

	// Attempts is how many navigation attempts the fetch consumed.
	Attempts int

	// NoMatches marks the final-attempt zero-container outcome: a
	// legitimate empty listing, not a load failure.
	NoMatches bool
}

// browserPage is the slice of page behaviour the attempt loop needs. The
// production implementation wraps a rod page; tests substitute a scripted
// one.
type browserPage interface {
	Navigate(ctx context.Context, url string) error
	WaitStable(ctx context.Context) error
	Status(ctx context.Context) (int, error)
	BodyText(ctx context.Context) (string, error)
	ContainerCount(ctx context.Context) (int, error)
	HTML(ctx context.Context) (string, error)
}

// Fetcher retries navigation against a rate-limiting target with
// exponential backoff and polite pacing.
type Fetcher struct {
	cfg   config.FetchConfig
	log   *slog.Logger
	pacer *rate.Limiter
}

// New creates a Fetcher. The pacer admits at most one navigation per
// PaceInterval regardless of how small the backoff is configured.
func New(cfg config.FetchConfig, log *slog.Logger) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fetcher{
		cfg:   cfg,
		log:   log,
		pacer: rate.NewLimiter(rate.Every(cfg.PaceInterval), 1),
	}
}

// HumanDelay pauses for a random humanlike interval before the run's first
// navigation.
func (f *Fetcher) HumanDelay(ctx context.Context) error {
	d := randDuration(f.cfg.InitialDelayMin, f.cfg.InitialDelayMax)
	f.log.Info("initial delay before first navigation", "delay", d.String())
	return sleepCtx(ctx, d)
}

// Fetch runs the attempt loop against a live page. It returns a Result on
// success (including the zero-container empty success) or the last
// classified failure once the attempt budget is exhausted.
func (f *Fetcher) Fetch(ctx context.Context, page *rod.Page, url string) (*Result, error) {
	return f.fetch(ctx, rodPage{page}, url)
}

func (f *Fetcher) fetch(ctx context.Context, p browserPage, url string) (*Result, error) {
	var lastErr *models.RunError

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := backoffDelay(attempt, f.cfg.BaseDelay, randDuration(f.cfg.JitterMin, f.cfg.JitterMax))
			f.log.Info("backing off before retry",
				"attempt", attempt,
				"delay", delay.String(),
			)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, models.NewRunError(models.CodeNavTimeout, "backoff interrupted", err)
			}
		}

		if err := f.pacer.Wait(ctx); err != nil {
			return nil, models.NewRunError(models.CodeNavTimeout, "pacing interrupted", err)
		}

		f.log.Info("navigating to target",
			"url", url,
			"attempt", attempt,
			"maxAttempts", f.cfg.MaxAttempts,
		)

		res, attemptErr := f.attempt(ctx, p, url, attempt == f.cfg.MaxAttempts)
		if attemptErr == nil {
			res.Attempts = attempt
			return res, nil
		}

		lastErr = attemptErr
		f.log.Warn("fetch attempt failed",
			"attempt", attempt,
			"code", attemptErr.Code,
			"error", attemptErr,
		)
	}

	return nil, lastErr
}

// attempt performs one navigate-classify-check cycle. A nil error means the
// content gate passed; any returned error is retryable until the caller's
// budget runs out. A page that cannot be inspected is a failure, never an
// empty listing.
func (f *Fetcher) attempt(ctx context.Context, p browserPage, url string, final bool) (*Result, *models.RunError) {
	navCtx, cancel := context.WithTimeout(ctx, f.cfg.NavTimeout)
	defer cancel()

	if err := p.Navigate(navCtx, url); err != nil {
		return nil, navError(err)
	}

	settleCtx, settleCancel := context.WithTimeout(ctx, f.cfg.ContentTimeout)
	defer settleCancel()
	f.waitSettled(settleCtx, p)

	status, err := p.Status(settleCtx)
	if err != nil {
		return nil, navError(err)
	}
	f.log.Info("response status", "status", status)
	switch classifyStatus(status) {
	case statusBlocked:
		return nil, models.NewRunError(models.CodeBlocked,
			fmt.Sprintf("HTTP %d from target", status), nil)
	case statusNetworkError:
		return nil, models.NewRunError(models.CodeNetwork,
			fmt.Sprintf("HTTP %d from target", status), nil)
	}

	// Challenge gate: cooldown and re-check while the interstitial is up.
	for check := 0; ; check++ {
		body, err := p.BodyText(settleCtx)
		if err != nil {
			return nil, navError(err)
		}
		if !looksLikeChallenge(body) {
			break
		}
		if check == maxChallengeChecks-1 {
			return nil, models.NewRunError(models.CodeBlocked,
				"bot challenge did not clear", nil)
		}
		f.log.Info("bot challenge detected, waiting",
			"cooldown", f.cfg.ChallengeCooldown.String(),
		)
		if err := sleepCtx(ctx, f.cfg.ChallengeCooldown); err != nil {
			return nil, models.NewRunError(models.CodeNavTimeout, "challenge wait interrupted", err)
		}
		f.waitSettled(settleCtx, p)
	}

	count, err := p.ContainerCount(settleCtx)
	if err != nil {
		return nil, navError(err)
	}
	if count == 0 {
		if !final {
			return nil, models.NewRunError(models.CodeNetwork,
				"no match containers rendered", nil)
		}
		// Zero scheduled matches on the final attempt is a legitimate
		// outcome, distinct from a page that could not load at all.
		// The count query succeeded, so the page really rendered empty.
		f.log.Warn("no match containers after all attempts, treating as empty listing")
		html, err := p.HTML(settleCtx)
		if err != nil {
			return nil, navError(err)
		}
		return &Result{HTML: html, NoMatches: true}, nil
	}

	html, err := p.HTML(settleCtx)
	if err != nil {
		return nil, navError(err)
	}

	f.log.Info("page loaded", "containers", count)
	return &Result{HTML: html, Containers: count}, nil
}

// waitSettled waits for the DOM to stop mutating. Non-convergence is not a
// failure; the current DOM is used as-is.
func (f *Fetcher) waitSettled(ctx context.Context, p browserPage) {
	if err := p.WaitStable(ctx); err != nil {
		f.log.Debug("DOM did not stabilise, proceeding with current state",
			"error", err,
		)
	}
}

// rodPage adapts a live rod page to the attempt loop. Each call scopes the
// page to the caller's context so a phase deadline surfaces as an error
// instead of being masked by a default value.
type rodPage struct {
	page *rod.Page
}

func (r rodPage) Navigate(ctx context.Context, url string) error {
	return r.page.Context(ctx).Navigate(url)
}

func (r rodPage) WaitStable(ctx context.Context) error {
	return r.page.Context(ctx).WaitDOMStable(300*time.Millisecond, 0.1)
}

// Status recovers the navigation's HTTP status from the performance API.
// Returns 0 when the entry is unavailable, which classifies as unknown
// rather than as a failure.
func (r rodPage) Status(ctx context.Context) (int, error) {
	res, err := r.page.Context(ctx).Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (r rodPage) BodyText(ctx context.Context) (string, error) {
	res, err := r.page.Context(ctx).Eval(`() => document.body ? document.body.innerText : ""`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (r rodPage) ContainerCount(ctx context.Context) (int, error) {
	res, err := r.page.Context(ctx).Eval(
		`sel => document.querySelectorAll(sel).length`,
		extractor.ContainerSelector,
	)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (r rodPage) HTML(ctx context.Context) (string, error) {
	return r.page.Context(ctx).HTML()
}

// navError maps raw navigation errors onto the run error taxonomy.
func navError(err error) *models.RunError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.NewRunError(models.CodeNavTimeout, "navigation timed out", err)
	}
	return models.NewRunError(models.CodeNetwork, "navigation failed", err)
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
