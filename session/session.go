// Package session owns the browser-engine lifecycle for one scrape run and
// applies the fingerprint disguise before any navigation happens.
package session

import (
	"log/slog"
	"net/url"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/drnewske/winscrape/config"
	"github.com/drnewske/winscrape/models"
)

// Session wraps one headless browser and the single page it drives. It is
// owned exclusively by the fetch-then-extract pipeline for the duration of
// one run; there is no concurrent access.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	log     *slog.Logger
}

// New launches a headless browser with automation fingerprints minimised.
// Launch failure is fatal and unrecoverable; the caller aborts the run
// before any fetch attempt.
func New(cfg config.BrowserConfig, log *slog.Logger) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-ipc-flooding-protection"))
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-prompt-on-repost"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewRunError(
			models.CodeSessionStart,
			"failed to launch browser",
			err,
		)
	}
	log.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewRunError(
			models.CodeSessionStart,
			"failed to connect to browser",
			err,
		)
	}

	return &Session{browser: browser, log: log}, nil
}

// Acquire creates the run's page and installs the disguise profile. The
// stealth JS and the emulation overrides only take effect for navigations
// that happen after they are installed, so this must complete before the
// fetcher navigates anywhere.
func (s *Session) Acquire(targetURL string, d config.DisguiseConfig) (*rod.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewRunError(
			models.CodeSessionStart,
			"failed to create page",
			err,
		)
	}
	s.page = page

	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		s.log.Warn("stealth injection failed, proceeding without stealth",
			"error", err,
		)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             d.ViewportWidth,
		Height:            d.ViewportHeight,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		s.log.Warn("viewport override failed", "error", err)
	}

	if err := (proto.NetworkSetUserAgentOverride{
		UserAgent:      d.UserAgent,
		AcceptLanguage: d.Locale,
		Platform:       "Win32",
	}).Call(page); err != nil {
		s.log.Warn("user agent override failed", "error", err)
	}

	if err := (proto.EmulationSetTimezoneOverride{
		TimezoneID: d.Timezone,
	}).Call(page); err != nil {
		s.log.Warn("timezone override failed", "error", err)
	}

	if err := (proto.EmulationSetLocaleOverride{
		Locale: d.Locale,
	}).Call(page); err != nil {
		s.log.Warn("locale override failed", "error", err)
	}

	// A Google-search Referer makes the landing look like an organic visit.
	if u, err := url.Parse(targetURL); err == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(page)
	}

	s.log.Info("page acquired",
		"viewport", []int{d.ViewportWidth, d.ViewportHeight},
		"locale", d.Locale,
		"timezone", d.Timezone,
	)
	return page, nil
}

// Close releases the page and kills the browser process. It is called
// unconditionally at the end of the run, including on the fatal-error path.
func (s *Session) Close() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.log.Warn("failed to close page", "error", err)
		}
	}
	if err := s.browser.Close(); err != nil {
		s.log.Warn("failed to close browser", "error", err)
	}
	s.log.Info("session closed")
}
