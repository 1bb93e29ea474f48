// Package extractor converts the rendered predictions page into canonical
// match records. Element ordering and presence are not guaranteed across
// page variants, so odds extraction is tiered: a strict positional read
// first, then an independent per-category rescue.
package extractor

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/drnewske/winscrape/models"
)

// ContainerSelector identifies one match container: a single fixture's full
// row of identity, prediction, odds and form data.
const ContainerSelector = ".wttr"

// Selectors are compiled once; every lookup after that is allocation-free
// matching.
var (
	selContainer  = cascadia.MustCompile(ContainerSelector)
	selTeamName   = cascadia.MustCompile(".wtmoblnk")
	selFixture    = cascadia.MustCompile(".wtdesklnk")
	selStake      = cascadia.MustCompile(".wtstk")
	selPrediction = cascadia.MustCompile(".wtprd")
	selScore      = cascadia.MustCompile(".wtsc")
	selOddsCell   = cascadia.MustCompile(".wtocell a")
	selMatchOdds  = cascadia.MustCompile(".wtmo .wtocell a")
	selOverUnder  = cascadia.MustCompile(".wtou .wtocell a")
	selBTTS       = cascadia.MustCompile(".wtbt .wtocell a")
	selFormLeft   = cascadia.MustCompile(".wtl5contl")
	selFormRight  = cascadia.MustCompile(".wtl5contr")
	selFormMark   = cascadia.MustCompile(".last5w, .last5d, .last5l")
)

// Category thresholds. Tier A needs the full ordered set; Tier B categories
// are judged independently against their own minimum.
const (
	tierACells     = 7
	matchOddsCells = 3
	overUnderCells = 2
	bttsCells      = 2
	maxFormResults = 5
)

// Extractor walks match containers and produces records. It has no
// connection to the live page; it operates on the snapshot the fetcher
// returned.
type Extractor struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Extractor {
	return &Extractor{log: log}
}

// ExtractAll parses the rendered HTML and extracts every container that
// resolves a full team identity. Containers without two team names are
// skipped silently; they are not errors and not counted.
func (e *Extractor) ExtractAll(renderedHTML string) ([]models.MatchRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return nil, err
	}

	records := make([]models.MatchRecord, 0)
	doc.FindMatcher(selContainer).Each(func(i int, container *goquery.Selection) {
		rec, ok := e.extractOne(container)
		if !ok {
			e.log.Debug("container skipped, team identity unresolved", "index", i)
			return
		}
		records = append(records, rec)
	})

	e.log.Info("extraction complete",
		"containers", doc.FindMatcher(selContainer).Length(),
		"records", len(records),
	)
	return records, nil
}

// extractOne converts a single container. Team identity is the only gate:
// every other field is best-effort and leaves its empty default on absence.
func (e *Extractor) extractOne(container *goquery.Selection) (models.MatchRecord, bool) {
	names := container.FindMatcher(selTeamName)
	if names.Length() < 2 {
		return models.MatchRecord{}, false
	}
	home := Clean(names.Eq(0).Text())
	away := Clean(names.Eq(1).Text())
	if home == "" || away == "" {
		return models.MatchRecord{}, false
	}

	rec := models.NewMatchRecord(home, away)

	if fixture := container.FindMatcher(selFixture).First(); fixture.Length() > 0 {
		rec.Fixture.Text = textField(fixture).Or("")
		if href, ok := fixture.Attr("href"); ok && href != "" {
			rec.Fixture.URL = href
			rec.Fixture.League = LeagueFromFixture(href)
		}
		if rec.Fixture.League == "" {
			rec.Fixture.League = LeagueFromFixture(rec.Fixture.Text)
		}
	}

	rec.Prediction.Stake = textField(container.FindMatcher(selStake).First()).Or("")
	rec.Prediction.Type = textField(container.FindMatcher(selPrediction).First()).Or("")
	rec.Prediction.Score = textField(container.FindMatcher(selScore).First()).Or("")

	rec.Odds = extractOdds(container)
	rec.HasOdds = hasPopulatedCategory(rec.Odds)

	// Form is attributed by side-container identity, never by slicing one
	// flattened marker list: either side may have fewer than five results,
	// which would shift a positional split.
	rec.Form.Home = formSequence(container.FindMatcher(selFormLeft))
	rec.Form.Away = formSequence(container.FindMatcher(selFormRight))

	return rec, true
}

// extractOdds applies the tiered strategy. Tier A: with at least seven
// ordered odds anchors, positions 0-2 are the 1X2 market, 3-4 over/under,
// 5-6 both-teams-to-score. Tier B rescues each market from its own
// sub-container when the flat count falls short; categories succeed or fail
// independently.
func extractOdds(container *goquery.Selection) models.Odds {
	var odds models.Odds

	cells := container.FindMatcher(selOddsCell)
	if cells.Length() >= tierACells {
		odds.MatchOdds.Home = cellText(cells, 0)
		odds.MatchOdds.Draw = cellText(cells, 1)
		odds.MatchOdds.Away = cellText(cells, 2)
		odds.OverUnder.Over = cellText(cells, 3)
		odds.OverUnder.Under = cellText(cells, 4)
		odds.BTTS.Yes = cellText(cells, 5)
		odds.BTTS.No = cellText(cells, 6)
		return odds
	}

	if mo := container.FindMatcher(selMatchOdds); mo.Length() >= matchOddsCells {
		odds.MatchOdds.Home = cellText(mo, 0)
		odds.MatchOdds.Draw = cellText(mo, 1)
		odds.MatchOdds.Away = cellText(mo, 2)
	}
	if ou := container.FindMatcher(selOverUnder); ou.Length() >= overUnderCells {
		odds.OverUnder.Over = cellText(ou, 0)
		odds.OverUnder.Under = cellText(ou, 1)
	}
	if bt := container.FindMatcher(selBTTS); bt.Length() >= bttsCells {
		odds.BTTS.Yes = cellText(bt, 0)
		odds.BTTS.No = cellText(bt, 1)
	}
	return odds
}

// hasPopulatedCategory reports whether at least one odds category has all
// of its required sub-fields non-empty.
func hasPopulatedCategory(o models.Odds) bool {
	if o.MatchOdds.Home != "" && o.MatchOdds.Draw != "" && o.MatchOdds.Away != "" {
		return true
	}
	if o.OverUnder.Over != "" && o.OverUnder.Under != "" {
		return true
	}
	return o.BTTS.Yes != "" && o.BTTS.No != ""
}

// formSequence reads up to five outcome markers from one side container,
// most recent first as presented. Unrecognised markers are skipped.
func formSequence(side *goquery.Selection) []string {
	out := []string{}
	side.FindMatcher(selFormMark).EachWithBreak(func(_ int, mark *goquery.Selection) bool {
		if len(out) >= maxFormResults {
			return false
		}
		if sym, ok := outcomeSymbol(mark); ok {
			out = append(out, sym)
		}
		return true
	})
	return out
}

func outcomeSymbol(mark *goquery.Selection) (string, bool) {
	switch {
	case mark.HasClass("last5w"):
		return "W", true
	case mark.HasClass("last5d"):
		return "D", true
	case mark.HasClass("last5l"):
		return "L", true
	default:
		return "", false
	}
}

// textField is the typed per-field lookup: a selector that matched nothing,
// or matched only blank text, yields an absent field.
func textField(sel *goquery.Selection) models.Field {
	if sel.Length() == 0 {
		return models.Absent()
	}
	return models.Present(Clean(sel.Text()))
}

func cellText(cells *goquery.Selection, i int) string {
	return Clean(cells.Eq(i).Text())
}
