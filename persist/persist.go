// Package persist writes the run artifacts: the JSON payload and the
// one-line-per-run log. Both are written every run, including failed and
// zero-match runs, so a caller always finds a consistent artifact.
package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/drnewske/winscrape/models"
)

// runLogTimeLayout matches the run log's bracketed GMT stamp.
const runLogTimeLayout = "2006-01-02 15:04 GMT"

// WriteSummary serialises the summary as two-space-indented UTF-8 JSON and
// replaces the file at path atomically enough for a single-writer run.
func WriteSummary(path string, summary models.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// AppendSuccess appends the success line for a run that extracted matches.
func AppendSuccess(path string, matches int, now time.Time) error {
	line := fmt.Sprintf("[%s] Success. Scraped %d matches.\n",
		now.UTC().Format(runLogTimeLayout), matches)
	return appendLine(path, line)
}

// AppendFailure appends a failure line with a short reason. A zero-match
// run logs a failure reason while still counting as a successful run.
func AppendFailure(path string, reason string, now time.Time) error {
	line := fmt.Sprintf("[%s] Failed. Reason: %s\n",
		now.UTC().Format(runLogTimeLayout), reason)
	return appendLine(path, line)
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append run log: %w", err)
	}
	return nil
}
