package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pfrederiksen/fifa-dash/internal/match"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	FetchedAt    time.Time        `json:"fetched_at"`
	Source       string           `json:"source"`
	Matches      []match.Record   `json:"matches"`
	MatchCount   int              `json:"match_count"`
	TotalMatches int              `json:"total_matches"`
	Wins         []match.WinCount `json:"wins,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as terminal tables
func writeText(w io.Writer, result *OutputResult) error {
	if result.MatchCount == 0 {
		fmt.Fprintln(w, "No finals found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Year", "Winners", "Runners-up"})
	for _, r := range result.Matches {
		t.AppendRow(table.Row{r.Year, r.Winners, r.RunnersUp})
	}
	t.AppendFooter(table.Row{"", "Showing", fmt.Sprintf("%d of %d", result.MatchCount, result.TotalMatches)})
	setStyle(t)
	t.Render()

	if len(result.Wins) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	wt := table.NewWriter()
	wt.SetOutputMirror(w)
	wt.AppendHeader(table.Row{"Country", "Wins"})
	for _, wc := range result.Wins {
		wt.AppendRow(table.Row{wc.Country, wc.Wins})
	}
	setStyle(wt)
	wt.Render()

	return nil
}

// setStyle applies the rounded style and keeps column names as scraped
func setStyle(t table.Writer) {
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
}
