package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/fifa-dash/internal/htmltable"
	"github.com/pfrederiksen/fifa-dash/internal/match"
	"github.com/pfrederiksen/fifa-dash/internal/scraper"
)

// Checks that the live finals page still has the layout the cleaner expects.
func main() {
	sc := scraper.New()

	page, err := sc.FetchPage(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching page: %v\n", err)
		os.Exit(1)
	}

	grid, err := htmltable.Locate(strings.NewReader(page))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating table: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Header:   %q\n", grid.Header)
	fmt.Printf("Expected: %q\n", match.Columns)
	fmt.Printf("Rows:     %d\n", len(grid.Rows))

	table, err := match.Clean(grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Layout check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ %d finals after cleaning (%d rows dropped)\n", table.Len(), len(grid.Rows)-table.Len())
	for _, wc := range table.WinCounts() {
		fmt.Printf("  %-12s %d\n", wc.Country, wc.Wins)
	}
}
