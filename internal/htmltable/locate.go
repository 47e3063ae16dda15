package htmltable

import (
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// MarkerClass is the class the source site puts on its data tables
const MarkerClass = "wikitable"

// Required header columns of the finals table
const (
	ColumnWinners   = "Winners"
	ColumnRunnersUp = "Runners-up"
)

// ErrNoMatchingTable is returned when no data table has the required columns
var ErrNoMatchingTable = errors.New("no table with Winners and Runners-up columns")

// Locate parses an HTML document and returns the first data table whose header contains
// both the Winners and Runners-up columns.
func Locate(r io.Reader) (*Grid, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return LocateIn(doc.Selection, ColumnWinners, ColumnRunnersUp)
}

// LocateIn searches the marked tables under sel, in document order, for the first one
// whose header has every column in required.
// Tables that cannot be parsed are skipped.
func LocateIn(sel *goquery.Selection, required ...string) (*Grid, error) {
	var found *Grid
	sel.Find("table." + MarkerClass).EachWithBreak(func(_ int, table *goquery.Selection) bool {
		grid, err := Parse(table)
		if err != nil {
			return true
		}
		if grid.HasColumns(required...) {
			found = grid
			return false
		}
		return true
	})

	if found == nil {
		return nil, ErrNoMatchingTable
	}
	return found, nil
}
