package match

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/fifa-dash/internal/htmltable"
)

// Columns is the fixed positional layout of the source finals table
var Columns = []string{"Year", "Winners", "Score", "Runners-up", "Venue", "Location", "Attendance", "Ref"}

const (
	colYear      = 0
	colWinners   = 1
	colRunnersUp = 3
)

// countryAliases maps historical team names to the name used for the country today
var countryAliases = map[string]string{
	"West Germany": "Germany",
}

// ErrColumnLayout is returned when a table does not have the expected column layout
var ErrColumnLayout = errors.New("unexpected column layout")

var yearPattern = regexp.MustCompile(`\d{4}`)

// Clean converts the located finals grid into a Table.
//
// Columns are renamed positionally to Columns and projected to Year, Winners and
// Runners-up. Rows missing a winner, a runner-up or a year are dropped, as are placeholder
// rows where one cell spans both team columns. Aliased country names are replaced in both
// team columns.
func Clean(g *htmltable.Grid) (*Table, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: no table", ErrColumnLayout)
	}
	if err := checkLayout(g); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(g.Rows))
	for _, row := range g.Rows {
		winners := strings.TrimSpace(row[colWinners])
		runnersUp := strings.TrimSpace(row[colRunnersUp])
		if winners == "" || runnersUp == "" || winners == runnersUp {
			continue
		}

		year, ok := parseYear(row[colYear])
		if !ok {
			continue
		}

		records = append(records, Record{
			Year:      year,
			Winners:   NormalizeCountry(winners),
			RunnersUp: NormalizeCountry(runnersUp),
		})
	}

	return NewTable(records), nil
}

// checkLayout rejects grids the positional rename would mislabel
func checkLayout(g *htmltable.Grid) error {
	if g.Width() != len(Columns) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrColumnLayout, g.Width(), len(Columns))
	}
	for _, i := range []int{colWinners, colRunnersUp} {
		if g.Header[i] != Columns[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrColumnLayout, i, g.Header[i], Columns[i])
		}
	}
	return nil
}

// NormalizeCountry replaces a historical team name with its current name.
// Only exact matches are replaced.
func NormalizeCountry(name string) string {
	if alias, ok := countryAliases[name]; ok {
		return alias
	}
	return name
}

func parseYear(cell string) (int, bool) {
	match := yearPattern.FindString(cell)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}
