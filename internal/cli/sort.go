package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/fifa-dash/internal/match"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByYear     SortOrder = "year"
	SortByWinner   SortOrder = "winner"
	SortByRunnerUp SortOrder = "runner-up"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	switch o {
	case SortByYear, SortByWinner, SortByRunnerUp:
		return true
	}
	return false
}

// sortRecords sorts finals in place; ties fall back to year
func sortRecords(records []match.Record, order SortOrder) {
	switch order {
	case SortByYear:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Year < records[j].Year
		})
	case SortByWinner:
		sort.SliceStable(records, func(i, j int) bool {
			return compareBy(records[i].Winners, records[j].Winners, records[i], records[j])
		})
	case SortByRunnerUp:
		sort.SliceStable(records, func(i, j int) bool {
			return compareBy(records[i].RunnersUp, records[j].RunnersUp, records[i], records[j])
		})
	}
}

// compareBy orders by a case-insensitive team name, then by year
func compareBy(a, b string, ri, rj match.Record) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return ri.Year < rj.Year
}
