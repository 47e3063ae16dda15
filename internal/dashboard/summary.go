package dashboard

import (
	"fmt"

	"github.com/pfrederiksen/fifa-dash/internal/match"
)

// Initial selector values
const (
	DefaultCountry = "Brazil"
	DefaultYear    = 2022
)

// NoDataText is shown when no final was played in the selected year
const NoDataText = "No data for this year."

// CountrySummary describes how many finals country has won
func CountrySummary(t *match.Table, country string) string {
	return fmt.Sprintf("%s has won the World Cup %d time(s).", country, t.WinsFor(country))
}

// YearSummary describes the final played in year, or reports that there was none
func YearSummary(t *match.Table, year int) string {
	r, ok := t.ByYear(year)
	if !ok {
		return NoDataText
	}
	return fmt.Sprintf("In %d, %s won against %s.", year, r.Winners, r.RunnersUp)
}
