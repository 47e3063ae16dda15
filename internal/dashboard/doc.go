// Package dashboard serves the World Cup finals dashboard over HTTP.
//
// The page is rendered once from the match table: a choropleth of wins per country, a
// country selector and a year selector, each with an output region. Selector changes call
// small JSON endpoints backed by CountrySummary and YearSummary, which are pure functions
// of the table and the selected value.
package dashboard
