// Package cli implements the command-line interface for fifa-dash.
//
// The cli package provides the Cobra-based commands: serve (the default) scrapes the
// finals table and serves the dashboard, preview prints the cleaned table and win counts
// as text or JSON, and query prints the country or year summary shown by the dashboard.
// It coordinates the scraper, match and dashboard packages.
package cli
