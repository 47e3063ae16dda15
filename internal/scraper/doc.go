// Package scraper fetches the FIFA World Cup finals page and extracts its finals table.
//
// The scraper issues a single GET for the Wikipedia "List of FIFA World Cup finals" page,
// locates the first data table with Winners and Runners-up columns, and cleans it into a
// match.Table. Any failure is returned to the caller; there are no retries.
package scraper
