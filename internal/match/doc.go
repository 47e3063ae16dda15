// Package match provides the World Cup final records scraped from the finals table.
//
// Clean turns a located htmltable.Grid into an immutable Table of Records, applying the
// fixed column layout of the source table and normalizing historical country names. The
// Table answers the lookups the dashboard needs: distinct winners and years, per-country
// win counts, and the final played in a given year.
package match
