// Package htmltable locates and parses data tables in HTML documents.
//
// Tables are parsed into a rectangular Grid: colspan and rowspan cells are expanded, hidden
// elements and footnote markers are dropped from cell text, and short rows are padded. Locate
// picks the first table carrying the data-table marker class whose header row has every
// required column.
package htmltable
