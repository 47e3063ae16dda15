package htmltable

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxSpan is the largest colspan/rowspan honoured, matching the HTML limit for colspan.
const maxSpan = 1000

// ErrEmptyTable is returned when a table has no rows.
var ErrEmptyTable = errors.New("table has no rows")

// Grid is the rectangular parse of one HTML table
type Grid struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return len(g.Header)
}

// Index returns the position of the named header column, or -1.
// Header names are matched exactly.
func (g *Grid) Index(name string) int {
	for i, h := range g.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumns reports whether every name is present in the header
func (g *Grid) HasColumns(names ...string) bool {
	for _, name := range names {
		if g.Index(name) < 0 {
			return false
		}
	}
	return true
}

// pendingCell is a rowspan cell still covering rows below the one it was declared in
type pendingCell struct {
	text string
	left int
}

// Parse converts a table selection into a Grid.
//
// The first row becomes the header when all of its cells are th elements. Rows of nested
// tables are ignored.
func Parse(table *goquery.Selection) (*Grid, error) {
	if table.Length() == 0 {
		return nil, ErrEmptyTable
	}
	root := table.Get(0)

	rows := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").Get(0) == root
	})
	if rows.Length() == 0 {
		return nil, ErrEmptyTable
	}

	var (
		grid      [][]string
		allHeader []bool
		width     int
	)
	pending := make(map[int]pendingCell)

	rows.Each(func(_ int, tr *goquery.Selection) {
		var out []string
		col := 0
		onlyTH := true

		// takePending copies rowspan cells from earlier rows into the current position
		takePending := func() {
			for {
				p, ok := pending[col]
				if !ok {
					return
				}
				out = append(out, p.text)
				p.left--
				if p.left == 0 {
					delete(pending, col)
				} else {
					pending[col] = p
				}
				col++
			}
		}

		cells := tr.ChildrenFiltered("th, td")
		cells.Each(func(_ int, cell *goquery.Selection) {
			takePending()

			if goquery.NodeName(cell) != "th" {
				onlyTH = false
			}

			text := CellText(cell.Get(0))
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")
			for k := 0; k < colspan; k++ {
				out = append(out, text)
				if rowspan > 1 {
					pending[col] = pendingCell{text: text, left: rowspan - 1}
				}
				col++
			}
		})

		// Rowspan cells to the right of the last declared cell, possibly with gaps.
		last := -1
		for c := range pending {
			if c > last {
				last = c
			}
		}
		for col <= last {
			if _, ok := pending[col]; ok {
				takePending()
				continue
			}
			out = append(out, "")
			col++
		}

		if len(out) == 0 {
			return
		}
		if len(out) > width {
			width = len(out)
		}
		grid = append(grid, out)
		allHeader = append(allHeader, onlyTH && cells.Length() > 0)
	})

	if len(grid) == 0 {
		return nil, ErrEmptyTable
	}

	for i := range grid {
		for len(grid[i]) < width {
			grid[i] = append(grid[i], "")
		}
	}

	g := &Grid{}
	if allHeader[0] {
		g.Header = grid[0]
		g.Rows = grid[1:]
	} else {
		g.Header = make([]string, width)
		g.Rows = grid
	}
	return g, nil
}

func spanAttr(cell *goquery.Selection, name string) int {
	v, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

// CellText returns the visible text of a node with whitespace collapsed.
// Line breaks become spaces; hidden elements, footnote markers, styles and scripts are skipped.
func CellText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	visibleText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func visibleText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			b.WriteByte(' ')
			return
		case atom.Style, atom.Script:
			return
		case atom.Sup:
			if hasClass(n, "reference") {
				return
			}
		}
		if isHidden(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visibleText(c, b)
	}
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		style := strings.ToLower(strings.Join(strings.Fields(a.Val), ""))
		if strings.Contains(style, "display:none") {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
