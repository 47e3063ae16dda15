package match

import (
	"sort"
)

// Record is one World Cup final
type Record struct {
	Year      int    `json:"year"`
	Winners   string `json:"winners"`
	RunnersUp string `json:"runners_up"`
}

// WinCount is the number of finals a country has won
type WinCount struct {
	Country string `json:"country"`
	Wins    int    `json:"wins"`
}

// Table is an ordered, read-only set of finals.
// It is safe for concurrent use because nothing mutates it after construction.
type Table struct {
	records []Record
}

// NewTable creates a Table holding a copy of records, in the given order
func NewTable(records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the records in source order
func (t *Table) Records() []Record {
	cp := make([]Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// Winners returns every distinct winning country, sorted alphabetically
func (t *Table) Winners() []string {
	seen := make(map[string]bool)
	winners := make([]string, 0)
	for _, r := range t.records {
		if !seen[r.Winners] {
			seen[r.Winners] = true
			winners = append(winners, r.Winners)
		}
	}
	sort.Strings(winners)
	return winners
}

// Teams returns every distinct country that reached a final, sorted alphabetically
func (t *Table) Teams() []string {
	seen := make(map[string]bool)
	teams := make([]string, 0)
	for _, r := range t.records {
		for _, team := range []string{r.Winners, r.RunnersUp} {
			if !seen[team] {
				seen[team] = true
				teams = append(teams, team)
			}
		}
	}
	sort.Strings(teams)
	return teams
}

// Years returns every distinct year, ascending
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, r := range t.records {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// WinsFor counts the finals won by country. Unknown countries have zero wins.
func (t *Table) WinsFor(country string) int {
	count := 0
	for _, r := range t.records {
		if r.Winners == country {
			count++
		}
	}
	return count
}

// ByYear returns the first final played in year
func (t *Table) ByYear(year int) (Record, bool) {
	for _, r := range t.records {
		if r.Year == year {
			return r, true
		}
	}
	return Record{}, false
}

// WinCounts returns one entry per distinct winner, most wins first.
// Countries with the same number of wins are ordered by name.
func (t *Table) WinCounts() []WinCount {
	counts := make(map[string]int)
	for _, r := range t.records {
		counts[r.Winners]++
	}

	result := make([]WinCount, 0, len(counts))
	for country, wins := range counts {
		result = append(result, WinCount{Country: country, Wins: wins})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Wins != result[j].Wins {
			return result[i].Wins > result[j].Wins
		}
		return result[i].Country < result[j].Country
	})
	return result
}
