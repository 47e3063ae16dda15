package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/fifa-dash/internal/match"
)

func years(records []match.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Year
	}
	return out
}

func TestSortRecords(t *testing.T) {
	base := []match.Record{
		{Year: 2022, Winners: "Argentina", RunnersUp: "France"},
		{Year: 1958, Winners: "Brazil", RunnersUp: "Sweden"},
		{Year: 1978, Winners: "Argentina", RunnersUp: "Netherlands"},
		{Year: 2018, Winners: "France", RunnersUp: "Croatia"},
	}

	tests := []struct {
		order SortOrder
		want  []int
	}{
		{SortByYear, []int{1958, 1978, 2018, 2022}},
		{SortByWinner, []int{1978, 2022, 1958, 2018}},
		{SortByRunnerUp, []int{2018, 2022, 1978, 1958}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			records := append([]match.Record(nil), base...)
			sortRecords(records, tt.order)
			if diff := cmp.Diff(tt.want, years(records)); diff != "" {
				t.Errorf("sortRecords(%s) mismatch (-want +got):\n%s", tt.order, diff)
			}
		})
	}
}

func TestSortOrder_Valid(t *testing.T) {
	for _, o := range []SortOrder{SortByYear, SortByWinner, SortByRunnerUp} {
		if !o.Valid() {
			t.Errorf("%q.Valid() = false, want true", o)
		}
	}
	if SortOrder("score").Valid() {
		t.Error(`"score".Valid() = true, want false`)
	}
}
