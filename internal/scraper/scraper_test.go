package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/fifa-dash/internal/htmltable"
	"github.com/pfrederiksen/fifa-dash/internal/match"
)

const finalsTable = `
<html>
	<body>
		<table class="wikitable">
			<tr><th>Year</th><th>Winners</th><th>Score</th><th>Runners-up</th><th>Venue</th><th>Location</th><th>Attendance</th><th>Ref.</th></tr>
			<tr><th>1954</th><td>West Germany</td><td>3–2</td><td>Hungary</td><td>Wankdorf Stadium</td><td>Bern</td><td>62,500</td><td></td></tr>
			<tr><th>2022</th><td>Argentina</td><td>3–3</td><td>France</td><td>Lusail Stadium</td><td>Lusail</td><td>88,966</td><td></td></tr>
		</table>
	</body>
</html>
`

func TestFetchMatches(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantErr     error
		wantRows    int
	}{
		{
			name:        "successful fetch with finals",
			htmlContent: finalsTable,
			statusCode:  http.StatusOK,
			wantRows:    2,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantErr:    ErrFetchFailed,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrFetchFailed,
		},
		{
			name: "page without finals table",
			htmlContent: `
				<html>
					<body>
						<table class="wikitable"><tr><th>Symbol</th><th>Meaning</th></tr></table>
					</body>
				</html>
			`,
			statusCode: http.StatusOK,
			wantErr:    htmltable.ErrNoMatchingTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "fifa-dash") {
					t.Errorf("User-Agent = %q, should contain 'fifa-dash'", userAgent)
				}
				if r.Method != http.MethodGet {
					t.Errorf("Method = %q, want GET", r.Method)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			s := New(WithURL(server.URL))

			table, err := s.FetchMatches(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FetchMatches() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchMatches() unexpected error: %v", err)
			}
			if table.Len() != tt.wantRows {
				t.Errorf("FetchMatches() returned %d rows, want %d", table.Len(), tt.wantRows)
			}
		})
	}
}

func TestFetchPage_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	s := New(WithURL(url))
	_, err := s.FetchPage(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("FetchPage() error = %v, want ErrFetchFailed", err)
	}
}

func TestFetchPage_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	s := New(WithURL(server.URL), WithTimeout(50*time.Millisecond))
	_, err := s.FetchPage(context.Background())
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("FetchPage() error = %v, want ErrFetchFailed", err)
	}
}

func TestFetchPage_NoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := New(WithURL(server.URL))
	if _, err := s.FetchPage(context.Background()); err == nil {
		t.Fatal("FetchPage() expected error, got nil")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server received %d requests, want 1", n)
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s == nil {
		t.Fatal("New() returned nil")
	}

	if s.client == nil {
		t.Error("scraper client is nil")
	}

	if s.URL() != FinalsURL {
		t.Errorf("scraper url = %q, want %q", s.URL(), FinalsURL)
	}

	if got := s.client.Header.Get("User-Agent"); got != UserAgent {
		t.Errorf("User-Agent header = %q, want %q", got, UserAgent)
	}
}

func TestParseMatches_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/finals.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := New()
	table, err := s.parseMatches(context.Background(), strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parseMatches failed: %v", err)
	}

	if table.Len() != 22 {
		t.Fatalf("parseMatches returned %d rows, want 22", table.Len())
	}

	expected := map[int]match.Record{
		1930: {Year: 1930, Winners: "Uruguay", RunnersUp: "Argentina"},
		1950: {Year: 1950, Winners: "Uruguay", RunnersUp: "Brazil"},
		1954: {Year: 1954, Winners: "Germany", RunnersUp: "Hungary"},
		1966: {Year: 1966, Winners: "England", RunnersUp: "Germany"},
		2022: {Year: 2022, Winners: "Argentina", RunnersUp: "France"},
	}
	for year, want := range expected {
		got, ok := table.ByYear(year)
		if !ok {
			t.Errorf("year %d missing from table", year)
			continue
		}
		if got != want {
			t.Errorf("ByYear(%d) = %+v, want %+v", year, got, want)
		}
	}

	if _, ok := table.ByYear(2026); ok {
		t.Error("upcoming 2026 final should have been dropped")
	}

	for _, r := range table.Records() {
		if r.Winners == "" || r.RunnersUp == "" {
			t.Errorf("record %+v has an empty team", r)
		}
		if r.Winners == "West Germany" || r.RunnersUp == "West Germany" {
			t.Errorf("record %+v still uses West Germany", r)
		}
	}

	if wins := table.WinsFor("Brazil"); wins != 5 {
		t.Errorf("WinsFor(Brazil) = %d, want 5", wins)
	}
	if wins := table.WinsFor("Germany"); wins != 4 {
		t.Errorf("WinsFor(Germany) = %d, want 4", wins)
	}
}

func TestParseMatches_BadLayout(t *testing.T) {
	html := `
		<table class="wikitable">
			<tr><th>Year</th><th>Winners</th><th>Runners-up</th></tr>
			<tr><td>2022</td><td>Argentina</td><td>France</td></tr>
		</table>
	`

	s := New()
	_, err := s.parseMatches(context.Background(), strings.NewReader(html))
	if !errors.Is(err, match.ErrColumnLayout) {
		t.Errorf("parseMatches() error = %v, want ErrColumnLayout", err)
	}
}

func TestParseMatches_RoundTrip(t *testing.T) {
	input := []match.Record{
		{Year: 1930, Winners: "Uruguay", RunnersUp: "Argentina"},
		{Year: 1954, Winners: "West Germany", RunnersUp: "Hungary"},
		{Year: 1966, Winners: "England", RunnersUp: "West Germany"},
		{Year: 2010, Winners: "Spain", RunnersUp: "Netherlands"},
		{Year: 2022, Winners: "Argentina", RunnersUp: "France"},
	}

	var b strings.Builder
	b.WriteString(`<html><body><table class="wikitable">`)
	b.WriteString(`<tr><th>Year</th><th>Winners</th><th>Score</th><th>Runners-up</th><th>Venue</th><th>Location</th><th>Attendance</th><th>Ref.</th></tr>`)
	for _, r := range input {
		fmt.Fprintf(&b, `<tr><th>%d</th><td>%s</td><td>1–0</td><td>%s</td><td>Stadium</td><td>City</td><td>1</td><td></td></tr>`,
			r.Year, r.Winners, r.RunnersUp)
	}
	b.WriteString(`</table></body></html>`)

	s := New()
	table, err := s.parseMatches(context.Background(), strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("parseMatches() error: %v", err)
	}

	want := make([]match.Record, len(input))
	for i, r := range input {
		want[i] = match.Record{Year: r.Year, Winners: match.NormalizeCountry(r.Winners), RunnersUp: match.NormalizeCountry(r.RunnersUp)}
	}
	if diff := cmp.Diff(want, table.Records()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
