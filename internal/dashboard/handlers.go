package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/fifa-dash/internal/logger"
	"github.com/pfrederiksen/fifa-dash/internal/match"
)

type countryResponse struct {
	Country string `json:"country"`
	Wins    int    `json:"wins"`
	Text    string `json:"text"`
}

type yearResponse struct {
	Year  int    `json:"year"`
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

type matchesResponse struct {
	Count   int            `json:"count"`
	Matches []match.Record `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "country is required"})
		return
	}

	writeJSON(w, http.StatusOK, countryResponse{
		Country: country,
		Wins:    s.table.WinsFor(country),
		Text:    CountrySummary(s.table, country),
	})
}

func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	year, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "year must be an integer"})
		return
	}

	_, found := s.table.ByYear(year)
	writeJSON(w, http.StatusOK, yearResponse{
		Year:  year,
		Found: found,
		Text:  YearSummary(s.table, year),
	})
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	records := s.table.Records()
	writeJSON(w, http.StatusOK, matchesResponse{Count: len(records), Matches: records})
}

func (s *Server) handleWins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.wins)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response", logger.Fields{"status": status, "error": err.Error()})
	}
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument counts, times and logs each request to a route
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		elapsed := time.Since(start)
		s.metrics.IncrCounter("http.requests." + route)
		s.metrics.RecordTiming("http.latency."+route, elapsed)
		if rec.status >= http.StatusBadRequest {
			s.metrics.IncrCounter("http.errors." + route)
		}

		logger.Debug("handled request", logger.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"query":    r.URL.RawQuery,
			"status":   rec.status,
			"duration": elapsed.String(),
		})
	}
}
