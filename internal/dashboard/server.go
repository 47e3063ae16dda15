package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/pfrederiksen/fifa-dash/internal/logger"
	"github.com/pfrederiksen/fifa-dash/internal/match"
)

const (
	Title    = "FIFA World Cup Dashboard"
	MapTitle = "World Cup Wins by Country"

	shutdownTimeout = 5 * time.Second
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// mapData is the choropleth series; countries without wins are left out so they stay unshaded
type mapData struct {
	Countries []string `json:"countries"`
	Wins      []int    `json:"wins"`
}

type pageData struct {
	Title           string
	MapTitle        string
	Map             mapData
	Countries       []string
	SelectedCountry string
	CountryText     string
	Years           []int
	SelectedYear    int
	YearText        string
}

// Server serves the dashboard for one immutable match table
type Server struct {
	table   *match.Table
	wins    []match.WinCount
	page    []byte
	metrics *logger.Metrics
	mux     *http.ServeMux
}

// Option configures a Server
type Option func(*Server)

// WithMetrics records request metrics in m instead of the default tracker
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New builds the dashboard for table. The page is rendered once here.
func New(table *match.Table, opts ...Option) (*Server, error) {
	s := &Server{
		table:   table,
		wins:    table.WinCounts(),
		metrics: logger.DefaultMetrics(),
		mux:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	page, err := s.render()
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	s.page = page

	s.routes()
	return s, nil
}

func (s *Server) render() ([]byte, error) {
	data := pageData{
		Title:           Title,
		MapTitle:        MapTitle,
		Map:             mapData{Countries: make([]string, 0, len(s.wins)), Wins: make([]int, 0, len(s.wins))},
		Countries:       s.table.Winners(),
		SelectedCountry: DefaultCountry,
		CountryText:     CountrySummary(s.table, DefaultCountry),
		Years:           s.table.Years(),
		SelectedYear:    DefaultYear,
		YearText:        YearSummary(s.table, DefaultYear),
	}
	for _, wc := range s.wins {
		data.Map.Countries = append(data.Map.Countries, wc.Country)
		data.Map.Wins = append(data.Map.Wins, wc.Wins)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.instrument("index", s.handleIndex))
	s.mux.HandleFunc("GET /api/country", s.instrument("country", s.handleCountry))
	s.mux.HandleFunc("GET /api/year", s.instrument("year", s.handleYear))
	s.mux.HandleFunc("GET /api/matches", s.instrument("matches", s.handleMatches))
	s.mux.HandleFunc("GET /api/wins", s.instrument("wins", s.handleWins))
	s.mux.HandleFunc("GET /debug/metrics", s.instrument("metrics", s.handleMetrics))
}

// Handler returns the HTTP handler for the dashboard
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe listens on addr and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("serving dashboard", logger.Fields{
		"addr":    ln.Addr().String(),
		"matches": s.table.Len(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down dashboard", nil)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}
