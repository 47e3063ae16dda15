package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pfrederiksen/fifa-dash/internal/htmltable"
	"github.com/pfrederiksen/fifa-dash/internal/logger"
	"github.com/pfrederiksen/fifa-dash/internal/match"
)

const (
	FinalsURL = "https://en.wikipedia.org/wiki/List_of_FIFA_World_Cup_finals"
	UserAgent = "fifa-dash/1.0 (github.com/pfrederiksen/fifa-dash)"
	Timeout   = 30 * time.Second
)

// ErrFetchFailed is returned when the finals page cannot be retrieved
var ErrFetchFailed = errors.New("fetch failed")

var tracer = otel.Tracer("fifa-dash/internal/scraper")

// Scraper handles fetching and parsing the finals page
type Scraper struct {
	client *resty.Client
	url    string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the page URL
func WithURL(url string) Option {
	return func(s *Scraper) {
		s.url = url
	}
}

// WithTimeout overrides the request timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.SetTimeout(d)
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	client := resty.New()
	client.SetHeader("User-Agent", UserAgent)
	client.SetTimeout(Timeout)

	s := &Scraper{
		client: client,
		url:    FinalsURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchPage retrieves the page body. Network errors, timeouts and non-2xx
// responses are reported as ErrFetchFailed.
func (s *Scraper) FetchPage(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchPage", trace.WithAttributes(attribute.String("url", s.url)))
	defer span.End()

	start := time.Now()
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	logger.RecordTiming("scrape.fetch", time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", fmt.Errorf("%w: fetching page: %w", ErrFetchFailed, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if !resp.IsSuccess() {
		span.SetStatus(codes.Error, "unexpected status code")
		return "", fmt.Errorf("%w: unexpected status code: %d", ErrFetchFailed, resp.StatusCode())
	}

	logger.Debug("fetched finals page", logger.Fields{
		"url":   s.url,
		"bytes": len(resp.Body()),
	})
	return resp.String(), nil
}

// FetchMatches fetches the finals page and returns the cleaned match table
func (s *Scraper) FetchMatches(ctx context.Context) (*match.Table, error) {
	page, err := s.FetchPage(ctx)
	if err != nil {
		return nil, err
	}
	return s.parseMatches(ctx, strings.NewReader(page))
}

// parseMatches locates the finals table in an HTML document and cleans it
func (s *Scraper) parseMatches(ctx context.Context, r io.Reader) (*match.Table, error) {
	_, span := tracer.Start(ctx, "parseMatches")
	defer span.End()

	grid, err := htmltable.Locate(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "locating finals table")
		return nil, fmt.Errorf("locating finals table: %w", err)
	}

	logger.Debug("located finals table", logger.Fields{
		"columns": grid.Header,
		"rows":    len(grid.Rows),
	})

	table, err := match.Clean(grid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cleaning finals table")
		return nil, fmt.Errorf("cleaning finals table: %w", err)
	}

	span.SetAttributes(attribute.Int("matches", table.Len()))
	logger.SetGauge("matches.rows", float64(table.Len()))
	logger.SetGauge("matches.dropped", float64(len(grid.Rows)-table.Len()))

	return table, nil
}
