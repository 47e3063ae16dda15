package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/fifa-dash/internal/dashboard"
	"github.com/pfrederiksen/fifa-dash/internal/logger"
	"github.com/pfrederiksen/fifa-dash/internal/match"
	"github.com/pfrederiksen/fifa-dash/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// DefaultAddr is where the dashboard listens unless --addr is given
const DefaultAddr = "127.0.0.1:8050"

// previewRows matches the head of the table printed before serving
const previewRows = 5

var (
	flagURL     string
	flagAddr    string
	flagVerbose bool
	flagFormat  string
	flagSort    string
	flagLimit   int
	flagCountry string
	flagYear    int
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fifa-dash",
		Short: "Serve a dashboard of FIFA World Cup finals",
		Long: `A tool that scrapes the list of FIFA World Cup finals from Wikipedia and serves
an interactive dashboard with a map of wins per country and per-country and per-year summaries.
Running without a subcommand is the same as "fifa-dash serve".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: configureLogging,
		RunE:              runServe,
	}

	cmd.PersistentFlags().StringVar(&flagURL, "url", scraper.FinalsURL, "Page to scrape the finals table from")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().StringVar(&flagAddr, "addr", DefaultAddr, "Address for the dashboard to listen on")

	cmd.AddCommand(newServeCmd(), newPreviewCmd(), newQueryCmd())

	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Scrape the finals table and serve the dashboard",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagAddr, "addr", DefaultAddr, "Address for the dashboard to listen on")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the cleaned finals table and win counts",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByYear), "Sort order: year, winner or runner-up")
	cmd.Flags().IntVar(&flagLimit, "limit", previewRows, "Number of finals to print (0 = all)")
	return cmd
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the dashboard summary for a country or a year",
		Args:  cobra.NoArgs,
		RunE:  runQuery,
	}
	cmd.Flags().StringVar(&flagCountry, "country", "", "Country to count World Cup wins for")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Year to describe the final of")
	cmd.MarkFlagsOneRequired("country", "year")
	cmd.MarkFlagsMutuallyExclusive("country", "year")
	return cmd
}

func configureLogging(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.Default().SetLevel(logger.LevelDebug)
	}
	return nil
}

// loadMatches scrapes and cleans the finals table
func loadMatches(ctx context.Context) (*match.Table, error) {
	sc := scraper.New(scraper.WithURL(flagURL))

	logger.Info("fetching finals table", logger.Fields{"url": sc.URL()})
	start := time.Now()

	table, err := sc.FetchMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading finals: %w", err)
	}

	logger.Info("loaded finals table", logger.Fields{
		"matches":  table.Len(),
		"winners":  len(table.Winners()),
		"duration": time.Since(start).String(),
	})
	return table, nil
}

// runServe scrapes the table once and serves the dashboard until interrupted
func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := loadMatches(ctx)
	if err != nil {
		return err
	}

	head := &OutputResult{
		FetchedAt:    time.Now().UTC(),
		Source:       flagURL,
		Matches:      limitRecords(table.Records(), previewRows),
		TotalMatches: table.Len(),
	}
	head.MatchCount = len(head.Matches)
	if err := WriteOutput(cmd.OutOrStdout(), head, FormatText); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}

	srv, err := dashboard.New(table)
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}

	return srv.ListenAndServe(ctx, flagAddr)
}

// runPreview prints the cleaned table
func runPreview(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	order := SortOrder(strings.ToLower(flagSort))
	if !order.Valid() {
		return fmt.Errorf("invalid sort order: %s (must be 'year', 'winner' or 'runner-up')", flagSort)
	}

	if flagLimit < 0 {
		return fmt.Errorf("invalid limit: %d (must be 0 or more)", flagLimit)
	}

	table, err := loadMatches(cmd.Context())
	if err != nil {
		return err
	}

	records := table.Records()
	sortRecords(records, order)

	result := &OutputResult{
		FetchedAt:    time.Now().UTC(),
		Source:       flagURL,
		Matches:      limitRecords(records, flagLimit),
		TotalMatches: table.Len(),
		Wins:         table.WinCounts(),
	}
	result.MatchCount = len(result.Matches)

	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runQuery prints the summary the dashboard would show for one selector value
func runQuery(cmd *cobra.Command, args []string) error {
	table, err := loadMatches(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("year") {
		fmt.Fprintln(out, dashboard.YearSummary(table, flagYear))
		return nil
	}

	country := strings.TrimSpace(flagCountry)
	if country == "" {
		return fmt.Errorf("--country must not be empty")
	}
	fmt.Fprintln(out, dashboard.CountrySummary(table, country))

	if table.WinsFor(country) == 0 {
		if suggestion, ok := suggestCountry(country, table.Teams()); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Did you mean %q?\n", suggestion)
		}
	}
	return nil
}

func limitRecords(records []match.Record, limit int) []match.Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
