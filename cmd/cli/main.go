package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smartscrape/internal/config"
	"smartscrape/internal/crawler"
	"smartscrape/internal/scraper"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "smartscrape",
	Short:        "Classify a web page and extract typed records from it",
	SilenceUsage: true,
	Long:         "Fetches a page, detects its primary content type (jobs, products, articles, tables, links, images or general text) and extracts de-duplicated structured records, exportable as JSON or CSV.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newScraper builds the pipeline with the configured HTTP fetcher. The
// returned client must be closed when the command finishes.
func newScraper() (*scraper.Scraper, *crawler.HTTPClient) {
	client := crawler.NewHTTPClient(
		cfg.Fetch.Timeout(),
		cfg.Fetch.DialTimeout(),
		cfg.Fetch.SizeCapBytes,
		cfg.Fetch.RatePerSec,
	)
	return scraper.New(client), client
}

// openOutput returns the writer for a command's result, defaulting to stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
