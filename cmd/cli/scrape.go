package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smartscrape/internal/ioformats"
	"smartscrape/internal/models"
	"smartscrape/internal/store"
)

var (
	scrapeURL    string
	scrapeInput  string
	scrapeFormat string
	scrapeOutput string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape one URL (or a batch file) and export the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if scrapeURL == "" && scrapeInput == "" {
			return eris.New("either --url or --input is required")
		}
		if scrapeFormat != "json" && scrapeFormat != "csv" {
			return eris.Errorf("unknown format %q (want json or csv)", scrapeFormat)
		}

		s, client := newScraper()
		defer client.Close()

		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		out, closeOut, err := openOutput(scrapeOutput)
		if err != nil {
			return err
		}
		defer closeOut()

		ctx := cmd.Context()

		if scrapeInput != "" {
			return runBatch(ctx, s, st, out)
		}

		result, err := runStored(ctx, s, st, scrapeURL)
		if err != nil {
			// a failed scrape yields a single error payload, nothing else
			_ = json.NewEncoder(out).Encode(map[string]string{"error": err.Error()})
			return err
		}

		if scrapeFormat == "csv" {
			return ioformats.WriteCSV(out, result)
		}
		return ioformats.WriteJSON(out, result)
	},
}

// runStored runs one scrape and records it in the history log.
func runStored(ctx context.Context, s scrapeRunner, st *store.Store, url string) (*models.ScrapeResult, error) {
	runID, err := st.Create(ctx, url)
	if err != nil {
		return nil, err
	}
	result, err := s.Scrape(ctx, url)
	if err != nil {
		if ferr := st.Fail(ctx, runID, err); ferr != nil {
			zap.L().Warn("record failed run", zap.Error(ferr))
		}
		return nil, err
	}
	if err := st.Finish(ctx, runID, result); err != nil {
		zap.L().Warn("record finished run", zap.Error(err))
	}
	return result, nil
}

type scrapeRunner interface {
	Scrape(ctx context.Context, url string) (*models.ScrapeResult, error)
}

// runBatch scrapes each input URL sequentially and streams NDJSON records.
// Per-URL failures are recorded inline; the batch keeps going.
func runBatch(ctx context.Context, s scrapeRunner, st *store.Store, out io.Writer) error {
	urls, err := ioformats.ReadURLs(scrapeInput)
	if err != nil {
		return err
	}

	type rec struct {
		URL    string               `json:"url"`
		Result *models.ScrapeResult `json:"result,omitempty"`
		Error  string               `json:"error,omitempty"`
	}

	records := make([]any, 0, len(urls))
	for _, u := range urls {
		result, err := runStored(ctx, s, st, u)
		if err != nil {
			records = append(records, rec{URL: u, Error: err.Error()})
			continue
		}
		records = append(records, rec{URL: u, Result: result})
	}
	return ioformats.WriteNDJSON(out, records)
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeURL, "url", "", "URL to scrape")
	scrapeCmd.Flags().StringVar(&scrapeInput, "input", "", "batch input file (csv with 'url' column or ndjson)")
	scrapeCmd.Flags().StringVar(&scrapeFormat, "format", "json", "output format: json or csv")
	scrapeCmd.Flags().StringVar(&scrapeOutput, "output", "", "output file (default stdout)")
	rootCmd.AddCommand(scrapeCmd)
}
