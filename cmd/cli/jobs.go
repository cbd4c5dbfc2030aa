package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	jobsURL      string
	jobsMaxPages int
	jobsOutput   string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Paginated job scrape: walks ?page=N until a page comes up empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jobsURL == "" {
			return eris.New("--url is required")
		}

		maxPages := jobsMaxPages
		if maxPages == 0 {
			maxPages = cfg.Scrape.MaxPages
		}

		s, client := newScraper()
		defer client.Close()

		jobs, err := s.ScrapeJobs(cmd.Context(), jobsURL, maxPages)
		if err != nil {
			return err
		}

		out, closeOut, err := openOutput(jobsOutput)
		if err != nil {
			return err
		}
		defer closeOut()

		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		return enc.Encode(jobs)
	},
}

func init() {
	jobsCmd.Flags().StringVar(&jobsURL, "url", "", "base URL of the paginated job listing")
	jobsCmd.Flags().IntVar(&jobsMaxPages, "max-pages", 0, "page limit (default from config)")
	jobsCmd.Flags().StringVar(&jobsOutput, "output", "", "output file (default stdout)")
	rootCmd.AddCommand(jobsCmd)
}
