package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nepjol-fetch/internal/fetch"
	"github.com/pdiddy/nepjol-fetch/internal/scrape"
)

var searchCmd = &cobra.Command{
	Use:   "search [query terms...]",
	Short: "Search NepJOL and list matching articles",
	Long: `Search runs a one-shot query against the NepJOL site-wide search and
prints the matching articles. Optional author and date-range filters narrow
the query; --save writes the results to a text file and --json emits them
as JSON instead of the numbered list.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("author", "", "filter by author name")
	searchCmd.Flags().String("from", "", "publication date range start (YYYY-MM-DD)")
	searchCmd.Flags().String("to", "", "publication date range end (YYYY-MM-DD)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("save", false, "save results to a text file named after the query")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	author, _ := cmd.Flags().GetString("author")
	if query == "" && author == "" {
		return fmt.Errorf("provide query terms or an --author filter")
	}

	from, err := parseDateFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, err := parseDateFlag(cmd, "to")
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	client := fetch.NewClient(a.cfg.Search.HTTPConfig, a.logger)
	q := scrape.Query{Text: query, Author: author, From: from, To: to}

	results := scrape.Search(context.Background(), client, a.cfg.Search, q, a.logger)
	recordSearch(a, query, len(results))

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		displayResults(os.Stdout, query, results)
	}

	if save, _ := cmd.Flags().GetBool("save"); save && len(results) > 0 {
		path, err := saveResults(a, query, results)
		if err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", path)
	}
	return nil
}

// parseDateFlag reads a YYYY-MM-DD flag, zero time when unset.
func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", name, raw)
	}
	return t, nil
}
