package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nepjol-fetch/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent searches and downloads",
	Long: `History lists the most recent searches and download attempts recorded
in the local SQLite history database.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Bool("searches", false, "show only searches")
	historyCmd.Flags().Bool("downloads", false, "show only downloads")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !a.cfg.History.Enabled {
		return fmt.Errorf("history recording is disabled in the configuration")
	}

	store, err := history.Open(a.cfg.History)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	onlySearches, _ := cmd.Flags().GetBool("searches")
	onlyDownloads, _ := cmd.Flags().GetBool("downloads")
	showAll := !onlySearches && !onlyDownloads

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if showAll || onlySearches {
		entries, err := store.RecentSearches()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "SEARCHES")
		fmt.Fprintln(w, "when\tquery\tresults")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\n", e.When.Local().Format("2006-01-02 15:04"), e.Query, e.Results)
		}
		fmt.Fprintln(w)
	}

	if showAll || onlyDownloads {
		entries, err := store.RecentDownloads()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "DOWNLOADS")
		fmt.Fprintln(w, "when\tstatus\ttitle\tpath")
		for _, e := range entries {
			status := "failed"
			if e.OK {
				status = "ok"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.When.Local().Format("2006-01-02 15:04"), status, e.Title, e.Path)
		}
	}
	return nil
}
