// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/pdiddy/nepjol-fetch/internal/download"
	"github.com/pdiddy/nepjol-fetch/internal/export"
	"github.com/pdiddy/nepjol-fetch/internal/fetch"
	"github.com/pdiddy/nepjol-fetch/internal/history"
	"github.com/pdiddy/nepjol-fetch/internal/resolve"
	"github.com/pdiddy/nepjol-fetch/internal/scrape"
	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// runInteractive is the root command: prompt for a query, list results,
// then loop on article selection until the user saves or quits.
func runInteractive(cmd *cobra.Command, args []string) (err error) {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	defer fmt.Printf("\nProgram finished. Log file created: %s\n", a.logPath)

	// The shell never surfaces a raw fault to the user; anything
	// unexpected is logged and reported as a plain message.
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("unexpected error in interactive session", "panic", r)
			fmt.Printf("An unexpected error occurred: %v\n", r)
			err = nil
		}
	}()

	a.logger.Info("interactive session started")

	sh := &shell{app: a, in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	sh.run(context.Background())
	return nil
}

// shell drives the interactive session over plain line-based I/O.
type shell struct {
	app *app
	in  *bufio.Scanner
	out io.Writer
}

func (sh *shell) run(ctx context.Context) {
	query := strings.TrimSpace(sh.prompt("Enter your search term: "))
	sh.app.logger.Info("user input query", "query", query)

	if query == "" {
		sh.app.logger.Warn("empty query entered")
		fmt.Fprintln(sh.out, "Please enter a valid search term.")
		return
	}

	client := fetch.NewClient(sh.app.cfg.Search.HTTPConfig, sh.app.logger)
	q := scrape.Query{Text: query}

	var results []types.ArticleSummary
	sh.withSpinner(" searching...", func() {
		results = scrape.Search(ctx, client, sh.app.cfg.Search, q, sh.app.logger)
	})
	recordSearch(sh.app, query, len(results))

	displayResults(sh.out, query, results)
	if len(results) == 0 {
		return
	}

	sh.selectionLoop(ctx, query, results)
}

// selectionLoop accepts a 1-based result index, "s" to save all results to
// a text file, or "q" to quit. Invalid input re-prompts.
func (sh *shell) selectionLoop(ctx context.Context, query string, results []types.ArticleSummary) {
	for {
		choice := strings.TrimSpace(sh.prompt("Enter the number of the article to view/download (or 's' to save all to file, 'q' to quit): "))
		sh.app.logger.Info("user choice", "choice", choice)

		switch strings.ToLower(choice) {
		case "q":
			sh.app.logger.Info("user chose to quit")
			return
		case "s":
			sh.app.logger.Info("user chose to save results to file")
			path, err := saveResults(sh.app, query, results)
			if err != nil {
				fmt.Fprintf(sh.out, "Error saving file: %v\n", err)
			} else {
				fmt.Fprintf(sh.out, "Results saved to: %s\n", path)
			}
			return
		}

		index, err := strconv.Atoi(choice)
		if err != nil {
			sh.app.logger.Warn("invalid input, not a number", "choice", choice)
			fmt.Fprintln(sh.out, "Invalid input. Please enter a number, 's', or 'q'.")
			continue
		}
		if index < 1 || index > len(results) {
			sh.app.logger.Warn("article number out of range", "choice", choice)
			fmt.Fprintln(sh.out, "Invalid number. Please try again.")
			continue
		}

		sh.downloadFlow(ctx, results[index-1])
	}
}

// downloadFlow resolves the selected article's PDF link and, on the
// user's confirmation, downloads it to the output directory.
func (sh *shell) downloadFlow(ctx context.Context, article types.ArticleSummary) {
	sh.app.logger.Info("selected article", "title", article.DisplayTitle())
	fmt.Fprintf(sh.out, "\nSelected article: %s\n", article.DisplayTitle())

	if article.Link == "" {
		fmt.Fprintln(sh.out, "No link available for this article.")
		return
	}

	client := fetch.NewClient(sh.app.cfg.Search.HTTPConfig, sh.app.logger)

	var pdfURL string
	var found bool
	sh.withSpinner(" resolving PDF link...", func() {
		pdfURL, found, _ = resolve.Resolve(ctx, client, article.Link, sh.app.logger)
	})

	if !found {
		fmt.Fprintln(sh.out, "No downloadable PDF found for this article.")
		sh.app.logger.Info("no PDF found for selected article")
		return
	}

	fmt.Fprintf(sh.out, "Found PDF link: %s\n", pdfURL)
	confirm := strings.ToLower(strings.TrimSpace(sh.prompt("Do you want to download this PDF? (y/n): ")))
	sh.app.logger.Info("download choice", "choice", confirm)
	if confirm != "y" && confirm != "yes" {
		return
	}

	dest := filepath.Join(sh.app.cfg.Download.OutputDir, export.PDFFilename(article.DisplayTitle()))
	fmt.Fprintf(sh.out, "Downloading %s...\n", filepath.Base(dest))

	outcome := downloadArticle(ctx, sh.app, article, pdfURL, dest)
	if outcome.OK {
		fmt.Fprintf(sh.out, "Download complete: %s\n", dest)
	} else {
		fmt.Fprintln(sh.out, "Download failed. See the log for details.")
	}
}

// prompt writes the prompt text and reads one line of input. EOF counts
// as an empty answer.
func (sh *shell) prompt(text string) string {
	fmt.Fprint(sh.out, text)
	if !sh.in.Scan() {
		return ""
	}
	return sh.in.Text()
}

// withSpinner runs fn with a terminal spinner so long network waits do
// not look like a hang.
func (sh *shell) withSpinner(suffix string, fn func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = suffix
	s.Start()
	defer s.Stop()
	fn()
}

// displayResults prints the numbered result list.
func displayResults(w io.Writer, query string, results []types.ArticleSummary) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "SEARCH RESULTS FOR: '%s'\n", strings.ToUpper(query))
	fmt.Fprintf(w, "Found %d results\n", len(results))
	fmt.Fprintf(w, "%s\n\n", rule)

	for i, r := range results {
		fmt.Fprintf(w, "%d. %s\n", i+1, r.DisplayTitle())
		fmt.Fprintf(w, "   Authors: %s\n", r.DisplayAuthors())
		fmt.Fprintf(w, "   Source: %s\n", r.DisplaySource())
		fmt.Fprintf(w, "   Link: %s\n\n", r.DisplayLink())
	}
}

// saveResults writes the result list as a text export named after the query.
func saveResults(a *app, query string, results []types.ArticleSummary) (string, error) {
	if len(results) == 0 {
		a.logger.Warn("no results to save")
		return "", fmt.Errorf("no results to save")
	}

	path := export.Filename(query)
	f, err := os.Create(path)
	if err != nil {
		a.logger.Error("creating export file", "path", path, "err", err)
		return "", err
	}
	defer f.Close()

	if err := export.Write(f, query, results); err != nil {
		a.logger.Error("writing export file", "path", path, "err", err)
		return "", err
	}

	a.logger.Info("results saved", "path", path, "count", len(results))
	return path, nil
}

// downloadArticle runs the download stage and records the attempt in the
// history store and the YAML sidecar. It never returns an error: failures
// are logged and reflected in the outcome.
func downloadArticle(ctx context.Context, a *app, article types.ArticleSummary, pdfURL, dest string) download.Outcome {
	client := fetch.NewClient(a.cfg.Download.HTTPConfig, a.logger)

	outcome, err := download.Download(ctx, client, pdfURL, dest, a.cfg.Download, a.logger)
	if err != nil {
		a.logger.Warn("download failed", "dest", dest, "err", err)
	}

	recordDownload(a, article.DisplayTitle(), pdfURL, dest, outcome.OK)

	if outcome.OK && a.cfg.Download.WriteSidecar {
		record := types.DownloadRecord{
			Title:      article.Title,
			Authors:    article.Authors,
			Source:     article.Source,
			ArticleURL: article.Link,
			PDFURL:     pdfURL,
			Path:       dest,
			Downloaded: time.Now().UTC(),
		}
		if err := download.WriteSidecar(record); err != nil {
			a.logger.Warn("writing metadata sidecar", "err", err)
		}
	}
	return outcome
}

// recordSearch writes a search to the history store; failures only log.
func recordSearch(a *app, query string, results int) {
	if !a.cfg.History.Enabled {
		return
	}
	store, err := history.Open(a.cfg.History)
	if err != nil {
		a.logger.Warn("opening history store", "err", err)
		return
	}
	defer store.Close()

	if err := store.RecordSearch(query, results); err != nil {
		a.logger.Warn("recording search", "err", err)
	}
}

// recordDownload writes a download attempt to the history store.
func recordDownload(a *app, title, url, path string, ok bool) {
	if !a.cfg.History.Enabled {
		return
	}
	store, err := history.Open(a.cfg.History)
	if err != nil {
		a.logger.Warn("opening history store", "err", err)
		return
	}
	defer store.Close()

	if err := store.RecordDownload(title, url, path, ok); err != nil {
		a.logger.Warn("recording download", "err", err)
	}
}
