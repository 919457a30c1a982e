package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nepjol-fetch/internal/export"
	"github.com/pdiddy/nepjol-fetch/internal/fetch"
	"github.com/pdiddy/nepjol-fetch/internal/resolve"
	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <article-url>",
	Short: "Resolve an article's PDF link and download the file",
	Long: `Fetch takes a NepJOL article landing-page URL, follows the galley viewer
chain to the final PDF download link, and saves the file. The filename is
derived from --title when given, otherwise from the last URL path segment.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("title", "", "article title used for the output filename")
	fetchCmd.Flags().String("output-dir", "", "directory for the downloaded file (default: current directory)")
	fetchCmd.Flags().Bool("link-only", false, "print the resolved PDF link without downloading")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	articleURL := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		a.cfg.Download.OutputDir = dir
	}

	ctx := context.Background()
	client := fetch.NewClient(a.cfg.Search.HTTPConfig, a.logger)

	pdfURL, found, err := resolve.Resolve(ctx, client, articleURL, a.logger)
	if !found {
		if err != nil {
			return fmt.Errorf("resolving PDF link: %w", err)
		}
		return fmt.Errorf("no downloadable PDF found for %s", articleURL)
	}
	fmt.Printf("Found PDF link: %s\n", pdfURL)

	if linkOnly, _ := cmd.Flags().GetBool("link-only"); linkOnly {
		return nil
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = filepath.Base(articleURL)
	}
	dest := filepath.Join(a.cfg.Download.OutputDir, export.PDFFilename(title))

	article := types.ArticleSummary{Title: title, Link: articleURL}
	outcome := downloadArticle(ctx, a, article, pdfURL, dest)
	if !outcome.OK {
		return fmt.Errorf("download failed for %s", dest)
	}
	fmt.Printf("Download complete: %s\n", dest)
	return nil
}
