// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape extracts article summaries from NepJOL search-results HTML.
// The aggregator runs OJS, so extraction keys off the stable OJS markup
// classes rather than page layout.
package scrape

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/pdiddy/nepjol-fetch/internal/fetch"
	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// OJS markup classes on the search-results page.
const (
	summaryBlockSelector = "div.obj_article_summary"
	authorsSelector      = "div.authors"
	sourceSelector       = "div.source"
)

// Query holds the search parameters. Author and the date range are
// optional; when unset they are still sent as empty placeholder
// parameters because the endpoint expects the full parameter set.
type Query struct {
	Text   string
	Author string
	From   time.Time
	To     time.Time
}

// IsEmpty reports whether the query contains no searchable text.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" && strings.TrimSpace(q.Author) == ""
}

// Values encodes the query into the endpoint's parameter shape. Every
// date component is always present, empty when the range is unset.
func (q Query) Values() url.Values {
	v := url.Values{
		"query":         {q.Text},
		"authors":       {q.Author},
		"dateFromYear":  {""},
		"dateFromMonth": {""},
		"dateFromDay":   {""},
		"dateToYear":    {""},
		"dateToMonth":   {""},
		"dateToDay":     {""},
	}
	if !q.From.IsZero() {
		v["dateFromYear"] = []string{strconv.Itoa(q.From.Year())}
		v["dateFromMonth"] = []string{strconv.Itoa(int(q.From.Month()))}
		v["dateFromDay"] = []string{strconv.Itoa(q.From.Day())}
	}
	if !q.To.IsZero() {
		v["dateToYear"] = []string{strconv.Itoa(q.To.Year())}
		v["dateToMonth"] = []string{strconv.Itoa(int(q.To.Month()))}
		v["dateToDay"] = []string{strconv.Itoa(q.To.Day())}
	}
	return v
}

// Extract parses search-results HTML and returns one summary per article
// block, in page order. A block missing a field keeps the field empty
// rather than being dropped; relative links are rewritten against origin.
// Unparseable HTML yields an empty slice.
func Extract(html, origin string, logger *log.Logger) []types.ArticleSummary {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Error("parsing results page", "err", err)
		return nil
	}

	var results []types.ArticleSummary
	doc.Find(summaryBlockSelector).Each(func(i int, block *goquery.Selection) {
		summary := extractBlock(block, origin)
		if summary.Title == "" && summary.Link == "" {
			logger.Warn("summary block has no anchor", "index", i+1)
		}
		results = append(results, summary)
		logger.Debug("parsed result", "index", i+1, "title", truncate(summary.DisplayTitle(), 50))
	})

	logger.Info("extracted results", "count", len(results))
	return results
}

// extractBlock pulls one summary out of a single article block. The first
// anchor carries both the title text and the landing-page href.
func extractBlock(block *goquery.Selection, origin string) types.ArticleSummary {
	var summary types.ArticleSummary

	anchor := block.Find("a").First()
	summary.Title = strings.TrimSpace(anchor.Text())
	if href, ok := anchor.Attr("href"); ok {
		summary.Link = absolutize(href, origin)
	}

	summary.Authors = strings.TrimSpace(block.Find(authorsSelector).First().Text())
	summary.Source = strings.TrimSpace(block.Find(sourceSelector).First().Text())
	return summary
}

// absolutize rewrites a site-relative href against the site origin.
func absolutize(href, origin string) string {
	if strings.HasPrefix(href, "/") {
		return origin + href
	}
	return href
}

// Search runs the query against the configured endpoint and extracts the
// results. Transport failures are logged and reported as an empty result
// list; callers cannot tell a failed request from an empty page, matching
// the interactive surface's contract.
func Search(ctx context.Context, client *fetch.Client, cfg types.SearchConfig, q Query, logger *log.Logger) []types.ArticleSummary {
	logger.Info("starting search", "query", q.Text)

	page, err := client.Get(ctx, cfg.BaseURL, q.Values())
	if err != nil {
		logger.Error("search request failed", "err", err)
		return nil
	}

	logger.Info("search request successful", "status", page.StatusCode, "url", page.FinalURL)
	return Extract(page.Body, cfg.SiteOrigin, logger)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
