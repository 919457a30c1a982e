// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the nepjol-fetch pipeline.
package types

import "time"

// Presentation placeholders for fields the results page did not provide.
// The structs below keep absent fields as empty strings; these texts appear
// only when a summary is rendered for the user or exported.
const (
	NoTitle       = "No title"
	NoAuthors     = "No authors"
	UnknownSource = "Unknown source"
	NoLink        = "No link"
)

// ArticleSummary is one entry extracted from a NepJOL search-results page.
// A field the page did not carry is the empty string; Link, when set, is
// always an absolute URL. Summaries are not mutated after extraction.
type ArticleSummary struct {
	// Title is the article title from the summary block's anchor text.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line exactly as the page renders it.
	Authors string `json:"authors" yaml:"authors"`

	// Source names the journal issue the article appeared in.
	Source string `json:"source" yaml:"source"`

	// Link is the absolute URL of the article's landing page.
	Link string `json:"link" yaml:"link"`
}

// DisplayTitle returns the title or its placeholder.
func (a ArticleSummary) DisplayTitle() string {
	if a.Title == "" {
		return NoTitle
	}
	return a.Title
}

// DisplayAuthors returns the author line or its placeholder.
func (a ArticleSummary) DisplayAuthors() string {
	if a.Authors == "" {
		return NoAuthors
	}
	return a.Authors
}

// DisplaySource returns the journal source or its placeholder.
func (a ArticleSummary) DisplaySource() string {
	if a.Source == "" {
		return UnknownSource
	}
	return a.Source
}

// DisplayLink returns the article link or its placeholder.
func (a ArticleSummary) DisplayLink() string {
	if a.Link == "" {
		return NoLink
	}
	return a.Link
}

// DownloadRecord describes one downloaded PDF. It is written as a YAML
// sidecar next to the file and stored in the history database.
type DownloadRecord struct {
	// Title is the article title the file was named after.
	Title string `json:"title" yaml:"title"`

	// Authors is the author line from the search result.
	Authors string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Source names the journal issue.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// ArticleURL is the landing page the PDF was resolved from.
	ArticleURL string `json:"article_url" yaml:"article_url"`

	// PDFURL is the final resolved download URL.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Path is where the PDF was written.
	Path string `json:"path" yaml:"path"`

	// Downloaded is the completion time of the download.
	Downloaded time.Time `json:"downloaded" yaml:"downloaded"`
}
