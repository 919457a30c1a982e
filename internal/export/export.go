// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes search results to a plain-text file and reads
// the same format back.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

const headerPrefix = "NepJol Search Results for: "

// Write renders results in the export format:
//
//	NepJol Search Results for: <query>
//	============================================================
//
//	1. <title>
//	   Authors: <authors>
//	   Source: <source>
//	   Link: <link>
//
// Absent fields are written as their display placeholders.
func Write(w io.Writer, query string, results []types.ArticleSummary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s%s\n", headerPrefix, query)
	fmt.Fprintf(bw, "%s\n\n", strings.Repeat("=", 60))

	for i, r := range results {
		fmt.Fprintf(bw, "%d. %s\n", i+1, r.DisplayTitle())
		fmt.Fprintf(bw, "   Authors: %s\n", r.DisplayAuthors())
		fmt.Fprintf(bw, "   Source: %s\n", r.DisplaySource())
		fmt.Fprintf(bw, "   Link: %s\n\n", r.DisplayLink())
	}

	return bw.Flush()
}

// Read parses the export format back into the query and result list.
// Placeholder texts are mapped back to absent fields, so a write/read
// cycle reproduces the original summaries.
func Read(r io.Reader) (query string, results []types.ArticleSummary, err error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return "", nil, fmt.Errorf("empty export file")
	}
	header := scanner.Text()
	if !strings.HasPrefix(header, headerPrefix) {
		return "", nil, fmt.Errorf("unrecognized export header: %q", header)
	}
	query = strings.TrimPrefix(header, headerPrefix)

	var current *types.ArticleSummary
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "="):
			continue
		case strings.HasPrefix(trimmed, "Authors: ") && current != nil:
			current.Authors = unplaceholder(strings.TrimPrefix(trimmed, "Authors: "), types.NoAuthors)
		case strings.HasPrefix(trimmed, "Source: ") && current != nil:
			current.Source = unplaceholder(strings.TrimPrefix(trimmed, "Source: "), types.UnknownSource)
		case strings.HasPrefix(trimmed, "Link: ") && current != nil:
			current.Link = unplaceholder(strings.TrimPrefix(trimmed, "Link: "), types.NoLink)
		default:
			title, ok := splitNumbered(trimmed)
			if !ok {
				return "", nil, fmt.Errorf("unrecognized export line: %q", line)
			}
			results = append(results, types.ArticleSummary{Title: unplaceholder(title, types.NoTitle)})
			current = &results[len(results)-1]
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, err
	}
	return query, results, nil
}

// splitNumbered parses an "N. <title>" entry line.
func splitNumbered(line string) (string, bool) {
	dot := strings.Index(line, ". ")
	if dot <= 0 {
		return "", false
	}
	for _, r := range line[:dot] {
		if !unicode.IsDigit(r) {
			return "", false
		}
	}
	return line[dot+2:], true
}

func unplaceholder(s, placeholder string) string {
	if s == placeholder {
		return ""
	}
	return s
}

// Sanitize strips every rune that is not alphanumeric, space, hyphen, or
// underscore, then trims trailing spaces. The result is safe as a filename
// stem on every platform the tool targets.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Filename returns the export filename for a query.
func Filename(query string) string {
	return fmt.Sprintf("nepjol_results_%s.txt", Sanitize(query))
}

// PDFFilename returns the download filename for an article title.
func PDFFilename(title string) string {
	return Sanitize(title) + ".pdf"
}
