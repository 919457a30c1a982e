// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

func sampleResults() []types.ArticleSummary {
	return []types.ArticleSummary{
		{
			Title:   "Water Quality in Bagmati",
			Authors: "K. Sharma, R. Koirala",
			Source:  "Journal of Science and Technology Vol 1",
			Link:    "https://www.nepjol.info/index.php/jist/article/view/101",
		},
		{
			Title:  "Rice Yields in Terai",
			Source: "Agronomy Journal Vol 2",
			Link:   "https://www.nepjol.info/index.php/aej/article/view/202",
		},
		{
			Authors: "S. Gurung",
		},
	}
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "water quality", sampleResults()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "NepJol Search Results for: water quality\n") {
		t.Errorf("missing header, got %q", firstLine(out))
	}
	if !strings.Contains(out, strings.Repeat("=", 60)+"\n") {
		t.Error("missing 60-char rule under the header")
	}
	if !strings.Contains(out, "1. Water Quality in Bagmati\n") {
		t.Error("missing first numbered entry")
	}
	if !strings.Contains(out, "   Authors: K. Sharma, R. Koirala\n") {
		t.Error("missing indented authors line")
	}
	// Absent fields appear as their placeholders.
	if !strings.Contains(out, "2. Rice Yields in Terai\n   Authors: "+types.NoAuthors+"\n") {
		t.Error("absent authors should render the placeholder")
	}
	if !strings.Contains(out, "3. "+types.NoTitle+"\n") {
		t.Error("absent title should render the placeholder")
	}
	if !strings.Contains(out, "   Link: "+types.NoLink+"\n") {
		t.Error("absent link should render the placeholder")
	}
}

func TestRoundTrip(t *testing.T) {
	results := sampleResults()

	var buf bytes.Buffer
	if err := Write(&buf, "water quality", results); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	query, got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if query != "water quality" {
		t.Errorf("query = %q, want %q", query, "water quality")
	}
	if len(got) != len(results) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(results))
	}
	for i := range results {
		if got[i] != results[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], results[i])
		}
	}
}

func TestReadRejectsForeignFile(t *testing.T) {
	_, _, err := Read(strings.NewReader("just some notes\nnot an export\n"))
	if err == nil {
		t.Error("Read() error = nil, want header mismatch error")
	}
}

func TestReadEmptyInput(t *testing.T) {
	_, _, err := Read(strings.NewReader(""))
	if err == nil {
		t.Error("Read() error = nil, want error for empty input")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "soil erosion", "soil erosion"},
		{"keeps hyphen underscore", "rice_yields-2024", "rice_yields-2024"},
		{"strips punctuation", "Water: Quality? (Bagmati)", "Water Quality Bagmati"},
		{"strips slashes", "a/b\\c", "abc"},
		{"trims trailing space", "ends badly!!", "ends badly"},
		{"unicode letters kept", "नेपाल अध्ययन", "नेपाल अध्ययन"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilenames(t *testing.T) {
	if got, want := Filename("soil & water"), "nepjol_results_soil  water.txt"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
	if got, want := PDFFilename("Water: Quality (Bagmati)"), "Water Quality Bagmati.pdf"; got != want {
		t.Errorf("PDFFilename() = %q, want %q", got, want)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
