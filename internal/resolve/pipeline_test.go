// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/nepjol-fetch/internal/download"
	"github.com/pdiddy/nepjol-fetch/internal/fetch"
	"github.com/pdiddy/nepjol-fetch/internal/logging"
	"github.com/pdiddy/nepjol-fetch/internal/scrape"
	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// TestSearchResolveDownloadPipeline walks the full chain one user
// selection takes: search page, article landing page, galley viewer,
// final PDF.
func TestSearchResolveDownloadPipeline(t *testing.T) {
	pdfBody := "%PDF-1.4 pipeline"

	mux := http.NewServeMux()
	var origin string

	mux.HandleFunc("/index.php/index/search/index", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "irrigation" {
			t.Errorf("search query = %q, want %q", got, "irrigation")
		}
		fmt.Fprintf(w, `<html><body>
			<div class="obj_article_summary">
				<h3><a href="/index.php/jowe/article/view/7">Drip Irrigation Uptake</a></h3>
				<div class="authors">P. Adhikari</div>
				<div class="source">JoWE Vol 4</div>
			</div>
		</body></html>`)
	})
	mux.HandleFunc("/index.php/jowe/article/view/7", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a class="obj_galley_link pdf" href="/index.php/jowe/article/view/7/55">PDF</a>`)
	})
	mux.HandleFunc("/index.php/jowe/article/view/7/55", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a class="download" href="/index.php/jowe/article/download/7/55">Download</a>`)
	})
	mux.HandleFunc("/index.php/jowe/article/download/7/55", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, pdfBody)
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()
	origin = ts.URL

	ctx := context.Background()
	logger := logging.Discard()
	httpCfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"}
	client := fetch.NewClient(httpCfg, logger)

	searchCfg := types.SearchConfig{
		HTTPConfig: httpCfg,
		BaseURL:    ts.URL + "/index.php/index/search/index",
		SiteOrigin: origin,
	}
	results := scrape.Search(ctx, client, searchCfg, scrape.Query{Text: "irrigation"}, logger)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !strings.HasPrefix(results[0].Link, origin) {
		t.Fatalf("result link %q is not absolute against the origin", results[0].Link)
	}

	pdfURL, found, err := Resolve(ctx, client, results[0].Link, logger)
	if err != nil || !found {
		t.Fatalf("Resolve() = (found=%v, err=%v), want success", found, err)
	}
	if want := ts.URL + "/index.php/jowe/article/download/7/55"; pdfURL != want {
		t.Fatalf("pdfURL = %q, want %q", pdfURL, want)
	}

	dest := filepath.Join(t.TempDir(), "Drip Irrigation Uptake.pdf")
	dlCfg := types.DefaultDownloadConfig()
	dlCfg.Timeout = 5 * time.Second
	outcome, err := download.Download(ctx, client, pdfURL, dest, dlCfg, logger)
	if err != nil || !outcome.OK {
		t.Fatalf("Download() = (OK=%v, err=%v), want success", outcome.OK, err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != pdfBody {
		t.Errorf("downloaded content = %q, want %q", data, pdfBody)
	}
}
