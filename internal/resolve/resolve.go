// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve chases an article's landing page to its final PDF
// download URL. OJS never serves the file from the landing page: the
// page links to a galley viewer, and the viewer links to the file.
package resolve

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/pdiddy/nepjol-fetch/internal/fetch"
)

// Anchor classes on the OJS article and galley viewer pages.
const (
	galleySelector   = "a.obj_galley_link.pdf"
	downloadSelector = "a.download"
)

// Resolve follows the two-hop chain from articleURL to the final PDF URL.
// A missing anchor at either hop returns found == false with a nil error:
// not every article offers a PDF, so that is a normal outcome. Transport
// failures return found == false with the error for diagnostic logging;
// callers treat both the same way.
func Resolve(ctx context.Context, client *fetch.Client, articleURL string, logger *log.Logger) (link string, found bool, err error) {
	logger.Info("looking for PDF galley link", "article", articleURL)

	page, err := client.Get(ctx, articleURL, nil)
	if err != nil {
		logger.Error("fetching article page", "err", err)
		return "", false, err
	}

	galleyHref, ok := firstHref(page.Body, galleySelector)
	if !ok {
		logger.Warn("PDF galley link not found on article page", "article", articleURL)
		return "", false, nil
	}

	viewerURL, err := join(page.FinalURL, galleyHref)
	if err != nil {
		logger.Error("resolving galley href", "href", galleyHref, "err", err)
		return "", false, err
	}
	logger.Info("found galley link, looking for download link", "viewer", viewerURL)

	viewer, err := client.Get(ctx, viewerURL, nil)
	if err != nil {
		logger.Error("fetching viewer page", "err", err)
		return "", false, err
	}

	downloadHref, ok := firstHref(viewer.Body, downloadSelector)
	if !ok {
		logger.Warn("download link not found on viewer page", "viewer", viewerURL)
		return "", false, nil
	}

	// The download href is relative to the viewer page, not the article.
	finalURL, err := join(viewer.FinalURL, downloadHref)
	if err != nil {
		logger.Error("resolving download href", "href", downloadHref, "err", err)
		return "", false, err
	}

	logger.Info("found final PDF download link", "url", finalURL)
	return finalURL, true, nil
}

// firstHref returns the href of the first anchor matching selector, in
// document order. Anchors without an href attribute do not count.
func firstHref(html, selector string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var href string
	var found bool
	doc.Find(selector).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if h, ok := a.Attr("href"); ok && h != "" {
			href, found = h, true
			return false
		}
		return true
	})
	return href, found
}

// join resolves ref against base the way a browser would.
func join(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
