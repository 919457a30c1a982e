// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download streams a resolved PDF URL to disk. The body is
// written through a temp file and renamed into place so a failed
// transfer never leaves a partial file under the final name.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nepjol-fetch/internal/fetch"
	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// pdfMediaType must appear in the Content-Type header before any byte is
// written; an HTML error page served with status 200 fails this check.
const pdfMediaType = "application/pdf"

// ContentTypeError reports a download target that is not a PDF.
type ContentTypeError struct {
	URL         string
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("download %s: content type %q is not %s", e.URL, e.ContentType, pdfMediaType)
}

// Outcome describes a finished download attempt.
type Outcome struct {
	// OK is true only when the write completed and the destination
	// was confirmed to exist afterwards.
	OK bool

	// Path is the destination the file was (or would have been) written to.
	Path string

	// Bytes is the number of body bytes written.
	Bytes int64
}

// Download fetches url and streams it to destPath in fixed-size chunks.
// It aborts before writing when the content type is not a PDF, and after
// the rename it stat-checks the destination; a missing file after a
// completed write is reported as a failure. The returned Outcome always
// carries the destination path; err explains any failure.
func Download(ctx context.Context, client *fetch.Client, url, destPath string, cfg types.DownloadConfig, logger *log.Logger) (Outcome, error) {
	outcome := Outcome{Path: destPath}
	logger.Info("starting download", "url", url, "dest", destPath)

	resp, err := client.GetStream(ctx, url)
	if err != nil {
		logger.Error("download request failed", "err", err)
		return outcome, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	logger.Debug("download response", "status", resp.StatusCode, "content_type", contentType)

	if !strings.Contains(contentType, pdfMediaType) {
		err := &ContentTypeError{URL: url, ContentType: contentType}
		logger.Warn("refusing to save non-PDF response", "content_type", contentType)
		return outcome, err
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 8192
	}

	n, err := writeAtomic(resp.Body, destPath, chunkSize)
	if err != nil {
		logger.Error("writing download", "err", err)
		return outcome, err
	}
	outcome.Bytes = n

	if _, err := os.Stat(destPath); err != nil {
		logger.Error("destination missing after write", "dest", destPath, "err", err)
		return outcome, fmt.Errorf("verifying %s: %w", destPath, err)
	}

	outcome.OK = true
	logger.Info("download complete", "dest", destPath, "bytes", n)
	return outcome, nil
}

// writeAtomic copies r to destPath via a temp file in the same directory,
// renaming on success. The copy buffer bounds peak memory for large files.
func writeAtomic(r io.Reader, destPath string, chunkSize int) (int64, error) {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	buf := make([]byte, chunkSize)
	n, copyErr := io.CopyBuffer(tmpFile, r, buf)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing body: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}

// WriteSidecar writes a YAML metadata record next to the downloaded PDF,
// at "<pdf path>.yaml".
func WriteSidecar(record types.DownloadRecord) error {
	if record.Downloaded.IsZero() {
		record.Downloaded = time.Now().UTC()
	}
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(record.Path+".yaml", data, 0o644)
}

// ReadSidecar reads a YAML metadata record written by WriteSidecar.
func ReadSidecar(pdfPath string) (types.DownloadRecord, error) {
	var record types.DownloadRecord
	data, err := os.ReadFile(pdfPath + ".yaml")
	if err != nil {
		return record, err
	}
	if err := yaml.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("parsing metadata: %w", err)
	}
	return record, nil
}
