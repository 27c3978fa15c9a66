package downloader

//go:generate mockgen -source=downloader.go -destination=../mocks/downloader.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
)

// Downloader fetches remote content and resolves its MIME type
type Downloader interface {
	// Download fetches the content at url and returns the bytes and MIME type
	Download(ctx context.Context, url string) ([]byte, string, error)
}

type httpDownloader struct {
	client adapter.HTTPClient
}

// NewHTTPDownloader creates a downloader backed by the given HTTP client
func NewHTTPDownloader(client adapter.HTTPClient) Downloader {
	return &httpDownloader{client: client}
}

// Download fetches the content at url and returns the bytes and MIME type.
// When the server omits a usable Content-Type, the type is sniffed from the
// payload instead.
func (d *httpDownloader) Download(ctx context.Context, url string) ([]byte, string, error) {
	data, contentType, err := d.client.GetBytes(ctx, url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	contentType = normalizeContentType(contentType)
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	return data, contentType, nil
}

// normalizeContentType strips parameters ("image/png; charset=...") and
// discards generic types that carry no information
func normalizeContentType(contentType string) string {
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	if contentType == "" || contentType == "application/octet-stream" {
		return ""
	}
	return strings.ToLower(contentType)
}
