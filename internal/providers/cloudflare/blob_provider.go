package cloudflare

//go:generate mockgen -source=blob_provider.go -destination=../../mocks/blob_provider.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudflare/cloudflare-go"
	"go.uber.org/zap"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
	"github.com/situs-protocol/situs-indexer/internal/logger"
)

// Config holds configuration for Cloudflare Images
type Config struct {
	// AccountID is the Cloudflare account ID for Images
	AccountID string
	// AccountHash is the delivery URL account hash
	AccountHash string
	// DeliveryBaseURL overrides the default imagedelivery.net base (optional)
	DeliveryBaseURL string
}

// BlobProvider stores generated images at deterministic keys with
// overwrite-on-write semantics.
type BlobProvider interface {
	// Upload writes data at key, replacing any previous object, and returns
	// the public delivery URL
	Upload(ctx context.Context, key string, data []byte) (string, error)

	// URL returns the public delivery URL for a key without uploading
	URL(key string) string
}

type blobProvider struct {
	cfClient adapter.CloudflareClient
	config   *Config
	rc       *cloudflare.ResourceContainer
}

// NewBlobProvider creates a Cloudflare Images blob provider
func NewBlobProvider(cfClient adapter.CloudflareClient, config *Config) BlobProvider {
	return &blobProvider{
		cfClient: cfClient,
		config:   config,
		rc: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: config.AccountID,
		},
	}
}

// Upload writes data at key, replacing any previous object.
// Cloudflare Images rejects uploads with an already-used custom ID, so an
// existing image at the key is deleted first. The delete is best-effort:
// a missing image is the common case for first-time uploads.
func (p *blobProvider) Upload(ctx context.Context, key string, data []byte) (string, error) {
	if err := p.cfClient.DeleteImage(ctx, p.rc, key); err != nil {
		logger.DebugCtx(ctx, "No previous image to delete", zap.String("key", key), zap.Error(err))
	}

	params := adapter.ImageUploadParams{
		ID:   key,
		File: bytes.NewReader(data),
		Name: path.Base(key),
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = time.Minute

	var image cloudflare.Image
	operation := func() error {
		var err error
		// The reader is consumed on each attempt, so rebuild it
		params.File = bytes.NewReader(data)
		image, err = p.cfClient.UploadImage(ctx, p.rc, params)
		if err != nil {
			if !isRetryableUploadError(err) {
				return backoff.Permanent(err)
			}
			logger.WarnCtx(ctx, "Image upload failed, retrying", zap.String("key", key), zap.Error(err))
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}

	logger.InfoCtx(ctx, "Uploaded image",
		zap.String("key", key),
		zap.String("imageID", image.ID))

	return p.URL(key), nil
}

// URL returns the public delivery URL for a key
func (p *blobProvider) URL(key string) string {
	base := p.config.DeliveryBaseURL
	if base == "" {
		base = fmt.Sprintf("https://imagedelivery.net/%s", p.config.AccountHash)
	}
	return fmt.Sprintf("%s/%s/public", strings.TrimRight(base, "/"), key)
}

// isRetryableUploadError distinguishes transient API failures from permanent
// rejections (bad token, malformed ID)
func isRetryableUploadError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporarily") ||
		strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503")
}
