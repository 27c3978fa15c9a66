package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cloudflare/cloudflare-go"
)

// ImageUploadParams describes a direct image upload with a caller-chosen
// image ID (Cloudflare "custom ID", may contain slashes)
type ImageUploadParams struct {
	ID   string
	Name string
	File io.Reader
}

// CloudflareClient defines an interface for Cloudflare Images API operations to enable mocking
//
//go:generate mockgen -source=cloudflare.go -destination=../mocks/cloudflare.go -package=mocks -mock_names=CloudflareClient=MockCloudflareClient
type CloudflareClient interface {
	// UploadImage uploads a single image to Cloudflare Images under params.ID
	UploadImage(ctx context.Context, rc *cloudflare.ResourceContainer, params ImageUploadParams) (cloudflare.Image, error)

	// GetImage gets the details of an uploaded image, including variant URLs
	GetImage(ctx context.Context, rc *cloudflare.ResourceContainer, id string) (cloudflare.Image, error)

	// DeleteImage deletes an uploaded image by its ID
	DeleteImage(ctx context.Context, rc *cloudflare.ResourceContainer, id string) error
}

// RealCloudflareClient implements CloudflareClient using the official Cloudflare SDK
type RealCloudflareClient struct {
	api        *cloudflare.API
	apiToken   string
	httpClient *http.Client
}

// NewCloudflareClient creates a new real Cloudflare client
func NewCloudflareClient(apiToken string, opts ...cloudflare.Option) (CloudflareClient, error) {
	api, err := cloudflare.NewWithAPIToken(apiToken, opts...)
	if err != nil {
		return nil, err
	}
	return &RealCloudflareClient{
		api:        api,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// UploadImage uploads a single image to Cloudflare Images.
// The SDK's UploadImage does not expose the `id` form field, so custom-ID
// uploads go through the raw Images v1 endpoint.
func (c *RealCloudflareClient) UploadImage(ctx context.Context, rc *cloudflare.ResourceContainer, params ImageUploadParams) (cloudflare.Image, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if params.ID != "" {
		if err := form.WriteField("id", params.ID); err != nil {
			return cloudflare.Image{}, fmt.Errorf("failed to write id field: %w", err)
		}
	}
	part, err := form.CreateFormFile("file", params.Name)
	if err != nil {
		return cloudflare.Image{}, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, params.File); err != nil {
		return cloudflare.Image{}, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := form.Close(); err != nil {
		return cloudflare.Image{}, err
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/images/v1", c.api.BaseURL, rc.Identifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return cloudflare.Image{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cloudflare.Image{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return cloudflare.Image{}, err
	}

	var envelope struct {
		cloudflare.Response
		Result cloudflare.Image `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return cloudflare.Image{}, fmt.Errorf("HTTP %d: failed to decode response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices || !envelope.Success {
		return cloudflare.Image{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, formatResponseErrors(envelope.Errors))
	}

	return envelope.Result, nil
}

// GetImage gets the details of an uploaded image
func (c *RealCloudflareClient) GetImage(ctx context.Context, rc *cloudflare.ResourceContainer, id string) (cloudflare.Image, error) {
	return c.api.GetImage(ctx, rc, id)
}

// DeleteImage deletes an uploaded image by its ID
func (c *RealCloudflareClient) DeleteImage(ctx context.Context, rc *cloudflare.ResourceContainer, id string) error {
	return c.api.DeleteImage(ctx, rc, id)
}

func formatResponseErrors(errs []cloudflare.ResponseInfo) string {
	if len(errs) == 0 {
		return "unknown error"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%d: %s", e.Code, e.Message))
	}
	return strings.Join(parts, "; ")
}
