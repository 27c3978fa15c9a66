// Package compositor renders the per-account artwork: the OG base image
// with the full account name laid over it as text. Rendering goes through
// an intermediate SVG so text layout (wrapping, sizing) stays declarative,
// then resvg rasterizes the SVG to a fixed-width PNG.
package compositor

//go:generate mockgen -source=compositor.go -destination=../../mocks/compositor.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
	"github.com/situs-protocol/situs-indexer/internal/downloader"
)

const (
	canvasSize = 1000
	fontSize   = 72
	lineHeight = 80
	// maxLineChars is where the label wraps; ~13 glyphs of the display
	// font fit the canvas at fontSize with side margins
	maxLineChars  = 13
	textMarginX   = 50
	textBaselineY = 920
)

// Compositor renders a labeled PNG from a base image and an account name
type Compositor interface {
	// Render produces PNG bytes of the base image overlaid with label text
	Render(ctx context.Context, baseImageURL, label string, width int) ([]byte, error)

	// Hash returns a stable content hash of the render inputs, used to skip
	// regeneration when neither the base image pointer nor the label changed
	Hash(baseImageURL, label string) (string, error)
}

type svgCompositor struct {
	downloader downloader.Downloader
	resvg      adapter.ResvgClient
	encoder    adapter.ImageEncoder
	base64     adapter.Base64
}

// NewSVGCompositor creates a compositor that renders through an SVG template
func NewSVGCompositor(dl downloader.Downloader, resvg adapter.ResvgClient, encoder adapter.ImageEncoder, b64 adapter.Base64) Compositor {
	return &svgCompositor{
		downloader: dl,
		resvg:      resvg,
		encoder:    encoder,
		base64:     b64,
	}
}

// Render produces PNG bytes of the base image overlaid with label text
func (c *svgCompositor) Render(ctx context.Context, baseImageURL, label string, width int) ([]byte, error) {
	baseImage, contentType, err := c.downloader.Download(ctx, baseImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch base image: %w", err)
	}

	svg := c.buildSVG(baseImage, contentType, label)

	img, err := c.resvg.Render(svg, width)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize svg: %w", err)
	}

	var buf bytes.Buffer
	if err := c.encoder.EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// Hash returns a stable content hash of the render inputs. The inputs are
// serialized as canonical JSON (RFC 8785) before hashing so key order and
// whitespace cannot produce spurious differences.
func (c *svgCompositor) Hash(baseImageURL, label string) (string, error) {
	raw, err := json.Marshal(map[string]string{
		"base_image": baseImageURL,
		"label":      normalizeLabel(label),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal hash input: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize hash input: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// buildSVG embeds the base image as a data URI and lays the wrapped label
// lines over it
func (c *svgCompositor) buildSVG(baseImage []byte, contentType, label string) []byte {
	lines := wrapLabel(normalizeLabel(label), maxLineChars)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d" viewBox="0 0 %d %d">`,
		canvasSize, canvasSize, canvasSize, canvasSize)
	fmt.Fprintf(&sb, `<image href="data:%s;base64,%s" x="0" y="0" width="%d" height="%d"/>`,
		contentType, c.base64.Encode(baseImage), canvasSize, canvasSize)

	// Lines stack upward from the bottom baseline so a longer name grows
	// toward the middle of the canvas
	startY := textBaselineY - (len(lines)-1)*lineHeight
	for i, line := range lines {
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-family="Helvetica, Arial, sans-serif" font-size="%d" font-weight="bold" fill="#ffffff">%s</text>`,
			textMarginX, startY+i*lineHeight, fontSize, escapeXML(line))
	}
	sb.WriteString(`</svg>`)

	return []byte(sb.String())
}

// normalizeLabel lowercases the label; account names render lowercase
// regardless of how they were minted
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// wrapLabel breaks a label into lines of at most maxChars runes, preferring
// word boundaries. A single unbreakable word longer than maxChars is
// hard-split on rune boundaries so multi-byte names stay valid UTF-8.
func wrapLabel(label string, maxChars int) []string {
	if label == "" {
		return []string{""}
	}

	var lines []string
	var current []rune
	for _, field := range strings.Fields(label) {
		word := []rune(field)
		for len(word) > maxChars {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(word[:maxChars]))
			word = word[maxChars:]
		}

		switch {
		case len(current) == 0:
			current = word
		case len(current)+1+len(word) <= maxChars:
			current = append(current, ' ')
			current = append(current, word...)
		default:
			lines = append(lines, string(current))
			current = word
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}

	return lines
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
