package adapter

import (
	"image"
	"image/png"
	"io"
)

// ImageEncoder defines an interface for encoding images
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageEncoder=MockImageEncoder
type ImageEncoder interface {
	// EncodePNG encodes an image to PNG format
	EncodePNG(w io.Writer, img image.Image) error
}

// RealImageEncoder implements ImageEncoder using standard library
type RealImageEncoder struct{}

// NewImageEncoder creates a new real image encoder
func NewImageEncoder() ImageEncoder {
	return &RealImageEncoder{}
}

// EncodePNG encodes an image to PNG format
func (e *RealImageEncoder) EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
