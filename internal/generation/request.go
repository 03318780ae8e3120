package generation

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Shape is the output form a caller expects from a completion.
type Shape int

const (
	// ShapePlainText is free-form prose.
	ShapePlainText Shape = iota
	// ShapeJSONArray is a JSON array of records, possibly wrapped in formatting noise.
	ShapeJSONArray
)

// String returns a readable name for the shape.
func (s Shape) String() string {
	if s == ShapeJSONArray {
		return "json_array"
	}
	return "plain_text"
}

// defaultImageMIMEType is assumed for raw base64 payloads without a data URL header.
const defaultImageMIMEType = "image/jpeg"

// Image is an inline image blob sent alongside the prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Request is a single completion request. It is built per call and never reused.
type Request struct {
	// Prompt is the full natural-language prompt
	Prompt string

	// Shape is the output form the caller will parse
	Shape Shape

	// Image is optional; adapters that cannot send images ignore it
	Image *Image
}

// NewTextRequest creates a plain-text request for prompt.
func NewTextRequest(prompt string) Request {
	return Request{Prompt: prompt, Shape: ShapePlainText}
}

// NewJSONArrayRequest creates a request whose completion will be parsed as a JSON array.
func NewJSONArrayRequest(prompt string) Request {
	return Request{Prompt: prompt, Shape: ShapeJSONArray}
}

// DecodeImage parses a base64 image. Both raw base64 and data URLs
// ("data:image/png;base64,...") are accepted; raw payloads are assumed JPEG.
func DecodeImage(encoded string) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("image payload cannot be empty")
	}

	mimeType := defaultImageMIMEType
	if header, payload, ok := strings.Cut(encoded, ","); ok {
		if strings.HasPrefix(header, "data:") {
			if mt, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); mt != "" {
				mimeType = mt
			}
		}
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}

	return &Image{MIMEType: mimeType, Data: data}, nil
}

// DataURL renders the image as a data URL for APIs that take image URLs.
func (i *Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
