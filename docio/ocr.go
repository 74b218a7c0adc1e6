//go:build ocr

package docio

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/labelcrop/model"
)

// OCRWordSource recognizes word boxes on page rasters for documents whose
// barcode digits are printed, not typeset. It wraps the Tesseract OCR
// engine via gosseract and requires Tesseract to be installed on the
// system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type OCRWordSource struct {
	client *gosseract.Client
}

// NewOCRWordSource creates a word source backed by a Tesseract client. The
// source should be closed when no longer needed to release resources.
func NewOCRWordSource() (*OCRWordSource, error) {
	return &OCRWordSource{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (o *OCRWordSource) Close() error {
	if o.client != nil {
		return o.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g., "eng+spa"). Default is
// "eng".
func (o *OCRWordSource) SetLanguage(lang string) error {
	return o.client.SetLanguage(lang)
}

// Words recognizes the raster and returns word boxes in page points. The
// raster must have been produced at the given zoom so pixel boxes scale
// back to page coordinates.
func (o *OCRWordSource) Words(raster *image.Gray, zoom float64) ([]model.Word, error) {
	if zoom <= 0 {
		zoom = 1
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, raster); err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}
	if err := o.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := o.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]model.Word, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, model.Word{
			Rect: model.NewRect(
				float64(b.Box.Min.X)/zoom,
				float64(b.Box.Min.Y)/zoom,
				float64(b.Box.Max.X)/zoom,
				float64(b.Box.Max.Y)/zoom,
			),
			Text: text,
		})
	}
	return words, nil
}
