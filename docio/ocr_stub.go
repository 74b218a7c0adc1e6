//go:build !ocr

package docio

import (
	"errors"
	"image"

	"github.com/tsawler/labelcrop/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable OCR
// support; this requires Tesseract to be installed.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// OCRWordSource is the stub used when the "ocr" build tag is not set. All
// methods return ErrOCRNotEnabled.
type OCRWordSource struct{}

// NewOCRWordSource returns ErrOCRNotEnabled.
func NewOCRWordSource() (*OCRWordSource, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op on the stub.
func (o *OCRWordSource) Close() error { return nil }

// SetLanguage returns ErrOCRNotEnabled.
func (o *OCRWordSource) SetLanguage(string) error { return ErrOCRNotEnabled }

// Words returns ErrOCRNotEnabled.
func (o *OCRWordSource) Words(*image.Gray, float64) ([]model.Word, error) {
	return nil, ErrOCRNotEnabled
}
