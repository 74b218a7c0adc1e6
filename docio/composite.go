package docio

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/labelcrop/model"
)

// RenderCroppedPage produces a new single-page document showing the clip
// region of one source page at outWidth x outHeight points.
//
// The page is extracted, its crop box set to the clip, and the result
// resized to the output dimensions. Safe for concurrent calls: it operates
// on the document's immutable byte copy, not the shared context.
func (d *Document) RenderCroppedPage(pageIndex int, clip model.Rect, outWidth, outHeight float64) ([]byte, error) {
	if d.data == nil {
		return nil, fmt.Errorf("%s: document is closed", d.name)
	}
	if outWidth <= 0 || outHeight <= 0 {
		return nil, fmt.Errorf("%s: invalid output size %gx%g", d.name, outWidth, outHeight)
	}

	dims, err := d.PageDimensions(pageIndex)
	if err != nil {
		return nil, err
	}

	page := []string{strconv.Itoa(pageIndex + 1)}

	var trimmed bytes.Buffer
	if err := api.Trim(bytes.NewReader(d.data), &trimmed, page, d.conf); err != nil {
		return nil, fmt.Errorf("%s page %d: extract: %w", d.name, pageIndex+1, err)
	}

	var cropped bytes.Buffer
	box := cropBox(clip, dims)
	if err := api.Crop(bytes.NewReader(trimmed.Bytes()), &cropped, nil, box, d.conf); err != nil {
		return nil, fmt.Errorf("%s page %d: crop: %w", d.name, pageIndex+1, err)
	}

	resize, err := pdfcpu.ParseResizeConfig(fmt.Sprintf("dim:%.4f %.4f", outWidth, outHeight), types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("%s: resize config: %w", d.name, err)
	}
	var out bytes.Buffer
	if err := api.Resize(bytes.NewReader(cropped.Bytes()), &out, nil, resize, d.conf); err != nil {
		return nil, fmt.Errorf("%s page %d: resize: %w", d.name, pageIndex+1, err)
	}
	return out.Bytes(), nil
}

// ExtractPagesCropped copies the given pages, in order, into a new document
// and sets each copied page's crop box to rect. This is the grouped-pages
// output variant: content is cropped in place rather than re-rendered.
//
// The rect is expressed in first-page coordinates, so the bottom-left
// conversion uses page 0's dimensions regardless of which pages the group
// contains.
func (d *Document) ExtractPagesCropped(pageIndices []int, rect model.Rect) ([]byte, error) {
	if d.data == nil {
		return nil, fmt.Errorf("%s: document is closed", d.name)
	}
	if len(pageIndices) == 0 {
		return nil, fmt.Errorf("%s: no pages selected", d.name)
	}

	dims, err := d.PageDimensions(0)
	if err != nil {
		return nil, err
	}

	pages := make([]string, len(pageIndices))
	for i, p := range pageIndices {
		if err := d.checkPage(p); err != nil {
			return nil, err
		}
		pages[i] = strconv.Itoa(p + 1)
	}

	// Collect keeps the requested order, unlike a sorted page extraction.
	var collected bytes.Buffer
	if err := api.Collect(bytes.NewReader(d.data), &collected, pages, d.conf); err != nil {
		return nil, fmt.Errorf("%s: collect pages: %w", d.name, err)
	}

	var out bytes.Buffer
	box := cropBox(rect, dims)
	if err := api.Crop(bytes.NewReader(collected.Bytes()), &out, nil, box, d.conf); err != nil {
		return nil, fmt.Errorf("%s: set crop box: %w", d.name, err)
	}
	return out.Bytes(), nil
}

// Replicate builds a document repeating the first page of a single-page
// document n times. Used for printing multiple copies of one label.
func Replicate(singlePage []byte, n int) ([]byte, error) {
	if n < 1 {
		n = 1
	}
	pages := make([]string, n)
	for i := range pages {
		pages[i] = "1"
	}
	var out bytes.Buffer
	if err := api.Collect(bytes.NewReader(singlePage), &out, pages, pdfmodel.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("replicate page: %w", err)
	}
	return out.Bytes(), nil
}

// cropBox converts a top-left-origin page rectangle to pdfcpu's
// bottom-left-origin crop box.
func cropBox(r model.Rect, dims model.PageDimensions) *pdfmodel.Box {
	return &pdfmodel.Box{
		Rect: types.NewRectangle(r.X0, dims.Height-r.Y1, r.X1, dims.Height-r.Y0),
	}
}
