package docio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/labelcrop/model"
)

// Document is the pdfcpu-backed implementation of Source and Compositor for
// one open PDF document.
//
// Source methods share the parsed pdfcpu context and must be called
// sequentially. Compositor methods operate on an immutable copy of the file
// bytes and are safe for concurrent use.
type Document struct {
	name string
	data []byte
	ctx  *pdfmodel.Context
	conf *pdfmodel.Configuration
}

// Open opens a PDF file. Failure to open or validate is a document-level
// error; callers processing a batch report it and continue with the next
// document.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return OpenBytes(data, filepath.Base(path))
}

// OpenBytes opens a PDF held in memory. The name is used in error messages
// only.
func OpenBytes(data []byte, name string) (*Document, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("open %s: document has no pages", name)
	}
	return &Document{name: name, data: data, ctx: ctx, conf: conf}, nil
}

// Name returns the document's display name.
func (d *Document) Name() string {
	return d.name
}

// Close releases the document. The Document must not be used afterwards.
func (d *Document) Close() error {
	d.ctx = nil
	d.data = nil
	return nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// PageDimensions returns the page's MediaBox size in points.
func (d *Document) PageDimensions(pageIndex int) (model.PageDimensions, error) {
	if err := d.checkPage(pageIndex); err != nil {
		return model.PageDimensions{}, err
	}

	_, _, attrs, err := d.ctx.PageDict(pageIndex+1, false)
	if err != nil {
		return model.PageDimensions{}, fmt.Errorf("%s page %d: %w", d.name, pageIndex+1, err)
	}
	if attrs == nil || attrs.MediaBox == nil {
		// US Letter default, matching pdfcpu's own fallback.
		return model.PageDimensions{Width: 612, Height: 792}, nil
	}
	return model.PageDimensions{
		Width:  attrs.MediaBox.Width(),
		Height: attrs.MediaBox.Height(),
	}, nil
}

// TextFragments returns the positioned text of a page, converted to
// top-left page coordinates. A page without a text layer yields an empty
// slice, not an error.
func (d *Document) TextFragments(pageIndex int) ([]model.TextFragment, error) {
	if err := d.checkPage(pageIndex); err != nil {
		return nil, err
	}
	dims, err := d.PageDimensions(pageIndex)
	if err != nil {
		return nil, err
	}
	return d.extractFragments(pageIndex, dims)
}

// Words returns word-level tokens of a page intersecting the clip
// rectangle. Each fragment is split on whitespace with proportional
// sub-boxes, which is accurate enough to rank digit runs and center a crop
// window.
func (d *Document) Words(pageIndex int, clip model.Rect) ([]model.Word, error) {
	fragments, err := d.TextFragments(pageIndex)
	if err != nil {
		return nil, err
	}

	var words []model.Word
	for _, f := range fragments {
		for _, w := range splitFragmentWords(f) {
			if clip.Intersects(w.Rect) {
				words = append(words, w)
			}
		}
	}
	return words, nil
}

func (d *Document) checkPage(pageIndex int) error {
	if d.ctx == nil {
		return fmt.Errorf("%s: document is closed", d.name)
	}
	if pageIndex < 0 || pageIndex >= d.ctx.PageCount {
		return fmt.Errorf("%s: page %d out of range [1, %d]", d.name, pageIndex+1, d.ctx.PageCount)
	}
	return nil
}

// splitFragmentWords splits one fragment into whitespace-separated words,
// assigning each a proportional share of the fragment's box.
func splitFragmentWords(f model.TextFragment) []model.Word {
	runs := strings.Fields(f.Text)
	if len(runs) == 0 {
		return nil
	}
	if len(runs) == 1 {
		return []model.Word{{Rect: f.Rect, Text: runs[0]}}
	}

	total := len(f.Text)
	width := f.Rect.Width()
	words := make([]model.Word, 0, len(runs))

	offset := 0
	for _, run := range runs {
		start := strings.Index(f.Text[offset:], run) + offset
		end := start + len(run)
		offset = end

		x0 := f.Rect.X0 + width*float64(start)/float64(total)
		x1 := f.Rect.X0 + width*float64(end)/float64(total)
		words = append(words, model.Word{
			Rect: model.Rect{X0: x0, Y0: f.Rect.Y0, X1: x1, Y1: f.Rect.Y1},
			Text: run,
		})
	}
	return words
}
