package docio

import (
	"image"

	"github.com/tsawler/labelcrop/model"
)

// Source provides read access to one document's pages. Page indices are
// 0-based. Implementations must be safe for sequential use; the parallel
// runner only calls Source methods from its synchronous analysis pass.
type Source interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageDimensions returns the page size in page units (points).
	PageDimensions(pageIndex int) (model.PageDimensions, error)

	// TextFragments returns all positioned text fragments of a page.
	// An empty slice (not an error) means the page has no text layer.
	TextFragments(pageIndex int) ([]model.TextFragment, error)

	// Words returns word-level tokens of a page whose bounding boxes
	// intersect the clip rectangle.
	Words(pageIndex int, clip model.Rect) ([]model.Word, error)

	// RasterGray returns a grayscale raster of the page at the given zoom
	// factor. The raster dimensions are the image bounds.
	RasterGray(pageIndex int, zoom float64) (*image.Gray, error)
}

// Compositor produces cropped output documents from a source document.
// RenderCroppedPage must be safe for concurrent calls with distinct pages;
// the parallel runner renders labels concurrently.
type Compositor interface {
	// RenderCroppedPage renders the clip region of one source page into a
	// new single-page document of exactly outWidth x outHeight page units,
	// scaling the clipped content to fill the page.
	RenderCroppedPage(pageIndex int, clip model.Rect, outWidth, outHeight float64) ([]byte, error)

	// ExtractPagesCropped copies the given pages, in order, into a new
	// document and sets each copied page's crop box to rect. The rect is
	// expressed in the coordinate space of the document's first page, where
	// the carton flow detects it.
	ExtractPagesCropped(pageIndices []int, rect model.Rect) ([]byte, error)
}
