// Package docio is the document access boundary for label extraction.
//
// The analysis packages never touch a PDF directly; they consume positioned
// text, page dimensions, and grayscale rasters through the [Source]
// interface and emit crops through the [Compositor] interface. [Document] is
// the production implementation of both, built on pdfcpu.
//
// # Reading
//
//	doc, err := docio.Open("sheet.pdf")
//	if err != nil {
//	    // document-level failure: report and continue with the next file
//	}
//	defer doc.Close()
//	fragments, err := doc.TextFragments(0)
//
// Positioned text comes from a compact content-stream walker that tracks the
// text matrix through BT/ET, Tm, Td/TD, T* and the text-showing operators.
// It is intentionally simpler than a full PDF text pipeline: label sheets
// use plain encodings and axis-aligned text, which is all the geometry the
// analysis needs.
//
// # Rasters
//
// Scanned sheets carry each page as one full-page image XObject. RasterGray
// extracts and decodes that image (PNG, JPEG or TIFF) and converts it to
// grayscale, standing in for a page renderer.
//
// # Writing
//
// RenderCroppedPage produces a new single-page document of a fixed output
// size showing a clipped region of a source page. ExtractPagesCropped
// copies a page selection into a new document and sets each page's crop box
// in place, which is the grouped-pages output variant.
package docio
