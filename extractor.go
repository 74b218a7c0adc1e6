package labelcrop

import (
	"context"
	"fmt"

	"github.com/tsawler/labelcrop/barcode"
	"github.com/tsawler/labelcrop/batch"
	"github.com/tsawler/labelcrop/cluster"
	"github.com/tsawler/labelcrop/crop"
	"github.com/tsawler/labelcrop/docio"
	"github.com/tsawler/labelcrop/ident"
)

// Extractor provides a fluent interface for extracting labels from PDF
// documents. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	doc      *docio.Document

	// Lifecycle
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool // true if doc has been opened

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability: each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		doc:       e.doc,
		ownsDoc:   e.ownsDoc,
		docOpened: e.docOpened,
		options:   e.options.clone(),
		err:       e.err,
	}
}

// ensureDocument opens the document if not already open.
func (e *Extractor) ensureDocument() error {
	if e.docOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	d, err := docio.Open(e.filename)
	if err != nil {
		return err
	}
	e.doc = d
	e.ownsDoc = true
	e.docOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsDoc && e.doc != nil {
		err := e.doc.Close()
		e.doc = nil
		e.ownsDoc = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Columns sets the number of label columns expected on each page.
//
// Example:
//
//	labels, _, err := labelcrop.Open("sheet.pdf").Columns(4).Labels()
func (e *Extractor) Columns(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		newExt.err = fmt.Errorf("columns must be at least 1, got %d", n)
		return newExt
	}
	newExt.options.columns = n
	return newExt
}

// Padding sets the horizontal and vertical padding, in points, added around
// the detected label column.
func (e *Extractor) Padding(x, y float64) *Extractor {
	newExt := e.clone()
	newExt.options.paddingX = x
	newExt.options.paddingY = y
	return newExt
}

// Grammar selects the identifier grammar by registry name ("sku",
// "referencia", or a custom grammar registered via ident.RegisterGrammar).
func (e *Extractor) Grammar(name string) *Extractor {
	newExt := e.clone()
	if ident.GetGrammar(name) == nil {
		newExt.err = fmt.Errorf("unknown grammar %q", name)
		return newExt
	}
	newExt.options.grammar = name
	return newExt
}

// MinDigits sets the minimum digit count for a token to qualify as the
// barcode anchor.
func (e *Extractor) MinDigits(n int) *Extractor {
	newExt := e.clone()
	newExt.options.minDigits = n
	return newExt
}

// FixedReference crops every label to a window of the given size, in
// points, centered on its barcode. This is the default policy with the
// standard window size.
func (e *Extractor) FixedReference(width, height float64) *Extractor {
	newExt := e.clone()
	if width <= 0 || height <= 0 {
		newExt.err = fmt.Errorf("reference size must be positive, got %gx%g", width, height)
		return newExt
	}
	newExt.options.policy = policyFixed
	newExt.options.referenceWidth = width
	newExt.options.referenceHeight = height
	return newExt
}

// FirstSeenReference sizes every output page to the first extracted label's
// crop rectangle instead of a fixed window.
func (e *Extractor) FirstSeenReference() *Extractor {
	newExt := e.clone()
	newExt.options.policy = policyFirstSeen
	return newExt
}

// NoNormalize disables crop-window normalization: each label keeps its
// detected column rectangle and output size.
func (e *Extractor) NoNormalize() *Extractor {
	newExt := e.clone()
	newExt.options.policy = policyNone
	return newExt
}

// Zoom sets the raster zoom factor used for carton mask detection.
func (e *Extractor) Zoom(z float64) *Extractor {
	newExt := e.clone()
	if z <= 0 {
		newExt.err = fmt.Errorf("zoom must be positive, got %g", z)
		return newExt
	}
	newExt.options.zoom = z
	return newExt
}

// Parallel renders labels concurrently with up to workers goroutines.
// Analysis stays sequential, so output order and the first-seen reference
// size are unaffected.
func (e *Extractor) Parallel(workers int) *Extractor {
	newExt := e.clone()
	newExt.options.parallel = true
	newExt.options.workers = workers
	return newExt
}

// Context sets the context for terminal operations.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.options.ctx = ctx
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Labels runs the hangtag flow and returns one rendered label per
// first-seen identifier, in first-occurrence order. Warnings indicate
// non-fatal issues such as pages skipped due to access failures.
//
// Example:
//
//	labels, warnings, err := labelcrop.Open("hangtags.pdf").Labels()
//	if err != nil {
//	    return err
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", labelcrop.FormatWarnings(warnings))
//	}
func (e *Extractor) Labels() ([]Label, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	runner := batch.NewRunner(e.runConfig())
	if e.options.parallel {
		return runner.RunParallel(e.options.ctx, e.doc, e.doc)
	}
	return runner.Run(e.options.ctx, e.doc, e.doc)
}

// CartonGroups runs the carton flow: pages are grouped by their REFERENCIA
// identifier and each group becomes one multi-page document cropped to the
// label area detected on the first page. Pages without an identifier are
// collected under batch.UnknownKey.
func (e *Extractor) CartonGroups() ([]CartonGroup, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	config := batch.CartonConfig{Zoom: e.options.zoom}
	if e.options.grammar != "" {
		config.Grammar = ident.GetGrammar(e.options.grammar)
	}
	runner := batch.NewCartonRunner(config)
	return runner.Run(e.options.ctx, e.doc, e.doc)
}

// PageCount returns the number of pages in the document without running
// extraction. The document stays open for subsequent terminal calls.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// runConfig translates the fluent options into a batch configuration.
func (e *Extractor) runConfig() batch.Config {
	var config batch.Config

	if e.options.columns > 0 || e.options.paddingX > 0 || e.options.paddingY > 0 {
		cc := cluster.DefaultConfig()
		if e.options.columns > 0 {
			cc.Columns = e.options.columns
		}
		if e.options.paddingX > 0 {
			cc.PaddingX = e.options.paddingX
		}
		if e.options.paddingY > 0 {
			cc.PaddingY = e.options.paddingY
		}
		config.Clusterer = cluster.NewColumnClustererWithConfig(cc)
	}

	if e.options.grammar != "" {
		config.Grammar = ident.GetGrammar(e.options.grammar)
	}

	if e.options.minDigits > 0 {
		config.Locator = &barcode.Locator{MinDigits: e.options.minDigits}
	}

	switch e.options.policy {
	case policyFixed:
		config.Normalizer = crop.NewNormalizerWithConfig(crop.Config{
			Policy:          crop.PolicyFixedReference,
			ReferenceWidth:  e.options.referenceWidth,
			ReferenceHeight: e.options.referenceHeight,
		})
	case policyFirstSeen:
		config.Normalizer = crop.NewNormalizerWithConfig(crop.Config{
			Policy: crop.PolicyFirstSeen,
		})
	case policyNone:
		config.Normalizer = crop.NewNormalizerWithConfig(crop.Config{
			Policy: crop.PolicyNone,
		})
	}

	config.Workers = e.options.workers
	return config
}
