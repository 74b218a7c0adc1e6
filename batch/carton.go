package batch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tsawler/labelcrop/crop"
	"github.com/tsawler/labelcrop/docio"
	"github.com/tsawler/labelcrop/ident"
	"github.com/tsawler/labelcrop/model"
)

// UnknownKey groups pages whose text carries no recognizable identifier in
// the carton flow. Such pages still belong to the shipment and must not be
// dropped from the output.
const UnknownKey = model.Identifier("UNKNOWN")

// CartonConfig configures a carton extraction run.
type CartonConfig struct {
	// Detector finds the label area on the document's first page from its
	// raster content mask.
	Detector *crop.MaskDetector

	// Grammar extracts the grouping identifier from full-page text.
	Grammar ident.Grammar

	// Zoom is the raster zoom factor for mask detection.
	Zoom float64

	// Logger for per-document diagnostics.
	Logger *slog.Logger
}

func (c *CartonConfig) defaults() {
	if c.Detector == nil {
		c.Detector = crop.NewMaskDetector()
	}
	if c.Grammar == nil {
		c.Grammar = ident.ReferenciaGrammar{}
	}
	if c.Zoom <= 0 {
		c.Zoom = 2.0
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// CartonGroup is one output unit of the carton flow: all pages sharing one
// identifier, cropped in place to the document's shared label rectangle.
type CartonGroup struct {
	Key         model.Identifier
	PageIndices []int
	Rect        model.Rect // Shared crop rectangle, page coordinates
	PDF         []byte     // Multi-page document with crop boxes applied
}

// CartonRunner executes the per-document carton flow: one crop rectangle
// detected on the first page, every page grouped by identifier, and one
// multi-page cropped document emitted per group.
type CartonRunner struct {
	config CartonConfig
}

// NewCartonRunner creates a runner, filling unset configuration with
// defaults.
func NewCartonRunner(config CartonConfig) *CartonRunner {
	config.defaults()
	return &CartonRunner{config: config}
}

// Run processes one document. Groups are returned in first-occurrence order
// of their identifiers; pages without an identifier are collected under
// UnknownKey. A document with zero pages is a document-level error.
func (r *CartonRunner) Run(ctx context.Context, src docio.Source, comp docio.Compositor) ([]CartonGroup, []Warning, error) {
	if src.PageCount() == 0 {
		return nil, nil, fmt.Errorf("document has no pages")
	}

	var warnings []Warning

	rect, warn := r.detectRect(src)
	if warn != nil {
		warnings = append(warnings, *warn)
	}

	agg := NewCollectingAggregator()
	for i := 0; i < src.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, warnings, err
		}
		key := r.pageKey(src, i, &warnings)
		if agg.Add(i, key) {
			// One rectangle per document: every group shares it.
			agg.SetSharedRect(key, rect)
		}
	}

	groups := agg.Groups()
	out := make([]CartonGroup, 0, len(groups))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return out, warnings, err
		}
		pdf, err := comp.ExtractPagesCropped(g.PageIndices, g.SharedRect)
		if err != nil {
			warnings = append(warnings, Warning{
				PageIndex: g.PageIndices[0],
				Message:   fmt.Sprintf("crop group %s: %v", g.Key, err),
			})
			continue
		}
		out = append(out, CartonGroup{
			Key:         g.Key,
			PageIndices: g.PageIndices,
			Rect:        g.SharedRect,
			PDF:         pdf,
		})
	}
	return out, warnings, nil
}

// detectRect computes the shared crop rectangle from the first page's
// raster. When no raster is available the full first page is used.
func (r *CartonRunner) detectRect(src docio.Source) (model.Rect, *Warning) {
	dims, err := src.PageDimensions(0)
	if err != nil {
		return model.Rect{}, &Warning{PageIndex: 0, Message: fmt.Sprintf("page dimensions: %v", err)}
	}
	fullPage := model.Rect{X0: 0, Y0: 0, X1: dims.Width, Y1: dims.Height}

	raster, err := src.RasterGray(0, r.config.Zoom)
	if err != nil {
		return fullPage, &Warning{PageIndex: 0, Message: fmt.Sprintf("raster unavailable, using full page: %v", err)}
	}
	return r.config.Detector.Detect(raster, dims), nil
}

// pageKey extracts the grouping identifier from a page's full text, mapping
// absence to UnknownKey.
func (r *CartonRunner) pageKey(src docio.Source, pageIndex int, warnings *[]Warning) model.Identifier {
	fragments, err := src.TextFragments(pageIndex)
	if err != nil {
		*warnings = append(*warnings, Warning{PageIndex: pageIndex, Message: fmt.Sprintf("text fragments: %v", err)})
		return UnknownKey
	}

	var sb strings.Builder
	for _, f := range fragments {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Text)
	}

	key, ok := r.config.Grammar.Extract(sb.String())
	if !ok {
		return UnknownKey
	}
	return key
}
