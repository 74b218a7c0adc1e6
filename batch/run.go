package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/labelcrop/barcode"
	"github.com/tsawler/labelcrop/cluster"
	"github.com/tsawler/labelcrop/crop"
	"github.com/tsawler/labelcrop/docio"
	"github.com/tsawler/labelcrop/ident"
	"github.com/tsawler/labelcrop/model"
)

// Config configures a hangtag extraction run.
type Config struct {
	// Clusterer isolates the leftmost label column per page.
	Clusterer *cluster.ColumnClusterer

	// Grammar extracts the identifier from the label text.
	Grammar ident.Grammar

	// Locator finds the barcode anchor inside the label region.
	Locator *barcode.Locator

	// Normalizer applies the configured crop-window policy.
	Normalizer *crop.Normalizer

	// Workers bounds concurrent renders in RunParallel.
	// Zero or negative means GOMAXPROCS.
	Workers int

	// Logger for per-page diagnostics.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Clusterer == nil {
		c.Clusterer = cluster.NewColumnClusterer()
	}
	if c.Grammar == nil {
		c.Grammar = ident.SKUGrammar{}
	}
	if c.Locator == nil {
		c.Locator = barcode.NewLocator()
	}
	if c.Normalizer == nil {
		c.Normalizer = crop.NewNormalizer()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Label is one extracted, rendered label.
type Label struct {
	Key       model.Identifier
	PageIndex int
	Clip      model.Rect // Final crop rectangle in source page coordinates
	Width     float64    // Output page width
	Height    float64    // Output page height
	PDF       []byte     // Single-page document at Width x Height
}

// Warning records a non-fatal, per-page condition encountered during a run.
type Warning struct {
	PageIndex int
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d: %s", w.PageIndex+1, w.Message)
}

// Runner executes the per-page hangtag flow: cluster the leftmost column,
// read the identifier, locate the barcode, normalize the crop window, and
// render one output per first-seen identifier.
type Runner struct {
	config    Config
	reference ReferenceCell
}

// NewRunner creates a runner, filling unset configuration with defaults.
// Each run keeps its own first-seen reference state; do not reuse a Runner
// across runs when PolicyFirstSeen is active.
func NewRunner(config Config) *Runner {
	config.defaults()
	r := &Runner{config: config}
	cfg := config.Normalizer.Config()
	if cfg.Policy == crop.PolicyFirstSeen && cfg.ReferenceWidth > 0 && cfg.ReferenceHeight > 0 {
		// Explicit override wins over the first label's size.
		r.reference.SetOnce(cfg.ReferenceWidth, cfg.ReferenceHeight)
	}
	return r
}

// analysis is the pure per-page result, computed before any rendering.
type analysis struct {
	pageIndex int
	key       model.Identifier
	clip      model.Rect
	width     float64
	height    float64
}

// Run processes every page sequentially and returns one rendered label per
// first-seen identifier, in first-occurrence order. Pages without an
// identifier are skipped; duplicates are dropped. The returned warnings
// describe skipped pages whose skip was caused by an access failure rather
// than expected absence.
func (r *Runner) Run(ctx context.Context, src docio.Source, comp docio.Compositor) ([]Label, []Warning, error) {
	analyses, warnings, err := r.analyze(ctx, src)
	if err != nil {
		return nil, warnings, err
	}

	labels := make([]Label, 0, len(analyses))
	for _, a := range analyses {
		if err := ctx.Err(); err != nil {
			return labels, warnings, err
		}
		label, err := r.render(a, comp)
		if err != nil {
			warnings = append(warnings, Warning{PageIndex: a.pageIndex, Message: err.Error()})
			continue
		}
		labels = append(labels, label)
	}
	return labels, warnings, nil
}

// RunParallel is the two-pass parallel design: a synchronous analysis pass
// walks the pages in order, deduplicates identifiers, and establishes the
// first-seen reference size; a second pass renders all labels concurrently.
// Every rendered output therefore shares the reference size of the run's
// first successfully extracted label, regardless of render order.
func (r *Runner) RunParallel(ctx context.Context, src docio.Source, comp docio.Compositor) ([]Label, []Warning, error) {
	analyses, warnings, err := r.analyze(ctx, src)
	if err != nil {
		return nil, warnings, err
	}

	labels := make([]Label, len(analyses))
	rendered := make([]bool, len(analyses))
	renderWarnings := make([]Warning, len(analyses))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for i, a := range analyses {
		i, a := i, a
		g.Go(func() error {
			label, err := r.render(a, comp)
			if err != nil {
				renderWarnings[i] = Warning{PageIndex: a.pageIndex, Message: err.Error()}
				return nil
			}
			labels[i] = label
			rendered[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	out := make([]Label, 0, len(labels))
	for i := range labels {
		if rendered[i] {
			out = append(out, labels[i])
		} else if renderWarnings[i].Message != "" {
			warnings = append(warnings, renderWarnings[i])
		}
	}
	return out, warnings, nil
}

// analyze walks all pages in order, producing one analysis per first-seen
// identifier. This pass owns every write to the reference cell.
func (r *Runner) analyze(ctx context.Context, src docio.Source) ([]analysis, []Warning, error) {
	agg := NewAggregator()
	var analyses []analysis
	var warnings []Warning

	for i := 0; i < src.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return analyses, warnings, err
		}

		a, ok, err := r.analyzePage(src, i)
		if err != nil {
			warnings = append(warnings, Warning{PageIndex: i, Message: err.Error()})
			continue
		}
		if !ok {
			// Expected absence: not a label page.
			r.config.Logger.Debug("no identifier on page", "page", i+1)
			continue
		}
		if !agg.Add(i, a.key) {
			r.config.Logger.Debug("duplicate identifier dropped", "page", i+1, "key", a.key)
			continue
		}
		agg.SetSharedRect(a.key, a.clip)

		a.width, a.height = r.outputSize(a.clip)
		analyses = append(analyses, a)
	}

	return analyses, warnings, nil
}

// analyzePage runs the pure per-page pipeline. ok=false reports expected
// absence (no identifier); errors report access failures.
func (r *Runner) analyzePage(src docio.Source, pageIndex int) (analysis, bool, error) {
	dims, err := src.PageDimensions(pageIndex)
	if err != nil {
		return analysis{}, false, fmt.Errorf("page dimensions: %w", err)
	}
	fragments, err := src.TextFragments(pageIndex)
	if err != nil {
		return analysis{}, false, fmt.Errorf("text fragments: %w", err)
	}

	region := r.config.Clusterer.LeftmostColumn(fragments, dims)

	key, ok := r.config.Grammar.Extract(regionText(fragments, region))
	if !ok {
		return analysis{}, false, nil
	}

	words, err := src.Words(pageIndex, region)
	if err != nil {
		return analysis{}, false, fmt.Errorf("words: %w", err)
	}
	anchor, hasAnchor := r.config.Locator.Locate(words)

	clip := r.config.Normalizer.Normalize(region, anchor, hasAnchor, dims)

	return analysis{pageIndex: pageIndex, key: key, clip: clip}, true, nil
}

// outputSize resolves the output page size for one label under the active
// policy. Under PolicyFirstSeen the first call establishes the run's
// reference size from the label's own clip.
func (r *Runner) outputSize(clip model.Rect) (float64, float64) {
	cfg := r.config.Normalizer.Config()
	switch cfg.Policy {
	case crop.PolicyFixedReference:
		return cfg.ReferenceWidth, cfg.ReferenceHeight
	case crop.PolicyFirstSeen:
		r.reference.SetOnce(clip.Width(), clip.Height())
		w, h, _ := r.reference.Get()
		return w, h
	default:
		return clip.Width(), clip.Height()
	}
}

func (r *Runner) render(a analysis, comp docio.Compositor) (Label, error) {
	pdf, err := comp.RenderCroppedPage(a.pageIndex, a.clip, a.width, a.height)
	if err != nil {
		return Label{}, fmt.Errorf("render: %w", err)
	}
	return Label{
		Key:       a.key,
		PageIndex: a.pageIndex,
		Clip:      a.clip,
		Width:     a.width,
		Height:    a.height,
		PDF:       pdf,
	}, nil
}

// regionText joins the text of all fragments intersecting the region, in
// fragment order.
func regionText(fragments []model.TextFragment, region model.Rect) string {
	var sb strings.Builder
	for _, f := range fragments {
		if !region.Intersects(f.Rect) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}
