// Command labelcrop batch-processes scanned label sheets into a ZIP archive
// of single-identifier PDFs.
//
// Usage:
//
//	labelcrop [flags] input.pdf [input2.pdf ...]
//
// Hangtag sheets produce one cropped label PDF per SKU; carton sheets
// produce one multi-page PDF per REFERENCIA group. A document that cannot
// be processed is reported and skipped; the batch continues.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/labelcrop"
	"github.com/tsawler/labelcrop/docio"
	"github.com/tsawler/labelcrop/output"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (flags override)")
		mode       = flag.String("mode", "", "processing mode: hangtag or carton")
		out        = flag.String("out", "", "output ZIP archive path")
		copies     = flag.Int("copies", 0, "page copies per hangtag label")
		workers    = flag.Int("workers", 0, "concurrent renders (0 = GOMAXPROCS)")
		columns    = flag.Int("columns", 0, "label columns per page")
		grammar    = flag.String("grammar", "", "identifier grammar name")
		minDigits  = flag.Int("min-digits", 0, "minimum digits for the barcode anchor")
		zoom       = flag.Float64("zoom", 0, "raster zoom for carton mask detection")
		firstSeen  = flag.Bool("first-seen", false, "size outputs from the first label instead of the fixed window")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlags(cfg, mode, out, copies, workers, columns, grammar, minDigits, zoom, firstSeen, verbose)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: labelcrop [flags] input.pdf [input2.pdf ...]")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, inputs, logger); err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}
}

// applyFlags overrides config fields with explicitly set flags.
func applyFlags(cfg *Config, mode, out *string, copies, workers, columns *int, grammar *string, minDigits *int, zoom *float64, firstSeen, verbose *bool) {
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *out != "" {
		cfg.Output = *out
	}
	if *copies > 0 {
		cfg.Copies = *copies
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *columns > 0 {
		cfg.Columns = *columns
	}
	if *grammar != "" {
		cfg.Grammar = *grammar
	}
	if *minDigits > 0 {
		cfg.MinDigits = *minDigits
	}
	if *zoom > 0 {
		cfg.Zoom = *zoom
	}
	if *firstSeen {
		cfg.Reference.Policy = "first-seen"
	}
	if *verbose {
		cfg.Verbose = true
	}
}

func run(ctx context.Context, cfg *Config, inputs []string, logger *slog.Logger) error {
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.Output, err)
	}
	defer f.Close()

	archive := output.NewArchive(f)
	processed := 0

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if cfg.Mode == "carton" {
			err = processCarton(ctx, cfg, input, archive, logger)
		} else {
			err = processHangtag(ctx, cfg, input, archive, logger)
		}
		if err != nil {
			// Document-level failure: report and continue with the batch.
			logger.Error("skipping document", "input", input, "error", err)
			continue
		}
		processed++
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	if processed == 0 {
		return fmt.Errorf("no documents processed")
	}
	logger.Info("batch complete", "documents", processed, "entries", len(archive.Names()), "archive", cfg.Output)
	return nil
}

func processHangtag(ctx context.Context, cfg *Config, input string, archive *output.Archive, logger *slog.Logger) error {
	ext := extractor(ctx, cfg, input)
	labels, warnings, err := ext.Labels()
	if err != nil {
		return err
	}
	logWarnings(logger, input, warnings)

	for _, label := range labels {
		pdf := label.PDF
		if cfg.Copies > 1 {
			if pdf, err = docio.Replicate(pdf, cfg.Copies); err != nil {
				return fmt.Errorf("replicate %s: %w", label.Key, err)
			}
		}
		name := output.FileName(cfg.HangtagPrefix, label.Key)
		if err := archive.Add(name, pdf); err != nil {
			return err
		}
		logger.Debug("label written", "input", input, "entry", name, "page", label.PageIndex+1)
	}
	logger.Info("document processed", "input", input, "labels", len(labels))
	return nil
}

func processCarton(ctx context.Context, cfg *Config, input string, archive *output.Archive, logger *slog.Logger) error {
	ext := extractor(ctx, cfg, input)
	groups, warnings, err := ext.CartonGroups()
	if err != nil {
		return err
	}
	logWarnings(logger, input, warnings)

	for _, group := range groups {
		name := output.FileName(cfg.CartonPrefix, group.Key)
		if err := archive.Add(name, group.PDF); err != nil {
			return err
		}
		logger.Debug("group written", "input", input, "entry", name, "pages", len(group.PageIndices))
	}
	logger.Info("document processed", "input", input, "groups", len(groups))
	return nil
}

// extractor builds the fluent chain for one input from the configuration.
func extractor(ctx context.Context, cfg *Config, input string) *labelcrop.Extractor {
	ext := labelcrop.Open(input).Context(ctx)
	if cfg.Columns > 0 {
		ext = ext.Columns(cfg.Columns)
	}
	if cfg.Grammar != "" {
		ext = ext.Grammar(cfg.Grammar)
	}
	if cfg.MinDigits > 0 {
		ext = ext.MinDigits(cfg.MinDigits)
	}
	if cfg.Zoom > 0 {
		ext = ext.Zoom(cfg.Zoom)
	}
	switch cfg.Reference.Policy {
	case "fixed":
		ext = ext.FixedReference(cfg.Reference.Width, cfg.Reference.Height)
	case "first-seen":
		ext = ext.FirstSeenReference()
	case "none":
		ext = ext.NoNormalize()
	}
	if cfg.Workers > 0 {
		ext = ext.Parallel(cfg.Workers)
	}
	return ext
}

func logWarnings(logger *slog.Logger, input string, warnings []labelcrop.Warning) {
	for _, w := range warnings {
		logger.Warn("page warning", "input", input, "page", w.PageIndex+1, "message", w.Message)
	}
}
