// Package labelcrop provides a fluent API for locating product labels on
// scanned PDF sheets, extracting their identifiers, and emitting one
// normalized single-label PDF per identifier.
//
// Basic usage:
//
//	labels, warnings, err := labelcrop.Open("hangtags.pdf").Labels()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", labelcrop.FormatWarnings(warnings))
//	}
//
// With options:
//
//	labels, _, err := labelcrop.Open("hangtags.pdf").
//	    Columns(3).
//	    FixedReference(82.69, 78.56).
//	    Parallel(8).
//	    Labels()
//
// Carton sheets group whole pages by their REFERENCIA line instead of
// cutting out individual labels:
//
//	groups, _, err := labelcrop.Open("cartons.pdf").CartonGroups()
//
// For advanced use cases, the lower-level batch and docio packages are also
// available.
package labelcrop

import (
	"strings"

	"github.com/tsawler/labelcrop/batch"
	"github.com/tsawler/labelcrop/docio"
)

// Label is one extracted, rendered label. See [batch.Label].
type Label = batch.Label

// CartonGroup is one group of pages sharing an identifier. See
// [batch.CartonGroup].
type CartonGroup = batch.CartonGroup

// Warning records a non-fatal, per-page condition. See [batch.Warning].
type Warning = batch.Warning

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The returned Extractor must be closed when done, either explicitly via
// Close() or implicitly when calling a terminal operation like Labels().
//
// Example:
//
//	labels, warnings, err := labelcrop.Open("hangtags.pdf").Labels()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor from an already-opened docio.Document.
// This is useful when you need more control over the document lifecycle.
// Note: The caller is responsible for closing the document.
func FromDocument(d *docio.Document) *Extractor {
	return &Extractor{
		doc:       d,
		ownsDoc:   false,
		docOpened: true,
		options:   defaultOptions(),
	}
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := labelcrop.Must(labelcrop.Open("hangtags.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustLabels is a helper that wraps a call to Labels() or CartonGroups()
// and panics if the error is non-nil. It discards warnings and returns just
// the value.
func MustLabels[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
