package labelcrop

import "context"

// extractOptions holds configuration for label extraction.
type extractOptions struct {
	// Column clustering
	columns  int
	paddingX float64
	paddingY float64

	// Identifier grammar, resolved from the registry at run time
	grammar string

	// Barcode anchor
	minDigits int

	// Crop-window policy
	policy          policyChoice
	referenceWidth  float64
	referenceHeight float64

	// Carton mask detection
	zoom float64

	// Rendering
	workers  int
	parallel bool

	ctx context.Context
}

// policyChoice selects the output-size normalization behavior.
type policyChoice int

const (
	policyDefault policyChoice = iota
	policyFixed
	policyFirstSeen
	policyNone
)

// defaultOptions returns the default extraction options. Zero values defer
// to the batch package defaults.
func defaultOptions() extractOptions {
	return extractOptions{
		ctx: context.Background(),
	}
}

// clone creates a copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	return o
}
