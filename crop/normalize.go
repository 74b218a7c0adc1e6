package crop

import (
	"github.com/tsawler/labelcrop/barcode"
	"github.com/tsawler/labelcrop/model"
)

// Policy selects how detected label regions are normalized into final crop
// rectangles.
type Policy int

const (
	// PolicyFirstSeen renders every label at the size of the first label
	// successfully extracted in the run.
	PolicyFirstSeen Policy = iota

	// PolicyFixedReference builds a window of configured reference size,
	// horizontally centered on the barcode digits.
	PolicyFixedReference

	// PolicyNone keeps the detected region unchanged.
	PolicyNone
)

func (p Policy) String() string {
	switch p {
	case PolicyFirstSeen:
		return "first-seen"
	case PolicyFixedReference:
		return "fixed-reference"
	case PolicyNone:
		return "none"
	default:
		return "unknown"
	}
}

// Config holds normalization configuration.
type Config struct {
	Policy Policy

	// ReferenceWidth and ReferenceHeight are the fixed window size used by
	// PolicyFixedReference, in page units. They also serve as an optional
	// override of the first-seen size.
	ReferenceWidth  float64
	ReferenceHeight float64
}

// DefaultConfig returns the configuration for the hangtag reference label.
func DefaultConfig() Config {
	return Config{
		Policy:          PolicyFixedReference,
		ReferenceWidth:  82.68998718261719,
		ReferenceHeight: 78.56026458740234,
	}
}

// Normalizer turns a detected label region and an optional barcode anchor
// into the final crop rectangle.
type Normalizer struct {
	config Config
}

// NewNormalizer creates a normalizer with default configuration.
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration.
func NewNormalizerWithConfig(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Config returns the active configuration.
func (n *Normalizer) Config() Config {
	return n.config
}

// Normalize computes the final crop rectangle for a label region. The anchor
// is the barcode token located inside the region; hasAnchor=false falls back
// to the unmodified region, which the rendering step still forces to the
// reference size.
//
// Under PolicyFixedReference the window is exactly ReferenceWidth wide and
// ReferenceHeight tall: horizontally centered on the anchor, vertically
// aligned with the top of the region, and shifted rigidly into the page so
// the configured size is preserved, never clipped. Other policies return the
// region unchanged; their sizing happens at render time.
func (n *Normalizer) Normalize(region model.Rect, anchor barcode.Anchor, hasAnchor bool, dims model.PageDimensions) model.Rect {
	if n.config.Policy != PolicyFixedReference || !hasAnchor {
		return region
	}

	w := n.config.ReferenceWidth
	h := n.config.ReferenceHeight
	window := model.Rect{
		X0: anchor.CenterX - w/2,
		Y0: region.Y0,
		X1: anchor.CenterX + w/2,
		Y1: region.Y0 + h,
	}
	return window.ShiftInto(dims)
}
