package crop

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/tsawler/labelcrop/model"
)

// AutoThreshold selects Otsu's method instead of a fixed intensity cutoff.
const AutoThreshold = -1

// MaskConfig holds configuration for content-mask detection.
type MaskConfig struct {
	// Threshold is the intensity cutoff (0-255): pixels strictly darker
	// count as content. AutoThreshold derives the cutoff from the raster's
	// histogram via Otsu's method.
	Threshold int

	// TargetRatio is the width/height ratio the content box is expanded to.
	TargetRatio float64
}

// DefaultMaskConfig returns the configuration for the 680x480 carton label.
func DefaultMaskConfig() MaskConfig {
	return MaskConfig{
		Threshold:   250,
		TargetRatio: 680.0 / 480.0,
	}
}

// MaskDetector finds the printed content of a rasterized page without a text
// layer.
type MaskDetector struct {
	config MaskConfig
}

// NewMaskDetector creates a detector with default configuration.
func NewMaskDetector() *MaskDetector {
	return &MaskDetector{config: DefaultMaskConfig()}
}

// NewMaskDetectorWithConfig creates a detector with custom configuration.
func NewMaskDetectorWithConfig(config MaskConfig) *MaskDetector {
	return &MaskDetector{config: config}
}

// Detect returns the crop rectangle around all content pixels of the
// grayscale raster, expressed in page coordinates.
//
// The box bounds every pixel darker than the threshold; a raster with no
// qualifying pixel falls back to the full raster bounds. The box is then
// expanded (never shrunk) to the target aspect ratio around its center,
// clamped into the raster, and scaled to page space with independent
// per-axis factors.
func (d *MaskDetector) Detect(gray *image.Gray, page model.PageDimensions) model.Rect {
	bounds := gray.Bounds()
	rasterW := float64(bounds.Dx())
	rasterH := float64(bounds.Dy())
	rasterDims := model.PageDimensions{Width: rasterW, Height: rasterH}

	threshold := d.config.Threshold
	if threshold < 0 {
		threshold = OtsuThreshold(gray)
	}

	box, found := contentBounds(gray, uint8(threshold))
	if !found {
		box = model.Rect{X0: 0, Y0: 0, X1: rasterW, Y1: rasterH}
	}

	box = box.ExpandToAspect(d.config.TargetRatio).Clamp(rasterDims)

	return box.Scale(page.Width/rasterW, page.Height/rasterH)
}

// contentBounds returns the tight bounding box of pixels strictly darker
// than threshold, in raster coordinates relative to the image origin.
func contentBounds(gray *image.Gray, threshold uint8) (model.Rect, bool) {
	bounds := gray.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y < threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return model.Rect{}, false
	}

	return model.Rect{
		X0: float64(minX - bounds.Min.X),
		Y0: float64(minY - bounds.Min.Y),
		X1: float64(maxX - bounds.Min.X),
		Y1: float64(maxY - bounds.Min.Y),
	}, true
}

// OtsuThreshold computes the intensity cutoff maximizing between-class
// variance over the image's 256-bin histogram. The returned value is an
// exclusive upper bound for the dark class: every content pixel is strictly
// below it, matching the mask comparison in Detect.
func OtsuThreshold(img image.Image) int {
	bins := histogram.NewRGBAHistogram(img).R.Bins

	total := 0
	for _, c := range bins {
		total += c
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, c := range bins {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	best := 0
	bestVar := -1.0

	for i, c := range bins {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(c)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = i
		}
	}

	// The argmax bin is the darkest intensity of the dark class itself;
	// shift by one so a strict less-than keeps that class.
	return best + 1
}
