// Package crop computes the final, geometrically normalized crop rectangle
// for a detected label.
//
// # Normalization policies
//
// Three independently evolved crop-window conventions exist in production
// label sheets, so the policy is an explicit configuration choice rather
// than a silent default:
//
//   - [PolicyFixedReference] - a window of fixed reference size centered
//     horizontally on the barcode digits, shifted rigidly (never clipped)
//     into the page
//   - [PolicyFirstSeen] - the first successfully extracted label of a run
//     defines the output size; every later label is rendered at that size
//   - [PolicyNone] - the detected region is used as-is
//
// The [Normalizer] applies the selected policy.
//
// # Content-mask detection
//
// For scanned sheets with no usable text layer, the [MaskDetector] bounds
// all raster pixels darker than an intensity threshold, expands (never
// shrinks) the box to a target aspect ratio around its center, clamps it to
// the raster, and converts it back to page coordinates with independent
// per-axis scale factors. A negative threshold selects Otsu's method over
// the raster's intensity histogram.
package crop
