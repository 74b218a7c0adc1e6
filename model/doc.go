// Package model provides the shared data types for label location and crop
// normalization.
//
// All geometry uses a top-left origin with y increasing downward, matching
// the coordinate space the document access layer reports text fragments in.
// Rectangles are axis-aligned and always well-formed (X0 <= X1, Y0 <= Y1);
// every rectangle produced by the analysis packages is clamped into the page
// bounds before it is handed to a compositor.
//
// # Types
//
//   - [Rect] - axis-aligned rectangle with clamping, rigid shifting, and
//     aspect-ratio expansion
//   - [PageDimensions] - page or raster extent a Rect is expressed in
//   - [TextFragment], [Word] - positioned text produced externally
//   - [LabelRegion] - candidate label bounding box before normalization
//   - [Identifier] - canonical structured code read from a label
//   - [Group] - pages sharing one identifier with their shared crop rect
package model
