package model

// TextFragment is a unit of recognized text on a page with its bounding box,
// in page coordinate space. Fragments are produced by the document access
// layer and never mutated.
type TextFragment struct {
	Rect Rect
	Text string
}

// Word is a word-level token with its bounding box, as returned by the
// document access layer for a clipped region of a page.
type Word struct {
	Rect Rect
	Text string
}

// Identifier is the canonical structured code read from a label, e.g.
// "C50039 0007 0001" or "C400080003XX". Uniqueness is scoped to one
// processing run; the first occurrence wins.
type Identifier string

// LabelRegion is the candidate bounding box for one label instance before
// final crop normalization.
type LabelRegion struct {
	Rect      Rect
	PageIndex int
}

// Group collects all pages sharing one identifier, in first-seen order,
// together with the single crop rectangle shared by the group.
type Group struct {
	Key         Identifier
	PageIndices []int
	SharedRect  Rect
}
