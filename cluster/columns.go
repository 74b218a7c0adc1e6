package cluster

import (
	"math"

	"github.com/tsawler/labelcrop/model"
)

// kmeansRounds is the fixed number of assignment/update rounds. Deliberately
// not convergence-checked; see the package documentation.
const kmeansRounds = 10

// Config holds configuration for column clustering.
type Config struct {
	// Columns is the number of label instances arranged across the page.
	// Must be >= 1.
	Columns int

	// PaddingX is added on both the left and right of the tight bound, in
	// page units.
	PaddingX float64

	// PaddingY is added on both the top and bottom of the tight bound, in
	// page units.
	PaddingY float64
}

// DefaultConfig returns the configuration matching a standard three-across
// label sheet.
func DefaultConfig() Config {
	return Config{
		Columns:  3,
		PaddingX: 5,
		PaddingY: 8,
	}
}

// ColumnClusterer locates the leftmost label column on a page.
type ColumnClusterer struct {
	config Config
}

// NewColumnClusterer creates a clusterer with default configuration.
func NewColumnClusterer() *ColumnClusterer {
	return &ColumnClusterer{config: DefaultConfig()}
}

// NewColumnClustererWithConfig creates a clusterer with custom configuration.
func NewColumnClustererWithConfig(config Config) *ColumnClusterer {
	if config.Columns < 1 {
		config.Columns = 1
	}
	return &ColumnClusterer{config: config}
}

// LeftmostColumn returns the padded tight bounding box around the fragments
// assigned to the leftmost of the configured columns, clamped to the page.
//
// When the page has no text fragments, or the leftmost cluster ends up with
// no members, it falls back to a naive equal-width partition: the first of
// Columns vertical strips spanning the full page height.
func (c *ColumnClusterer) LeftmostColumn(fragments []model.TextFragment, dims model.PageDimensions) model.Rect {
	members := c.leftmostMembers(fragments)
	if len(members) == 0 {
		return c.naiveColumn(dims)
	}

	bound := members[0].Rect
	for _, f := range members[1:] {
		bound = bound.Union(f.Rect)
	}

	padded := model.Rect{
		X0: bound.X0 - c.config.PaddingX,
		Y0: bound.Y0 - c.config.PaddingY,
		X1: bound.X1 + c.config.PaddingX,
		Y1: bound.Y1 + c.config.PaddingY,
	}
	return padded.Clamp(dims)
}

// leftmostMembers clusters fragment x-centers into Columns groups and
// returns the fragments of the group with the smallest final center.
func (c *ColumnClusterer) leftmostMembers(fragments []model.TextFragment) []model.TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	xs := make([]float64, len(fragments))
	for i, f := range fragments {
		xs[i] = f.Rect.CenterX()
	}

	centers, assignments := cluster1D(xs, c.config.Columns)

	leftmost := 0
	for j, center := range centers {
		if center < centers[leftmost] {
			leftmost = j
		}
	}

	var members []model.TextFragment
	for i, a := range assignments {
		if a == leftmost {
			members = append(members, fragments[i])
		}
	}
	return members
}

// naiveColumn is the equal-width fallback: the first of Columns vertical
// strips across the page.
func (c *ColumnClusterer) naiveColumn(dims model.PageDimensions) model.Rect {
	return model.Rect{
		X0: 0,
		Y0: 0,
		X1: dims.Width / float64(c.config.Columns),
		Y1: dims.Height,
	}
}

// cluster1D runs the fixed-budget 1-D k-means. Centers are seeded evenly
// across the observed data range [min, max], not the page width. Distance
// ties assign to the lowest center index; a center with no members keeps its
// previous value. With k == 1, or zero variance in the input, everything is
// assigned to a single center at the data midpoint.
func cluster1D(xs []float64, k int) (centers []float64, assignments []int) {
	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}

	assignments = make([]int, len(xs))

	if k == 1 || maxX == minX {
		return []float64{(minX + maxX) / 2}, assignments
	}

	spacing := (maxX - minX) / float64(k-1)
	centers = make([]float64, k)
	for i := range centers {
		centers[i] = minX + float64(i)*spacing
	}

	sums := make([]float64, k)
	counts := make([]int, k)

	for round := 0; round < kmeansRounds; round++ {
		for i, x := range xs {
			best := 0
			bestDist := math.Abs(x - centers[0])
			for j := 1; j < k; j++ {
				if d := math.Abs(x - centers[j]); d < bestDist {
					best = j
					bestDist = d
				}
			}
			assignments[i] = best
		}

		for j := 0; j < k; j++ {
			sums[j] = 0
			counts[j] = 0
		}
		for i, x := range xs {
			sums[assignments[i]] += x
			counts[assignments[i]]++
		}
		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				centers[j] = sums[j] / float64(counts[j])
			}
		}
	}

	return centers, assignments
}
