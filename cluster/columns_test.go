package cluster

import (
	"math"
	"testing"

	"github.com/tsawler/labelcrop/model"
)

// Helper to create a fragment centered at cx with the given size.
func makeFragment(cx, y, width, height float64, text string) model.TextFragment {
	return model.TextFragment{
		Rect: model.Rect{X0: cx - width/2, Y0: y, X1: cx + width/2, Y1: y + height},
		Text: text,
	}
}

func TestColumnClusterer_ThreeWellSeparatedColumns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaddingX = 0
	cfg.PaddingY = 0
	clusterer := NewColumnClustererWithConfig(cfg)

	dims := model.PageDimensions{Width: 300, Height: 400}

	// Three clusters of x-centers around 10, 100 and 200.
	var fragments []model.TextFragment
	for _, dy := range []float64{10, 30, 50} {
		fragments = append(fragments,
			makeFragment(10+dy/100, dy, 8, 10, "left"),
			makeFragment(100+dy/100, dy, 8, 10, "middle"),
			makeFragment(200+dy/100, dy, 8, 10, "right"),
		)
	}

	members := clusterer.leftmostMembers(fragments)
	if len(members) != 3 {
		t.Fatalf("expected 3 leftmost members, got %d", len(members))
	}
	for _, m := range members {
		if m.Text != "left" {
			t.Errorf("fragment %q assigned to leftmost column", m.Text)
		}
	}

	rect := clusterer.LeftmostColumn(fragments, dims)
	if rect.X1 >= 50 {
		t.Errorf("leftmost column rect extends too far right: %+v", rect)
	}
}

func TestColumnClusterer_ZeroVarianceInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaddingX = 0
	cfg.PaddingY = 0
	clusterer := NewColumnClustererWithConfig(cfg)

	dims := model.PageDimensions{Width: 300, Height: 400}

	// All fragments share the same x-center; with k=3 the clustering
	// collapses to one group containing every fragment.
	fragments := []model.TextFragment{
		makeFragment(50, 10, 20, 10, "a"),
		makeFragment(50, 30, 30, 10, "b"),
		makeFragment(50, 50, 10, 10, "c"),
	}

	rect := clusterer.LeftmostColumn(fragments, dims)

	// Tight bound over all fragments, not a subset.
	want := model.Rect{X0: 35, Y0: 10, X1: 65, Y1: 60}
	if rect != want {
		t.Errorf("LeftmostColumn() = %+v, want %+v", rect, want)
	}
}

func TestColumnClusterer_NoFragmentsFallback(t *testing.T) {
	clusterer := NewColumnClusterer()
	dims := model.PageDimensions{Width: 300, Height: 400}

	rect := clusterer.LeftmostColumn(nil, dims)

	want := model.Rect{X0: 0, Y0: 0, X1: 100, Y1: 400}
	if rect != want {
		t.Errorf("fallback rect = %+v, want %+v", rect, want)
	}
}

func TestColumnClusterer_PaddingAndClamping(t *testing.T) {
	cfg := Config{Columns: 2, PaddingX: 5, PaddingY: 8}
	clusterer := NewColumnClustererWithConfig(cfg)

	dims := model.PageDimensions{Width: 200, Height: 100}

	// Leftmost fragment touches the page edge, so padding must clamp at 0.
	fragments := []model.TextFragment{
		makeFragment(4, 2, 8, 10, "left"),
		makeFragment(150, 2, 8, 10, "right"),
	}

	rect := clusterer.LeftmostColumn(fragments, dims)

	if rect.X0 != 0 {
		t.Errorf("X0 = %v, want clamped 0", rect.X0)
	}
	if rect.Y0 != 0 {
		t.Errorf("Y0 = %v, want clamped 0", rect.Y0)
	}
	if math.Abs(rect.X1-13) > 0.0001 {
		t.Errorf("X1 = %v, want 13 (fragment right edge + padding)", rect.X1)
	}
	if math.Abs(rect.Y1-20) > 0.0001 {
		t.Errorf("Y1 = %v, want 20 (fragment bottom edge + padding)", rect.Y1)
	}
}

func TestCluster1D_TieBreaksToLowestIndex(t *testing.T) {
	// Two centers seeded at 0 and 10; a point at exactly 5 is equidistant
	// and must go to the lower index.
	xs := []float64{0, 10, 5}
	_, assignments := cluster1D(xs, 2)
	if assignments[2] != 0 {
		t.Errorf("equidistant point assigned to %d, want 0", assignments[2])
	}
}

func TestCluster1D_SingleColumn(t *testing.T) {
	xs := []float64{10, 20, 30}
	centers, assignments := cluster1D(xs, 1)
	if len(centers) != 1 {
		t.Fatalf("expected 1 center, got %d", len(centers))
	}
	if centers[0] != 20 {
		t.Errorf("center = %v, want midpoint 20", centers[0])
	}
	for i, a := range assignments {
		if a != 0 {
			t.Errorf("assignment[%d] = %d, want 0", i, a)
		}
	}
}
