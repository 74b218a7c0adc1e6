package batch

import "github.com/tsawler/labelcrop/model"

// Aggregator groups pages by extracted identifier, preserving the order in
// which identifiers first appear across the processed batch.
//
// The first page producing a given identifier opens that identifier's group
// and supplies its shared crop rectangle. What happens to later pages with
// the same identifier depends on the variant: the hangtag flow drops them
// (one output per identifier, built from the first occurrence only), while
// the carton flow collects every page into the group.
type Aggregator struct {
	keepDuplicates bool
	groups         []*model.Group
	index          map[model.Identifier]int
}

// NewAggregator creates an aggregator that drops duplicate pages.
func NewAggregator() *Aggregator {
	return &Aggregator{index: make(map[model.Identifier]int)}
}

// NewCollectingAggregator creates an aggregator that records every page
// bearing an identifier into that identifier's group.
func NewCollectingAggregator() *Aggregator {
	return &Aggregator{keepDuplicates: true, index: make(map[model.Identifier]int)}
}

// Add records one (pageIndex, identifier) observation. Pages must be fed in
// page order. It returns true when the identifier was first seen and a new
// group was opened; the caller supplies the group's shared rectangle via
// SetSharedRect in that case.
func (a *Aggregator) Add(pageIndex int, key model.Identifier) bool {
	if i, seen := a.index[key]; seen {
		if a.keepDuplicates {
			a.groups[i].PageIndices = append(a.groups[i].PageIndices, pageIndex)
		}
		return false
	}
	a.index[key] = len(a.groups)
	a.groups = append(a.groups, &model.Group{
		Key:         key,
		PageIndices: []int{pageIndex},
	})
	return true
}

// SetSharedRect assigns the crop rectangle shared by the identifier's group.
// It has no effect on unknown identifiers.
func (a *Aggregator) SetSharedRect(key model.Identifier, rect model.Rect) {
	if i, ok := a.index[key]; ok {
		a.groups[i].SharedRect = rect
	}
}

// Len returns the number of groups opened so far.
func (a *Aggregator) Len() int {
	return len(a.groups)
}

// Groups returns the groups in first-occurrence order.
func (a *Aggregator) Groups() []model.Group {
	out := make([]model.Group, len(a.groups))
	for i, g := range a.groups {
		out[i] = *g
	}
	return out
}
