package batch

import "sync"

// ReferenceCell is the run-scoped canonical output size. It is unset at run
// start, set exactly once by the first label processed, and read-only for
// the remainder of the run. Safe for concurrent use; concurrent writers
// cannot race the first assignment.
type ReferenceCell struct {
	mu     sync.Mutex
	set    bool
	width  float64
	height float64
}

// SetOnce records the reference size if the cell is still unset. It returns
// true when this call performed the assignment, false when a size was
// already established.
func (c *ReferenceCell) SetOnce(width, height float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set {
		return false
	}
	c.set = true
	c.width = width
	c.height = height
	return true
}

// Get returns the established reference size, or ok=false while unset.
func (c *ReferenceCell) Get() (width, height float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height, c.set
}
