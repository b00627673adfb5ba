package viewport

import "github.com/irfansharif/zooming/internal/geom"

// LayoutCache remembers the (container, content) pair the scale bounds were
// last computed for. It only saves work; results are identical with or
// without it.
type LayoutCache struct {
	container geom.Size
	content   geom.Size
	valid     bool
}

// Matches reports whether the cache is valid for exactly these sizes.
func (lc *LayoutCache) Matches(container, content geom.Size) bool {
	return lc.valid && lc.container == container && lc.content == content
}

// Store records the sizes and marks the cache valid.
func (lc *LayoutCache) Store(container, content geom.Size) {
	lc.container, lc.content = container, content
	lc.valid = true
}

// Invalidate forces the next layout pass to recompute.
func (lc *LayoutCache) Invalidate() { lc.valid = false }

func (lc *LayoutCache) Valid() bool { return lc.valid }

// Container returns the last cached container size (zero if never stored).
func (lc *LayoutCache) Container() geom.Size { return lc.container }
