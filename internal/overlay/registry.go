package overlay

import (
	"tourguide/internal/geometry"
)

// Registry maps target references to the screen rectangles of live host
// widgets. Hosts re-tag their regions during layout; the overlay resolves
// lazily each render because a widget may move or re-mount at any time.
//
// The registry is driven from the UI event loop only and needs no locking.
type Registry struct {
	rects map[string]geometry.Rect
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rects: make(map[string]geometry.Rect)}
}

// Tag records (or moves) the rectangle for a target reference.
func (r *Registry) Tag(ref string, rect geometry.Rect) {
	r.rects[ref] = rect
}

// Remove drops a target, e.g. when its widget unmounts.
func (r *Registry) Remove(ref string) {
	delete(r.rects, ref)
}

// Resolve looks up the rectangle for a target reference.
func (r *Registry) Resolve(ref string) (geometry.Rect, bool) {
	rect, ok := r.rects[ref]
	return rect, ok
}

// Clear drops all targets, e.g. on a page change.
func (r *Registry) Clear() {
	r.rects = make(map[string]geometry.Rect)
}
