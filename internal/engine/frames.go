package engine

import "github.com/google/uuid"

// FrameTracker holds the last measured rectangle of each materialized item,
// keyed by identity.
type FrameTracker struct {
	frames map[uuid.UUID]Rect
}

// NewFrameTracker returns an empty tracker.
func NewFrameTracker() *FrameTracker {
	return &FrameTracker{frames: map[uuid.UUID]Rect{}}
}

// Observe records a layout pass. Reported entries overwrite earlier ones;
// identities missing from the report keep their last measurement.
func (t *FrameTracker) Observe(frames map[uuid.UUID]Rect) {
	for id, rect := range frames {
		t.frames[id] = rect
	}
}

// Frame returns the last measurement for an identity.
func (t *FrameTracker) Frame(id uuid.UUID) (Rect, bool) {
	rect, ok := t.frames[id]
	return rect, ok
}

// Forget removes one identity's measurement.
func (t *FrameTracker) Forget(id uuid.UUID) {
	delete(t.frames, id)
}

// Reset drops every measurement.
func (t *FrameTracker) Reset() {
	t.frames = map[uuid.UUID]Rect{}
}

// Len returns the number of tracked identities.
func (t *FrameTracker) Len() int {
	return len(t.frames)
}

// Prune drops measurements for identities no longer in the window.
func (t *FrameTracker) Prune(keep func(uuid.UUID) bool) {
	for id := range t.frames {
		if !keep(id) {
			delete(t.frames, id)
		}
	}
}
