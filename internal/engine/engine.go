package engine

import (
	"math"

	"github.com/google/uuid"
)

// FrameSource resolves an identity to its last measured rectangle.
type FrameSource interface {
	Frame(id uuid.UUID) (Rect, bool)
}

// Engine holds the windowing decision rules. It never mutates anything:
// each Plan method looks at the current items and frames and reports what
// should change.
type Engine[I comparable] struct {
	Orientation Orientation
	Multiplier  float64
	Increase    Neighbor[I]
	Decrease    Neighbor[I]
}

// PrefetchPlan describes at most one new item per edge.
type PrefetchPlan[I comparable] struct {
	Append     I
	HasAppend  bool
	Prepend    I
	HasPrepend bool
}

// Empty reports whether the plan grows neither edge.
func (p PrefetchPlan[I]) Empty() bool {
	return !p.HasAppend && !p.HasPrepend
}

// TrimPlan describes at most one evicted item per edge.
type TrimPlan struct {
	DropFirst bool
	DropLast  bool
}

// Empty reports whether the plan evicts nothing.
func (p TrimPlan) Empty() bool {
	return !p.DropFirst && !p.DropLast
}

// WindowSize is the bootstrap length for the engine's multiplier.
func (e Engine[I]) WindowSize() int {
	return WindowSize(e.Multiplier)
}

// MinimumVisibleCount is the window length below which trimming never runs.
func (e Engine[I]) MinimumVisibleCount() int {
	return max(5, e.WindowSize()/2)
}

// PlanPrefetch grows the window when measured content ends within
// PrefetchDistance of a viewport edge. Edges without a measured frame or at
// an index boundary are left alone.
func (e Engine[I]) PlanPrefetch(items []Item[I], frames FrameSource, viewport Size) PrefetchPlan[I] {
	var plan PrefetchPlan[I]
	if len(items) == 0 {
		return plan
	}
	distance := e.Orientation.PrefetchDistance(viewport, e.Multiplier)
	length := e.Orientation.PrimaryLength(viewport)

	last := items[len(items)-1]
	if frame, ok := frames.Frame(last.ID); ok && frame.Max(e.Orientation) < length+distance {
		if next, ok := e.Increase(last.Index); ok {
			plan.Append = next
			plan.HasAppend = true
		} else {
			engineLog.Debug("prefetch stopped at trailing boundary")
		}
	}

	first := items[0]
	if frame, ok := frames.Frame(first.ID); ok && frame.Min(e.Orientation) > -distance {
		if previous, ok := e.Decrease(first.Index); ok {
			plan.Prepend = previous
			plan.HasPrepend = true
		} else {
			engineLog.Debug("prefetch stopped at leading boundary")
		}
	}
	return plan
}

// PlanTrim evicts items that lie more than RecycleDistance outside the
// viewport, never taking the window below MinimumVisibleCount.
func (e Engine[I]) PlanTrim(items []Item[I], frames FrameSource, viewport Size) TrimPlan {
	var plan TrimPlan
	floor := e.MinimumVisibleCount()
	count := len(items)
	if count <= floor {
		return plan
	}
	distance := e.Orientation.RecycleDistance(viewport, e.Multiplier)
	length := e.Orientation.PrimaryLength(viewport)

	if frame, ok := frames.Frame(items[0].ID); ok && frame.Max(e.Orientation) < -distance {
		plan.DropFirst = true
		count--
	}

	if count > floor {
		if frame, ok := frames.Frame(items[len(items)-1].ID); ok && frame.Min(e.Orientation) > length+distance {
			plan.DropLast = true
		}
	}
	return plan
}

// CenteredItem returns the measured item whose axis midpoint is closest to
// the viewport's midpoint. Ties go to the earlier item in window order.
func (e Engine[I]) CenteredItem(items []Item[I], frames FrameSource, viewport Size) (Item[I], bool) {
	center := e.Orientation.PrimaryLength(viewport) / 2
	var (
		best     Item[I]
		bestDist = math.Inf(1)
		found    bool
	)
	for _, item := range items {
		frame, ok := frames.Frame(item.ID)
		if !ok {
			continue
		}
		distance := math.Abs(frame.Mid(e.Orientation) - center)
		if !found || distance < bestDist {
			best = item
			bestDist = distance
			found = true
		}
	}
	return best, found
}
