package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameMap map[uuid.UUID]Rect

func (m frameMap) Frame(id uuid.UUID) (Rect, bool) {
	r, ok := m[id]
	return r, ok
}

// stack lays items out vertically with the given extent, shifted up by
// offset, the way a scroll container would report them.
func stack(items []Item[int], extent, offset float64) frameMap {
	frames := frameMap{}
	for i, item := range items {
		frames[item.ID] = Rect{X: 0, Y: float64(i)*extent - offset, Width: 40, Height: extent}
	}
	return frames
}

func testEngine(multiplier float64) Engine[int] {
	increase, decrease := bounded(-100, 100)
	return Engine[int]{Orientation: Vertical, Multiplier: multiplier, Increase: increase, Decrease: decrease}
}

var viewport = Size{Width: 40, Height: 10}

func TestPlanPrefetchGrowsBothEdgesWhenContentIsShort(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 3, increase, decrease)

	// Items cover [0, 30); the prefetch distance is 7.5.
	plan := e.PlanPrefetch(items, stack(items, 10, 0), viewport)

	assert.False(t, plan.HasAppend, "last item ends at 30, past 10+7.5")
	require.True(t, plan.HasPrepend, "first item starts at 0, inside -7.5")
	assert.Equal(t, -2, plan.Prepend)

	plan = e.PlanPrefetch(items, stack(items, 10, 20), viewport)
	require.True(t, plan.HasAppend)
	assert.Equal(t, 2, plan.Append)
	assert.False(t, plan.HasPrepend)
}

func TestPlanPrefetchSkipsUnmeasuredEdges(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 3, increase, decrease)

	plan := e.PlanPrefetch(items, frameMap{}, viewport)

	assert.True(t, plan.Empty())
}

func TestPlanPrefetchStopsSilentlyAtBoundary(t *testing.T) {
	increase, decrease := bounded(0, 1)
	e := Engine[int]{Orientation: Vertical, Multiplier: 3, Increase: increase, Decrease: decrease}
	items := Bootstrap(0, 3, increase, decrease)
	require.Equal(t, []int{0, 1}, indices(items))

	plan := e.PlanPrefetch(items, stack(items, 2, 0), viewport)

	assert.True(t, plan.Empty())
}

func TestPlanPrefetchIsIdempotentForUnchangedInput(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 3, increase, decrease)
	frames := stack(items, 10, 0)

	first := e.PlanPrefetch(items, frames, viewport)
	second := e.PlanPrefetch(items, frames, viewport)

	assert.Equal(t, first, second)
}

func TestPlanTrimNeverGoesBelowMinimumVisibleCount(t *testing.T) {
	e := testEngine(3)
	require.Equal(t, 5, e.MinimumVisibleCount())
	increase, decrease := bounded(-100, 100)

	// Recycle distance is 15; an item spanning [-100, -90) is far before
	// the viewport and one starting at 100 is far after it.
	far := func(items []Item[int]) frameMap {
		frames := frameMap{}
		for i, item := range items {
			frames[item.ID] = Rect{Y: float64(i * 2), Width: 40, Height: 2}
		}
		frames[items[0].ID] = Rect{Y: -100, Width: 40, Height: 10}
		frames[items[len(items)-1].ID] = Rect{Y: 100, Width: 40, Height: 10}
		return frames
	}

	tests := []struct {
		count     int
		dropFirst bool
		dropLast  bool
	}{
		{count: 5},
		{count: 6, dropFirst: true},
		{count: 7, dropFirst: true, dropLast: true},
	}
	for _, tt := range tests {
		items := Bootstrap(0, 11, increase, decrease)[:tt.count]

		plan := e.PlanTrim(items, far(items), viewport)

		assert.Equal(t, tt.dropFirst, plan.DropFirst, "count %d", tt.count)
		assert.Equal(t, tt.dropLast, plan.DropLast, "count %d", tt.count)
		dropped := 0
		if plan.DropFirst {
			dropped++
		}
		if plan.DropLast {
			dropped++
		}
		assert.GreaterOrEqual(t, tt.count-dropped, e.MinimumVisibleCount())
	}
}

func TestPlanTrimKeepsItemsNearViewport(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 9, increase, decrease)

	plan := e.PlanTrim(items, stack(items, 2, 0), viewport)

	assert.True(t, plan.Empty())
}

func TestCenteredItemPicksClosestMidpoint(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 5, increase, decrease)

	// Item index 1 occupies [0, 10) which is exactly centered.
	got, ok := e.CenteredItem(items, stack(items, 10, 30), viewport)

	require.True(t, ok)
	assert.Equal(t, 1, got.Index)
}

func TestCenteredItemBreaksTiesByWindowOrder(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 3, increase, decrease)

	// Midpoints at 0 and 10 are both 5 away from the viewport center.
	frames := frameMap{
		items[0].ID: {Y: -5, Width: 40, Height: 10},
		items[1].ID: {Y: 5, Width: 40, Height: 10},
		items[2].ID: {Y: 40, Width: 40, Height: 10},
	}

	got, ok := e.CenteredItem(items, frames, viewport)

	require.True(t, ok)
	assert.Equal(t, items[0].ID, got.ID)
}

func TestCenteredItemIgnoresUnmeasuredAndStaleFrames(t *testing.T) {
	e := testEngine(3)
	increase, decrease := bounded(-100, 100)
	items := Bootstrap(0, 3, increase, decrease)

	_, ok := e.CenteredItem(items, frameMap{}, viewport)
	assert.False(t, ok)

	frames := frameMap{
		uuid.New():  {Y: 0, Width: 40, Height: 10},
		items[2].ID: {Y: 30, Width: 40, Height: 10},
	}
	got, ok := e.CenteredItem(items, frames, viewport)
	require.True(t, ok)
	assert.Equal(t, 1, got.Index)
}
