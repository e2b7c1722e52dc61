package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFrameTrackerObserveKeepsUnreportedEntries(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ft := NewFrameTracker()

	ft.Observe(map[uuid.UUID]Rect{a: {Y: 0, Height: 4}, b: {Y: 5, Height: 4}})
	ft.Observe(map[uuid.UUID]Rect{a: {Y: 2, Height: 4}})

	got, ok := ft.Frame(a)
	assert.True(t, ok)
	assert.Equal(t, Rect{Y: 2, Height: 4}, got)
	got, ok = ft.Frame(b)
	assert.True(t, ok)
	assert.Equal(t, Rect{Y: 5, Height: 4}, got)
}

func TestFrameTrackerForgetPruneReset(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	ft := NewFrameTracker()
	ft.Observe(map[uuid.UUID]Rect{a: {}, b: {}, c: {}})

	ft.Forget(a)
	_, ok := ft.Frame(a)
	assert.False(t, ok)

	ft.Prune(func(id uuid.UUID) bool { return id == b })
	assert.Equal(t, 1, ft.Len())
	_, ok = ft.Frame(b)
	assert.True(t, ok)

	ft.Reset()
	assert.Equal(t, 0, ft.Len())
}
