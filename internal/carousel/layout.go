package carousel

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/treykane/infiniscroll/internal/engine"
)

// placement is one item's position along the scroll axis in content
// coordinates, where the window's first item starts at zero.
type placement[I comparable] struct {
	item     engine.Item[I]
	start    int
	extent   int
	rendered string
}

type cacheEntry struct {
	width, height int
	rendered      string
}

// viewportLength is the viewport's size along the scroll axis.
func (m *Model[I]) viewportLength() int {
	if m.orientation == engine.Horizontal {
		return m.width
	}
	return m.height
}

func (m *Model[I]) viewportSize() engine.Size {
	return engine.Size{Width: float64(m.width), Height: float64(m.height)}
}

// render returns the item's content, reusing the cached string while the
// viewport size is unchanged.
func (m *Model[I]) render(item engine.Item[I]) string {
	if e, ok := m.cache[item.ID]; ok && e.width == m.width && e.height == m.height {
		return e.rendered
	}
	out := m.content(item.Index, m.width, m.height)
	m.cache[item.ID] = cacheEntry{width: m.width, height: m.height, rendered: out}
	return out
}

// measure renders every materialized item and stacks them along the scroll
// axis. Items left the window are evicted from the content cache.
func (m *Model[I]) measure() []placement[I] {
	items := m.ctrl.Items()
	out := make([]placement[I], 0, len(items))
	live := make(map[uuid.UUID]struct{}, len(items))
	cursor := 0
	for _, item := range items {
		rendered := m.render(item)
		extent := lipgloss.Height(rendered)
		if m.orientation == engine.Horizontal {
			extent = lipgloss.Width(rendered)
		}
		if extent < 1 {
			extent = 1
		}
		out = append(out, placement[I]{item: item, start: cursor, extent: extent, rendered: rendered})
		live[item.ID] = struct{}{}
		cursor += extent + m.spacing
	}
	for id := range m.cache {
		if _, ok := live[id]; !ok {
			delete(m.cache, id)
		}
	}
	return out
}

// frames converts placements into viewport-relative rectangles.
func (m *Model[I]) frames(ps []placement[I]) map[uuid.UUID]engine.Rect {
	out := make(map[uuid.UUID]engine.Rect, len(ps))
	for _, p := range ps {
		rel := float64(p.start - m.offset)
		if m.orientation == engine.Horizontal {
			out[p.item.ID] = engine.Rect{X: rel, Y: 0, Width: float64(p.extent), Height: float64(m.height)}
		} else {
			out[p.item.ID] = engine.Rect{X: 0, Y: rel, Width: float64(m.width), Height: float64(p.extent)}
		}
	}
	return out
}

// centerOffset is the content offset that puts p's midpoint on the
// viewport's center.
func (m *Model[I]) centerOffset(p placement[I]) int {
	return p.start + (p.extent-m.viewportLength())/2
}

func findPlacement[I comparable](ps []placement[I], id uuid.UUID) (placement[I], bool) {
	for _, p := range ps {
		if p.item.ID == id {
			return p, true
		}
	}
	return placement[I]{}, false
}

// clamp keeps the offset between centering the first and the last item.
func (m *Model[I]) clamp(ps []placement[I], offset int) int {
	if len(ps) == 0 {
		return offset
	}
	lo := m.centerOffset(ps[0])
	hi := m.centerOffset(ps[len(ps)-1])
	if offset < lo {
		return lo
	}
	if offset > hi {
		return hi
	}
	return offset
}

// centeredSlot returns the position in ps of the placement closest to the
// viewport's center.
func (m *Model[I]) centeredSlot(ps []placement[I]) int {
	best, bestDist := -1, math.MaxInt
	center := m.offset + m.viewportLength()/2
	for i, p := range ps {
		d := p.start + p.extent/2 - center
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
