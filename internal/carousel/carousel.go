// Package carousel renders an engine.Controller as a Bubble Tea component.
//
// The model lays the controller's window out along the scroll axis, reports
// every item's frame on each layout pass and executes the controller's
// commands on later ticks.
package carousel

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/treykane/infiniscroll/internal/engine"
	"github.com/treykane/infiniscroll/internal/logging"
)

var carouselLog = logging.New("carousel")

// ContentFunc renders the item for index. width and height are the
// viewport's; the returned block's size along the scroll axis becomes the
// item's extent.
type ContentFunc[I comparable] func(index I, width, height int) string

// Option configures a Model.
type Option[I comparable] func(*Model[I])

// WithSize sets the initial viewport size.
func WithSize[I comparable](width, height int) Option[I] {
	return func(m *Model[I]) {
		m.width, m.height = width, height
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap[I comparable](km KeyMap) Option[I] {
	return func(m *Model[I]) {
		m.KeyMap = km
	}
}

type animation struct {
	active    bool
	target    engine.ScrollTo
	remaining int
	seq       int
}

// Model is a Bubble Tea component that displays an infinite carousel.
type Model[I comparable] struct {
	KeyMap KeyMap

	id          int
	ctrl        *engine.Controller[I]
	content     ContentFunc[I]
	orientation engine.Orientation
	spacing     int

	width, height int
	offset        int

	cache        map[uuid.UUID]cacheEntry
	lastRevision uint64
	anim         animation

	spinner    spinner.Model
	refreshing bool
}

// New wraps ctrl. The controller must not be shared with another model.
func New[I comparable](ctrl *engine.Controller[I], content ContentFunc[I], opts ...Option[I]) *Model[I] {
	cfg := ctrl.Config()
	spin := spinner.New()
	spin.Spinner = spinner.Line
	m := &Model[I]{
		KeyMap:       DefaultKeyMap(cfg.Orientation),
		id:           nextID(),
		ctrl:         ctrl,
		content:      content,
		orientation:  cfg.Orientation,
		spacing:      int(math.Round(cfg.Spacing)),
		cache:        map[uuid.UUID]cacheEntry{},
		lastRevision: ctrl.Revision(),
		spinner:      spin,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Controller returns the wrapped controller.
func (m *Model[I]) Controller() *engine.Controller[I] {
	return m.ctrl
}

// Offset returns the content offset along the scroll axis in cells.
func (m *Model[I]) Offset() int {
	return m.offset
}

// Centered returns the index of the item closest to the viewport center.
func (m *Model[I]) Centered() (I, bool) {
	item, ok := m.ctrl.Centered(m.viewportSize())
	return item.Index, ok
}

// Refreshing reports whether a pull-to-refresh is running.
func (m *Model[I]) Refreshing() bool {
	return m.refreshing
}

// Init mounts the controller and runs the first layout pass.
func (m *Model[I]) Init() tea.Cmd {
	return tea.Batch(m.exec(m.ctrl.Mount()), m.requestLayout())
}

// SetSize changes the viewport size and relayouts.
func (m *Model[I]) SetSize(width, height int) tea.Cmd {
	if width == m.width && height == m.height {
		return nil
	}
	m.width, m.height = width, height
	return m.requestLayout()
}

// SetIndex forwards an owner-side index change to the controller.
func (m *Model[I]) SetIndex(index I) tea.Cmd {
	return m.exec(m.ctrl.SetIndex(index))
}

// CenterOn starts a programmatic jump to index.
func (m *Model[I]) CenterOn(index I, animated bool) tea.Cmd {
	return m.exec(m.ctrl.CenterOn(index, animated))
}

// Reload raises the controller's reload signal.
func (m *Model[I]) Reload() tea.Cmd {
	return m.exec(m.ctrl.RequestReload())
}

// Invalidate drops every cached rendering so the next pass re-renders all
// items.
func (m *Model[I]) Invalidate() tea.Cmd {
	m.cache = map[uuid.UUID]cacheEntry{}
	return m.requestLayout()
}

// Refresh runs the controller's refresh hook and shows a spinner until the
// hook reports completion.
func (m *Model[I]) Refresh() tea.Cmd {
	done, ok := m.ctrl.StartRefresh()
	if !ok {
		return nil
	}
	m.refreshing = true
	carouselLog.Debug("refresh started")
	return tea.Batch(m.spinner.Tick, waitForRefresh(m.id, done))
}

// Update handles the carousel's own messages and input.
func (m *Model[I]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case layoutMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m, m.layout()
	case scrollMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m, m.applyScroll(msg.to)
	case animFrameMsg:
		if msg.id != m.id || !m.anim.active || msg.seq != m.anim.seq {
			return m, nil
		}
		return m, m.stepAnimation()
	case resumeScrollMsg:
		if msg.id == m.id {
			m.ctrl.ResumeScrolling()
		}
		return m, nil
	case resetReloadMsg:
		if msg.id == m.id {
			m.ctrl.ReloadConsumed()
		}
		return m, nil
	case refreshDoneMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.ctrl.RefreshFinished()
		m.refreshing = false
		carouselLog.Debug("refresh finished")
		return m, m.Invalidate()
	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

// layout measures the window, feeds the frames to the controller and
// schedules another pass while the window keeps changing. When items are
// added or dropped at the front the offset follows the centered item, so
// the visible content does not jump.
func (m *Model[I]) layout() tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	ps := m.measure()
	slot := m.centeredSlot(ps)
	cmds := []tea.Cmd{m.exec(m.ctrl.HandleLayout(m.frames(ps), m.viewportSize()))}
	if rev := m.ctrl.Revision(); rev != m.lastRevision {
		m.lastRevision = rev
		if slot >= 0 {
			ref := ps[slot]
			if p, ok := findPlacement(m.measure(), ref.item.ID); ok {
				m.offset += p.start - ref.start
			}
		}
		cmds = append(cmds, m.requestLayout())
	}
	return tea.Batch(cmds...)
}

// applyScroll executes the controller's pending scroll. Scroll messages run
// in their own goroutines and may arrive out of order, so anything but the
// currently pending scroll is dropped. A stabilizing scroll leaves the offset
// alone: layout already kept the anchor in place when the front changed.
func (m *Model[I]) applyScroll(to engine.ScrollTo) tea.Cmd {
	if pending, ok := m.ctrl.PendingScroll(); !ok || pending.ID != to.ID {
		return nil
	}
	m.ctrl.ScrollApplied(to.ID)
	p, ok := findPlacement(m.measure(), to.ID)
	if !ok || to.Stabilize {
		return m.layout()
	}
	if !to.Animated {
		m.stopAnimation()
		m.offset = m.centerOffset(p)
		return m.layout()
	}
	m.anim = animation{active: true, target: to, remaining: AnimationFrames, seq: m.anim.seq + 1}
	return m.animationTick(m.anim.seq)
}

// stepAnimation moves one frame toward the target, re-resolving its
// position since the window may have grown in between.
func (m *Model[I]) stepAnimation() tea.Cmd {
	p, ok := findPlacement(m.measure(), m.anim.target.ID)
	if !ok {
		m.stopAnimation()
		return m.layout()
	}
	target := m.centerOffset(p)
	delta := target - m.offset
	step := delta / m.anim.remaining
	if step == 0 && delta != 0 {
		step = sign(delta)
	}
	m.offset += step
	m.anim.remaining--
	if m.anim.remaining <= 0 || m.offset == target {
		m.offset = target
		m.stopAnimation()
		return m.layout()
	}
	return tea.Batch(m.layout(), m.animationTick(m.anim.seq))
}

func (m *Model[I]) stopAnimation() {
	m.anim.active = false
	m.anim.seq++
}

// scrollBy applies user scrolling; it cancels a running animation.
func (m *Model[I]) scrollBy(delta int) tea.Cmd {
	if m.ctrl.ScrollDisabled() || delta == 0 {
		return nil
	}
	if m.anim.active {
		m.stopAnimation()
	}
	m.offset = m.clamp(m.measure(), m.offset+delta)
	return m.layout()
}

// snapTo centers the placement at slot without animation.
func (m *Model[I]) snapTo(slot int) tea.Cmd {
	if m.ctrl.ScrollDisabled() {
		return nil
	}
	ps := m.measure()
	if slot < 0 || slot >= len(ps) {
		return nil
	}
	m.stopAnimation()
	m.offset = m.centerOffset(ps[slot])
	return m.layout()
}

func (m *Model[I]) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := m.viewportLength() - 1
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, m.KeyMap.Back):
		return m.scrollBy(-1)
	case key.Matches(msg, m.KeyMap.Forward):
		return m.scrollBy(1)
	case key.Matches(msg, m.KeyMap.PageBack):
		return m.scrollBy(-page)
	case key.Matches(msg, m.KeyMap.PageForward):
		return m.scrollBy(page)
	case key.Matches(msg, m.KeyMap.PrevItem):
		return m.snapTo(m.centeredSlot(m.measure()) - 1)
	case key.Matches(msg, m.KeyMap.NextItem):
		return m.snapTo(m.centeredSlot(m.measure()) + 1)
	case key.Matches(msg, m.KeyMap.First):
		if !m.ctrl.Config().ScrollsToTop {
			return nil
		}
		return m.snapTo(0)
	case key.Matches(msg, m.KeyMap.Refresh):
		return m.Refresh()
	}
	return nil
}

func (m *Model[I]) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		return m.scrollBy(-WheelLines)
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		return m.scrollBy(WheelLines)
	}
	return nil
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
