package engine

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultContentMultiplier is used when Config.Multiplier is zero.
	DefaultContentMultiplier = 11

	// MinContentMultiplier is the smallest accepted multiplier; lower values
	// are clamped up.
	MinContentMultiplier = 3

	// MaxInitialCenteringAttempts bounds how many layout passes try to center
	// the starting index before giving up for good.
	MaxInitialCenteringAttempts = 3

	// ScrollSuspendGrace is how long user scrolling stays disabled after a
	// programmatic jump when Config.SuspendScrollOnUpdate is set.
	ScrollSuspendGrace = 50 * time.Millisecond
)

// ErrMissingNeighbor is returned by New when either neighbor function is nil.
var ErrMissingNeighbor = errors.New("engine: increase and decrease neighbor functions are required")

// ErrInvalidMultiplier is returned by New for a NaN or infinite multiplier.
var ErrInvalidMultiplier = errors.New("engine: content multiplier must be finite")

// Config is the constructor configuration of a Controller.
type Config[I comparable] struct {
	// Start is the index the window is first centered on.
	Start I
	// Spacing is the gap between rendered items along the scroll axis. The
	// controller only carries it for adapters.
	Spacing float64
	// Multiplier controls window breadth and the prefetch and recycle
	// thresholds. Zero selects DefaultContentMultiplier.
	Multiplier  float64
	Orientation Orientation

	Increase Neighbor[I]
	Decrease Neighbor[I]

	// OnCenteredIndexChanged fires once per distinct settled centered index.
	OnCenteredIndexChanged func(I)
	// OnReloadReset fires when a reload request has been consumed.
	OnReloadReset func()
	// Refresh is an optional pull-to-refresh hook. It must call done exactly
	// once when finished; it may do so from any goroutine.
	Refresh func(done func())

	// SuspendScrollOnUpdate disables user scrolling for ScrollSuspendGrace
	// whenever a programmatic jump starts.
	SuspendScrollOnUpdate bool
	// ScrollsToTop lets adapters offer a jump to the window's first item.
	ScrollsToTop bool
}

// Controller owns one carousel's window, frame table and centering state.
// It is not safe for concurrent use; every method must run on the UI loop.
type Controller[I comparable] struct {
	cfg    Config[I]
	engine Engine[I]
	window *Window[I]
	frames *FrameTracker

	externalIndex    I
	lastReported     I
	pendingTarget    I
	hasPendingTarget bool
	pendingScroll    ScrollTo
	hasPendingScroll bool
	suppressEcho     bool

	mounted         bool
	initialPending  bool
	initialAttempts int

	scrollDisabled  bool
	reloadRequested bool
	refreshing      bool

	queue []Command
}

// New validates cfg and bootstraps a window around cfg.Start.
func New[I comparable](cfg Config[I]) (*Controller[I], error) {
	if cfg.Increase == nil || cfg.Decrease == nil {
		return nil, ErrMissingNeighbor
	}
	if math.IsNaN(cfg.Multiplier) || math.IsInf(cfg.Multiplier, 0) {
		return nil, ErrInvalidMultiplier
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = DefaultContentMultiplier
	}
	if cfg.Multiplier < MinContentMultiplier {
		cfg.Multiplier = MinContentMultiplier
	}
	if cfg.Spacing < 0 {
		cfg.Spacing = 0
	}

	eng := Engine[I]{
		Orientation: cfg.Orientation,
		Multiplier:  cfg.Multiplier,
		Increase:    cfg.Increase,
		Decrease:    cfg.Decrease,
	}
	c := &Controller[I]{
		cfg:            cfg,
		engine:         eng,
		window:         NewWindow(Bootstrap(cfg.Start, eng.WindowSize(), cfg.Increase, cfg.Decrease)),
		frames:         NewFrameTracker(),
		externalIndex:  cfg.Start,
		lastReported:   cfg.Start,
		initialPending: true,
	}
	return c, nil
}

// Config returns the normalized configuration.
func (c *Controller[I]) Config() Config[I] {
	return c.cfg
}

// Items returns the window in display order.
func (c *Controller[I]) Items() []Item[I] {
	return c.window.Items()
}

// Revision changes whenever the window's contents change.
func (c *Controller[I]) Revision() uint64 {
	return c.window.Revision()
}

// Frame returns the last measurement for an identity.
func (c *Controller[I]) Frame(id uuid.UUID) (Rect, bool) {
	return c.frames.Frame(id)
}

// Centered returns the item currently closest to the viewport's center.
func (c *Controller[I]) Centered(viewport Size) (Item[I], bool) {
	return c.engine.CenteredItem(c.window.items, c.frames, viewport)
}

// ExternalIndex returns the last index supplied by the owner.
func (c *Controller[I]) ExternalIndex() I {
	return c.externalIndex
}

// LastReported returns the last centered index the controller settled on.
func (c *Controller[I]) LastReported() I {
	return c.lastReported
}

// PendingTarget returns the index of an in-flight programmatic jump.
func (c *Controller[I]) PendingTarget() (I, bool) {
	return c.pendingTarget, c.hasPendingTarget
}

// PendingScroll returns the scroll command not yet applied by the adapter.
func (c *Controller[I]) PendingScroll() (ScrollTo, bool) {
	return c.pendingScroll, c.hasPendingScroll
}

// ScrollDisabled reports whether user scrolling is suspended.
func (c *Controller[I]) ScrollDisabled() bool {
	return c.scrollDisabled
}

// InitialCenteringPending reports whether the starting index has not yet
// settled in the center and the retry budget is not exhausted.
func (c *Controller[I]) InitialCenteringPending() bool {
	return c.initialPending
}

// InitialCenteringAttempts returns how many initial centering attempts ran.
func (c *Controller[I]) InitialCenteringAttempts() int {
	return c.initialAttempts
}

// Mount runs the first initial-centering attempt. Later calls do nothing.
func (c *Controller[I]) Mount() []Command {
	if c.mounted {
		return nil
	}
	c.mounted = true
	c.attemptInitialCentering()
	return c.drain()
}

// HandleLayout processes one layout pass: it records the measurements, grows
// and trims the window, re-anchors after a leading-edge change, reports the
// centered index and retries initial centering.
func (c *Controller[I]) HandleLayout(frames map[uuid.UUID]Rect, viewport Size) []Command {
	c.frames.Observe(frames)
	c.frames.Prune(c.window.Contains)
	if c.window.Len() == 0 {
		return c.drain()
	}

	anchor, hasAnchor := c.Centered(viewport)
	leading, _ := c.window.First()

	c.prefetch(viewport)
	c.trim(viewport)

	if first, ok := c.window.First(); ok && first.ID != leading.ID {
		c.stabilize(anchor, hasAnchor)
	}

	c.updateCenteredIndex(viewport)
	c.attemptInitialCentering()
	return c.drain()
}

// CenterOn starts a programmatic jump to index. An already materialized
// index is scrolled to; any other index rebuilds the window around it.
func (c *Controller[I]) CenterOn(index I, animated bool) []Command {
	c.centerOn(index, animated)
	return c.drain()
}

// SetIndex applies an index change coming from the owner. A change that
// merely echoes the last centered-index notification is ignored.
func (c *Controller[I]) SetIndex(index I) []Command {
	if index == c.externalIndex {
		return nil
	}
	c.externalIndex = index
	if c.suppressEcho && c.lastReported == index {
		c.suppressEcho = false
		return nil
	}
	c.suppressEcho = false
	c.centerOn(index, true)
	return c.drain()
}

// RequestReload re-centers on the owner's current index. Requests made
// while a reload is still unconsumed are ignored.
func (c *Controller[I]) RequestReload() []Command {
	if c.reloadRequested {
		return nil
	}
	c.reloadRequested = true
	c.centerOn(c.externalIndex, !c.cfg.SuspendScrollOnUpdate)
	c.emit(ResetReload{})
	return c.drain()
}

// ReloadPending reports whether a reload has been requested but not reset.
func (c *Controller[I]) ReloadPending() bool {
	return c.reloadRequested
}

// ReloadConsumed clears the reload signal and notifies the owner.
func (c *Controller[I]) ReloadConsumed() {
	if !c.reloadRequested {
		return
	}
	c.reloadRequested = false
	if c.cfg.OnReloadReset != nil {
		c.cfg.OnReloadReset()
	}
}

// ScrollApplied marks a scroll command as executed. Superseded commands are
// ignored so a newer pending scroll survives.
func (c *Controller[I]) ScrollApplied(id uuid.UUID) {
	if c.hasPendingScroll && c.pendingScroll.ID == id {
		c.pendingScroll = ScrollTo{}
		c.hasPendingScroll = false
	}
}

// ResumeScrolling ends a scroll suspension.
func (c *Controller[I]) ResumeScrolling() {
	c.scrollDisabled = false
}

// Refreshable reports whether a refresh hook is configured.
func (c *Controller[I]) Refreshable() bool {
	return c.cfg.Refresh != nil
}

// StartRefresh invokes the refresh hook. The returned channel is closed once
// the hook calls its completion func. It returns false when no hook is
// configured or a refresh is already running.
func (c *Controller[I]) StartRefresh() (<-chan struct{}, bool) {
	if c.cfg.Refresh == nil || c.refreshing {
		return nil, false
	}
	c.refreshing = true
	done := make(chan struct{})
	var once sync.Once
	c.cfg.Refresh(func() {
		once.Do(func() { close(done) })
	})
	return done, true
}

// RefreshFinished allows the next StartRefresh.
func (c *Controller[I]) RefreshFinished() {
	c.refreshing = false
}

// Refreshing reports whether a refresh is in flight.
func (c *Controller[I]) Refreshing() bool {
	return c.refreshing
}

func (c *Controller[I]) prefetch(viewport Size) {
	plan := c.engine.PlanPrefetch(c.window.items, c.frames, viewport)
	if plan.HasAppend {
		c.window.Append(plan.Append)
	}
	if plan.HasPrepend {
		c.window.Prepend(plan.Prepend)
	}
}

func (c *Controller[I]) trim(viewport Size) {
	plan := c.engine.PlanTrim(c.window.items, c.frames, viewport)
	if plan.DropFirst {
		if item, ok := c.window.DropFirst(); ok {
			c.frames.Forget(item.ID)
		}
	}
	if plan.DropLast {
		if item, ok := c.window.DropLast(); ok {
			c.frames.Forget(item.ID)
		}
	}
}

// stabilize re-anchors the previously centered item after the leading item
// changed, since prepending or dropping at the front shifts every absolute
// position in the scroll container.
func (c *Controller[I]) stabilize(anchor Item[I], ok bool) {
	if !ok || c.hasPendingScroll || c.hasPendingTarget {
		return
	}
	if !c.window.Contains(anchor.ID) {
		return
	}
	c.pendingScroll = ScrollTo{ID: anchor.ID, Stabilize: true}
	c.hasPendingScroll = true
	c.emit(c.pendingScroll)
}

func (c *Controller[I]) updateCenteredIndex(viewport Size) {
	target, ok := c.Centered(viewport)
	if !ok {
		return
	}

	if c.initialPending {
		if target.Index != c.externalIndex {
			return
		}
		c.initialPending = false
	}

	if c.hasPendingTarget {
		if target.Index != c.pendingTarget {
			return
		}
		var zero I
		c.pendingTarget = zero
		c.hasPendingTarget = false
	}

	if target.Index == c.lastReported {
		return
	}
	c.lastReported = target.Index
	if c.cfg.OnCenteredIndexChanged != nil {
		c.suppressEcho = true
		c.cfg.OnCenteredIndexChanged(target.Index)
	}
}

func (c *Controller[I]) attemptInitialCentering() {
	if !c.initialPending || c.hasPendingScroll {
		return
	}
	if c.initialAttempts >= MaxInitialCenteringAttempts {
		c.initialPending = false
		engineLog.Debug("initial centering abandoned", "attempts", c.initialAttempts)
		return
	}
	c.initialAttempts++

	item, ok := c.window.Find(c.externalIndex)
	if !ok {
		return
	}
	frame, ok := c.frames.Frame(item.ID)
	if !ok || frame.IsEmpty() {
		return
	}
	c.centerOn(c.externalIndex, false)
}

func (c *Controller[I]) centerOn(index I, animated bool) {
	c.pendingTarget = index
	c.hasPendingTarget = true
	if item, ok := c.window.Find(index); ok {
		c.scheduleScroll(item.ID, animated)
	} else {
		c.rebuild(index)
	}
	if c.cfg.SuspendScrollOnUpdate {
		c.suspendScrolling()
	}
}

// rebuild replaces the window with a fresh bootstrap around index. Frame
// measurements are dropped because every identity is new.
func (c *Controller[I]) rebuild(index I) {
	items := Bootstrap(index, c.engine.WindowSize(), c.cfg.Increase, c.cfg.Decrease)
	c.window.Reset(items)
	c.frames.Reset()
	c.lastReported = index
	engineLog.Debug("window rebuilt", "items", len(items))
	if item, ok := c.window.Find(index); ok {
		c.scheduleScroll(item.ID, false)
	}
}

func (c *Controller[I]) scheduleScroll(id uuid.UUID, animated bool) {
	c.pendingScroll = ScrollTo{ID: id, Animated: animated}
	c.hasPendingScroll = true
	c.emit(c.pendingScroll)
}

func (c *Controller[I]) suspendScrolling() {
	if c.scrollDisabled {
		return
	}
	c.scrollDisabled = true
	c.emit(SuspendScrolling{For: ScrollSuspendGrace})
}

func (c *Controller[I]) emit(cmd Command) {
	c.queue = append(c.queue, cmd)
}

// drain returns queued commands, keeping only the latest scroll.
func (c *Controller[I]) drain() []Command {
	if len(c.queue) == 0 {
		return nil
	}
	out := make([]Command, 0, len(c.queue))
	scrolled := false
	for _, cmd := range c.queue {
		if scroll, ok := cmd.(ScrollTo); ok {
			if scrolled || !c.hasPendingScroll || scroll != c.pendingScroll {
				continue
			}
			scrolled = true
		}
		out = append(out, cmd)
	}
	c.queue = c.queue[:0]
	return out
}
