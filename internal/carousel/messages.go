package carousel

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/infiniscroll/internal/engine"
)

const (
	// AnimationDuration is how long an animated programmatic scroll takes.
	AnimationDuration = 250 * time.Millisecond
	// AnimationFrames is the number of offset steps an animated scroll takes.
	AnimationFrames = 10
	// WheelLines is how far one mouse wheel notch scrolls.
	WheelLines = 3
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Messages are tagged with the owning carousel's id so several carousels
// can share one program.
type (
	layoutMsg struct {
		id int
	}
	scrollMsg struct {
		id int
		to engine.ScrollTo
	}
	animFrameMsg struct {
		id  int
		seq int
	}
	resumeScrollMsg struct {
		id int
	}
	resetReloadMsg struct {
		id int
	}
	refreshDoneMsg struct {
		id int
	}
)

// requestLayout schedules a layout pass on the next tick.
func (m *Model[I]) requestLayout() tea.Cmd {
	id := m.id
	return func() tea.Msg { return layoutMsg{id: id} }
}

func (m *Model[I]) animationTick(seq int) tea.Cmd {
	id := m.id
	return tea.Tick(AnimationDuration/AnimationFrames, func(time.Time) tea.Msg {
		return animFrameMsg{id: id, seq: seq}
	})
}

// exec turns engine commands into Bubble Tea commands. Nothing runs inline:
// every command is delivered back to Update on a later tick.
func (m *Model[I]) exec(cmds []engine.Command) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	id := m.id
	out := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		switch c := c.(type) {
		case engine.ScrollTo:
			out = append(out, func() tea.Msg { return scrollMsg{id: id, to: c} })
		case engine.SuspendScrolling:
			out = append(out, tea.Tick(c.For, func(time.Time) tea.Msg {
				return resumeScrollMsg{id: id}
			}))
		case engine.ResetReload:
			out = append(out, func() tea.Msg { return resetReloadMsg{id: id} })
		}
	}
	return tea.Batch(out...)
}

func waitForRefresh(id int, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return refreshDoneMsg{id: id}
	}
}
