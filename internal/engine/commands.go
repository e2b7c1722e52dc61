package engine

import (
	"time"

	"github.com/google/uuid"
)

// Command is a side effect requested by the controller. Commands depend on
// layout having been applied, so adapters run them on the next tick rather
// than inside the transition that produced them.
type Command interface {
	command()
}

// ScrollTo asks the adapter to bring an item to the viewport's center. The
// adapter reports completion with Controller.ScrollApplied.
//
// Stabilize marks the re-anchor issued after the window's leading item
// changed. An adapter that already keeps the anchor in place across the
// shift may leave it where it is instead of centering it, so user scrolling
// is not pulled back.
type ScrollTo struct {
	ID        uuid.UUID
	Animated  bool
	Stabilize bool
}

// SuspendScrolling asks the adapter to ignore user scroll input for the given
// duration and then call Controller.ResumeScrolling.
type SuspendScrolling struct {
	For time.Duration
}

// ResetReload asks the adapter to call Controller.ReloadConsumed on the next
// tick.
type ResetReload struct{}

func (ScrollTo) command()         {}
func (SuspendScrolling) command() {}
func (ResetReload) command()      {}
