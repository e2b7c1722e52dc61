package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// HeaderRows is the height of the title bar above the carousel pane.
	HeaderRows = 1

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area. The app targets two rows on typical terminal widths.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3

	// HorizontalCardWidth is the width of a month card when the carousel
	// scrolls sideways.
	HorizontalCardWidth = 30
	// MaxVerticalCardWidth caps card width in a vertical carousel so wide
	// terminals do not stretch the day grid.
	MaxVerticalCardWidth = 64
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters allowed in the
	// go-to-month prompt.
	InputCharLimit = 7
)

// Rendering constants control note rendering
const (
	// RenderWidthBucket is the granularity for width-based render caching
	// Widths are rounded down to a multiple of this value
	RenderWidthBucket = 20

	// NoteExtension is appended to a YYYY-MM key to find a month's note.
	NoteExtension = ".md"
)

// Watcher constants
const (
	// DefaultFileWatchInterval is the poll interval used when the config does
	// not set one.
	DefaultFileWatchInterval = 2 * time.Second
)
