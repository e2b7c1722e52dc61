package engine

import (
	"fmt"
	"math"
	"strings"
)

// Orientation selects the scroll axis of a carousel.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// ParseOrientation converts a config value ("vertical", "horizontal") to an
// Orientation. Matching is case-insensitive and ignores surrounding spaces.
func ParseOrientation(value string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	default:
		return Vertical, fmt.Errorf("unknown orientation %q", value)
	}
}

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Size is a viewport size in the scroll container's units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is a measured item rectangle in the scroll container's coordinate
// space. The origin is the viewport's leading edge.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Min returns the rectangle's leading edge along the scroll axis.
func (r Rect) Min(o Orientation) float64 {
	if o == Horizontal {
		return r.X
	}
	return r.Y
}

// Mid returns the rectangle's midpoint along the scroll axis.
func (r Rect) Mid(o Orientation) float64 {
	if o == Horizontal {
		return r.X + r.Width/2
	}
	return r.Y + r.Height/2
}

// Max returns the rectangle's trailing edge along the scroll axis.
func (r Rect) Max(o Orientation) float64 {
	if o == Horizontal {
		return r.X + r.Width
	}
	return r.Y + r.Height
}

// PrimaryLength is the viewport's length along the scroll axis.
func (o Orientation) PrimaryLength(size Size) float64 {
	if o == Horizontal {
		return size.Width
	}
	return size.Height
}

// PrefetchDistance is how far past either viewport edge measured content must
// reach before the window stops growing on that edge.
func (o Orientation) PrefetchDistance(size Size, multiplier float64) float64 {
	base := o.PrimaryLength(size)
	return math.Max(base*0.75, base/math.Max(1, multiplier))
}

// RecycleDistance is how far beyond a viewport edge an item must lie before
// it becomes eligible for trimming.
func (o Orientation) RecycleDistance(size Size, multiplier float64) float64 {
	base := o.PrimaryLength(size)
	return math.Max(base*1.5, base*multiplier/4)
}
