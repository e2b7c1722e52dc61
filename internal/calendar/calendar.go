// Package calendar provides the month index space shown by the demo
// carousel: months are addressed by their offset from the current month.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Month is an offset in months from the calendar's base month.
type Month int

// ErrOutOfRange is returned by Parse for months beyond the configured range.
var ErrOutOfRange = errors.New("month outside the browsable range")

// Calendar maps Month offsets onto real months and bounds them to Range
// months either side of the base.
type Calendar struct {
	base  time.Time
	Range int
	now   func() time.Time
}

// New returns a calendar based on the month containing now. A non-positive
// monthRange leaves the calendar unbounded.
func New(now func() time.Time, monthRange int) *Calendar {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Calendar{
		base:  time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()),
		Range: monthRange,
		now:   now,
	}
}

// Date returns the first day of month m.
func (c *Calendar) Date(m Month) time.Time {
	return c.base.AddDate(0, int(m), 0)
}

// MonthOf returns the offset of the month containing t.
func (c *Calendar) MonthOf(t time.Time) Month {
	years := t.Year() - c.base.Year()
	months := int(t.Month()) - int(c.base.Month())
	return Month(years*12 + months)
}

// Today returns the offset of the current month. It differs from zero once
// the program has been running across a month boundary.
func (c *Calendar) Today() Month {
	return c.MonthOf(c.now())
}

// Next is the increasing neighbor function.
func (c *Calendar) Next(m Month) (Month, bool) {
	if c.Range > 0 && int(m) >= c.Range {
		return 0, false
	}
	return m + 1, true
}

// Prev is the decreasing neighbor function.
func (c *Calendar) Prev(m Month) (Month, bool) {
	if c.Range > 0 && int(m) <= -c.Range {
		return 0, false
	}
	return m - 1, true
}

// InRange reports whether m is reachable through the neighbor functions.
func (c *Calendar) InRange(m Month) bool {
	return c.Range <= 0 || (int(m) <= c.Range && int(m) >= -c.Range)
}

// Key formats m as YYYY-MM.
func (c *Calendar) Key(m Month) string {
	return c.Date(m).Format("2006-01")
}

// Label formats m as "January 2026".
func (c *Calendar) Label(m Month) string {
	return c.Date(m).Format("January 2006")
}

// Parse reads a YYYY-MM string.
func (c *Calendar) Parse(value string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(value), c.base.Location())
	if err != nil {
		return 0, fmt.Errorf("parse month %q: expected YYYY-MM: %w", value, err)
	}
	m := c.MonthOf(t)
	if !c.InRange(m) {
		return 0, fmt.Errorf("%s: %w", c.Key(m), ErrOutOfRange)
	}
	return m, nil
}
