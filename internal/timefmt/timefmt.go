// Package timefmt renders unix timestamps as the en-US label strings used on
// chart timelines and calendars.
package timefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownTimezone is returned when a timezone name cannot be loaded.
var ErrUnknownTimezone = errors.New("unknown timezone")

// TimeKind selects which clock components Stamp.Time emits.
type TimeKind int

const (
	Hours TimeKind = iota
	Minutes
	HoursAndMinutes
)

// Style selects the width of a calendar component.
type Style int

const (
	Numeric Style = iota // 7, 6, 2024
	TwoDigit             // 07, 06, 24
	Short                // Mon, Jun
	Long                 // Monday, June
	Narrow               // M, J
)

// Divider is a separator appended between components.
type Divider int

const (
	Space Divider = iota
	Dash
	Slash
	Colon
	Comma
)

var dividers = map[Divider]string{
	Space: " ",
	Dash:  "-",
	Slash: "/",
	Colon: ":",
	Comma: ", ",
}

// midnightHour is the hour label that Stamp.Time replaces with a date when
// asked to fall back.
const midnightHour = "12 AM"

// Formatter formats timestamps in a fixed location.
type Formatter struct {
	loc *time.Location
}

// New loads the named IANA timezone. An empty name means UTC.
func New(tz string) (*Formatter, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, tz, err)
	}
	return &Formatter{loc: loc}, nil
}

// Location returns the formatter's timezone.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// At starts a new label for the unix timestamp ts.
func (f *Formatter) At(ts int64) *Stamp {
	return &Stamp{t: time.Unix(ts, 0).In(f.loc)}
}

// Hour is shorthand for an hour label that falls back to "Jan 02" at midnight.
func (f *Formatter) Hour(ts int64) string {
	return f.At(ts).Time(Hours, true).String()
}

// Clock is shorthand for an "03:04 PM" label.
func (f *Formatter) Clock(ts int64) string {
	return f.At(ts).Time(HoursAndMinutes, false).String()
}

// Stamp accumulates label components for a single instant.
type Stamp struct {
	t     time.Time
	parts []string
}

// Time appends the clock part. With fallbackToDate set, an Hours label that
// would read "12 AM" is replaced by the short month and two-digit day.
func (s *Stamp) Time(kind TimeKind, fallbackToDate bool) *Stamp {
	var formatted string
	switch kind {
	case Minutes:
		formatted = s.t.Format("04")
	case HoursAndMinutes:
		formatted = s.t.Format("03:04 PM")
	default:
		formatted = s.t.Format("03 PM")
		if fallbackToDate && formatted == midnightHour {
			formatted = s.t.Format("Jan 02")
		}
	}
	s.parts = append(s.parts, formatted)
	return s
}

// Day appends the day of month.
func (s *Stamp) Day(style Style) *Stamp {
	if style == TwoDigit {
		s.parts = append(s.parts, s.t.Format("02"))
	} else {
		s.parts = append(s.parts, s.t.Format("2"))
	}
	return s
}

// Weekday appends the day of week.
func (s *Stamp) Weekday(style Style) *Stamp {
	switch style {
	case Long:
		s.parts = append(s.parts, s.t.Format("Monday"))
	case Narrow:
		s.parts = append(s.parts, s.t.Format("Mon")[:1])
	default:
		s.parts = append(s.parts, s.t.Format("Mon"))
	}
	return s
}

// Month appends the month.
func (s *Stamp) Month(style Style) *Stamp {
	switch style {
	case Numeric:
		s.parts = append(s.parts, s.t.Format("1"))
	case TwoDigit:
		s.parts = append(s.parts, s.t.Format("01"))
	case Long:
		s.parts = append(s.parts, s.t.Format("January"))
	case Narrow:
		s.parts = append(s.parts, s.t.Format("Jan")[:1])
	default:
		s.parts = append(s.parts, s.t.Format("Jan"))
	}
	return s
}

// Year appends the year.
func (s *Stamp) Year(style Style) *Stamp {
	if style == TwoDigit {
		s.parts = append(s.parts, s.t.Format("06"))
	} else {
		s.parts = append(s.parts, s.t.Format("2006"))
	}
	return s
}

// Divider appends a separator. Unknown dividers fall back to a space.
func (s *Stamp) Divider(d Divider) *Stamp {
	sep, ok := dividers[d]
	if !ok {
		sep = " "
	}
	s.parts = append(s.parts, sep)
	return s
}

// String joins the accumulated components and resets the stamp so it can be
// reused for another label of the same instant.
func (s *Stamp) String() string {
	out := strings.Join(s.parts, "")
	s.parts = s.parts[:0]
	return out
}
