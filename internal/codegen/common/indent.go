package common

import "strings"

// Indent is an indentation level rendered with a fixed unit (e.g. "\t").
// It is a value type: In and Out return new levels and leave the receiver untouched.
type Indent struct {
	Unit  string
	Level int
}

// NewIndent returns a zero-level indentation using unit.
func NewIndent(unit string) Indent {
	return Indent{Unit: unit}
}

func (i Indent) String() string {
	if i.Level <= 0 {
		return ""
	}
	return strings.Repeat(i.Unit, i.Level)
}

// In returns the indentation one level deeper.
func (i Indent) In() Indent {
	return i.Add(1)
}

// Out returns the indentation one level shallower.
func (i Indent) Out() Indent {
	return i.Add(-1)
}

func (i Indent) Add(n int) Indent {
	lvl := i.Level + n
	if lvl < 0 {
		lvl = 0
	}
	return Indent{Unit: i.Unit, Level: lvl}
}
