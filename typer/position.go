/*
Copyright 2024 Tim St. Pierre
Cursor addressing for a 16x2 character display
*/
package typer

import "fmt"

const (
	// Columns is the width of each display row.
	Columns    = 16
	LastColumn = Columns - 1

	// DDRAM address commands for the first cell of each row, with the
	// set-address bit (0x80) already applied.
	Line1Start = 0x80
	Line2Start = 0xC0
	Line1End   = Line1Start + LastColumn
	Line2End   = Line2Start + LastColumn

	// BlankCode is written to clear a cell. It is an empty glyph in the
	// HD44780 A00 character ROM.
	BlankCode = 0x10
)

// Line selects one of the two display rows.
type Line uint8

const (
	First Line = iota
	Second
)

func (l Line) String() string {
	if l == First {
		return "first"
	}
	return "second"
}

// Position is the logical cursor. Column is always within [0, LastColumn].
type Position struct {
	Line   Line
	Column int
}

// Origin is the cursor position at start up.
var Origin = Position{Line: First, Column: 0}

func (p Position) String() string {
	return fmt.Sprintf("(%s,%d)", p.Line, p.Column)
}

// Address returns the set-DDRAM-address command byte for p.
func Address(p Position) byte {
	base := byte(Line1Start)
	if p.Line == Second {
		base = Line2Start
	}
	return base + byte(p.Column)
}
