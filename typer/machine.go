/*
Copyright 2024 Tim St. Pierre
Cursor state machine for the 16x2 typing surface

The two rows behave as one ring of 32 cells while typing: printing in the
last column continues at the start of the other row, and right/left/backspace
cross between rows at the row edges. Delete never crosses rows.
*/
package typer

// Signal tells the caller whether to keep reading keys.
type Signal uint8

const (
	Continue Signal = iota
	Terminate
)

func (s Signal) String() string {
	if s == Terminate {
		return "terminate"
	}
	return "continue"
}

// Handle computes the effect of one key at cursor p. It returns the new
// cursor, the operations to send to the display in order, and whether the
// input loop should stop. Keys with no effect return p unchanged and no
// operations.
func Handle(k Key, p Position) (Position, []Op, Signal) {
	switch k.Kind {
	case KeyInterrupt, KeyEOF:
		return p, nil, Terminate

	case KeyUp:
		if p.Line == Second {
			p.Line = First
			return p, []Op{SetAddress(p)}, Continue
		}

	case KeyDown:
		if p.Line == First {
			p.Line = Second
			return p, []Op{SetAddress(p)}, Continue
		}

	case KeyRight:
		if next, ok := forward(p); ok {
			return next, []Op{SetAddress(next)}, Continue
		}

	case KeyLeft:
		if prev, ok := back(p); ok {
			return prev, []Op{SetAddress(prev)}, Continue
		}

	case KeyHome:
		p.Column = 0
		return p, []Op{SetAddress(p)}, Continue

	case KeyEnd:
		p.Column = LastColumn
		return p, []Op{SetAddress(p)}, Continue

	case KeyBackspace:
		if prev, ok := back(p); ok {
			return prev, []Op{SetAddress(prev), ClearCell(), SetAddress(prev)}, Continue
		}

	case KeyDelete:
		if p.Column != LastColumn {
			return p, []Op{ClearCell(), SetAddress(p)}, Continue
		}

	case KeyChar:
		if !Printable(k.Char) {
			break
		}
		if p.Column < LastColumn {
			p.Column++
			return p, []Op{PrintChar(k.Char)}, Continue
		}
		// Wrap to the start of the other row, including from the second
		// row back to the first.
		next := Position{Line: First, Column: 0}
		if p.Line == First {
			next.Line = Second
		}
		return next, []Op{PrintChar(k.Char), SetAddress(next)}, Continue

	case KeyTab, KeyInsert, KeyPageUp, KeyPageDown, KeyEscape, KeyUnknown:
	}
	return p, nil, Continue
}

// forward is the cell after p, crossing from the end of the first row to the
// start of the second. ok is false at the end of the second row.
func forward(p Position) (Position, bool) {
	switch {
	case p.Column < LastColumn:
		p.Column++
	case p.Line == First:
		p = Position{Line: Second, Column: 0}
	default:
		return p, false
	}
	return p, true
}

// back is the cell before p, crossing from the start of the second row to the
// end of the first. ok is false at the start of the first row.
func back(p Position) (Position, bool) {
	switch {
	case p.Column > 0:
		p.Column--
	case p.Line == Second:
		p = Position{Line: First, Column: LastColumn}
	default:
		return p, false
	}
	return p, true
}
