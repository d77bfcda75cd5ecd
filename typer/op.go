/*
Copyright 2024 Tim St. Pierre
Display operations emitted by the cursor state machine
*/
package typer

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type OpKind uint8

const (
	OpSetAddress OpKind = iota + 1
	OpPrintChar
	OpClearCell
)

// Op is one write to the display. Pos is set for OpSetAddress and Code for
// OpPrintChar.
type Op struct {
	Kind OpKind
	Pos  Position
	Code byte
}

func SetAddress(p Position) Op {
	return Op{Kind: OpSetAddress, Pos: p}
}

func PrintChar(code byte) Op {
	return Op{Kind: OpPrintChar, Code: code}
}

// ClearCell blanks the cell under the hardware cursor. The hardware cursor
// advances, so it is always followed by a SetAddress.
func ClearCell() Op {
	return Op{Kind: OpClearCell}
}

func (o Op) String() string {
	switch o.Kind {
	case OpSetAddress:
		return fmt.Sprintf("SetAddress%s", o.Pos)
	case OpPrintChar:
		return fmt.Sprintf("PrintChar(%q)", o.Code)
	case OpClearCell:
		return "ClearCell()"
	}
	return fmt.Sprintf("op(%d)", o.Kind)
}

// Sink executes operations against a display controller. Command writes a
// byte with the register select line low, WriteData with it high.
type Sink interface {
	Command(b byte) error
	WriteData(b byte) error
}

// Apply runs ops against s in order, stopping at the first error.
func Apply(s Sink, ops []Op) error {
	for _, o := range ops {
		var err error
		switch o.Kind {
		case OpSetAddress:
			err = s.Command(Address(o.Pos))
		case OpPrintChar:
			err = s.WriteData(o.Code)
		case OpClearCell:
			err = s.WriteData(BlankCode)
		default:
			err = fmt.Errorf("unknown display operation %d", o.Kind)
		}
		if err != nil {
			return fmt.Errorf("typer: %s: %w", o, err)
		}
		log.Debugf("applied %s", o)
	}
	return nil
}
