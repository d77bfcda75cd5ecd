/*
Copyright 2024 Tim St. Pierre
Key events consumed by the typing surface
*/
package typer

import "fmt"

// KeyKind is the closed set of keys the typing surface understands.
type KeyKind uint8

const (
	KeyUnknown KeyKind = iota
	KeyChar            // printable character, see Key.Char
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyEscape
	KeyInterrupt // Ctrl-C
	KeyEOF       // Ctrl-D or end of input
)

var keyNames = map[KeyKind]string{
	KeyUnknown:   "unknown",
	KeyUp:        "u-arr",
	KeyDown:      "d-arr",
	KeyLeft:      "l-arr",
	KeyRight:     "r-arr",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyBackspace: "bksp",
	KeyPageUp:    "page-up",
	KeyPageDown:  "page-down",
	KeyTab:       "\\x09",
	KeyEscape:    "esc",
	KeyInterrupt: "keyboard-interrupt",
	KeyEOF:       "end-of-file",
}

// Key is a single decoded key press. Char is only meaningful for KeyChar.
type Key struct {
	Kind KeyKind
	Char byte
}

// Char returns the key for a printable character.
func Char(c byte) Key {
	return Key{Kind: KeyChar, Char: c}
}

// Special returns the key for a non-character kind.
func Special(k KeyKind) Key {
	return Key{Kind: k}
}

// Printable reports whether c can be written to the display as-is.
func Printable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

func (k Key) String() string {
	if k.Kind == KeyChar {
		return fmt.Sprintf("%q", k.Char)
	}
	if name, ok := keyNames[k.Kind]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", k.Kind)
}
