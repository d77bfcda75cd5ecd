/*
Copyright 2024 Tim St. Pierre
Decodes raw terminal input into key presses
*/
package keys

import (
	"bufio"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/tstpierre-tc/lcdtyper/typer"
)

const (
	esc       = 0x1b
	ctrlC     = 0x03
	ctrlD     = 0x04
	tab       = 0x09
	backspace = 0x7f
)

// tildeKeys maps the digit of an "ESC [ n ~" sequence.
var tildeKeys = map[byte]typer.KeyKind{
	'1': typer.KeyHome,
	'2': typer.KeyInsert,
	'3': typer.KeyDelete,
	'4': typer.KeyEnd,
	'5': typer.KeyPageUp,
	'6': typer.KeyPageDown,
}

// csiKeys maps the final byte of "ESC [ x".
var csiKeys = map[byte]typer.KeyKind{
	'A': typer.KeyUp,
	'B': typer.KeyDown,
	'C': typer.KeyRight,
	'D': typer.KeyLeft,
}

// ss3Keys maps the final byte of "ESC O x".
var ss3Keys = map[byte]typer.KeyKind{
	'H': typer.KeyHome,
	'F': typer.KeyEnd,
}

// Reader turns a byte stream from a terminal in raw mode into keys. It
// implements typer.Source.
type Reader struct {
	r io.ByteReader
}

func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// Next blocks until a full key has been read. End of input is reported as
// typer.KeyEOF rather than an error.
func (r *Reader) Next() (typer.Key, error) {
	b, err := r.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return typer.Special(typer.KeyEOF), nil
	}
	if err != nil {
		return typer.Key{}, err
	}
	if b != esc {
		return single(b), nil
	}

	seq := []byte{esc}
	for {
		c, err := r.r.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return typer.Key{}, err
		}
		seq = append(seq, c)
		if !continues(c) || (len(seq) == 2 && c == esc) {
			break
		}
	}
	k := escape(seq)
	if k.Kind == typer.KeyUnknown {
		log.Debugf("keys: unrecognised sequence %q", seq)
	}
	return k, nil
}

// continues reports whether an escape sequence may go on after c.
func continues(c byte) bool {
	return (c >= '0' && c <= '9') || c == esc || c == '[' || c == 'O'
}

func single(b byte) typer.Key {
	switch b {
	case backspace:
		return typer.Special(typer.KeyBackspace)
	case ctrlC:
		return typer.Special(typer.KeyInterrupt)
	case ctrlD:
		return typer.Special(typer.KeyEOF)
	case tab:
		return typer.Special(typer.KeyTab)
	}
	if typer.Printable(b) {
		return typer.Char(b)
	}
	return typer.Special(typer.KeyUnknown)
}

func escape(seq []byte) typer.Key {
	var (
		kind typer.KeyKind
		ok   bool
	)
	switch {
	case len(seq) == 4 && seq[1] == '[' && seq[3] == '~':
		kind, ok = tildeKeys[seq[2]]
	case len(seq) == 3 && seq[1] == '[':
		kind, ok = csiKeys[seq[2]]
	case len(seq) == 3 && seq[1] == 'O':
		kind, ok = ss3Keys[seq[2]]
	case len(seq) == 2 && seq[1] == esc:
		kind, ok = typer.KeyEscape, true
	}
	if !ok {
		return typer.Special(typer.KeyUnknown)
	}
	return typer.Special(kind)
}
