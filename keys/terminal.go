/*
Copyright 2024 Tim St. Pierre
Raw mode handling for the controlling terminal
*/
package keys

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Terminal reads keys from a file, switching it to raw mode first when it is
// a terminal so that every key press arrives unbuffered and unechoed.
type Terminal struct {
	*Reader
	fd    int
	state *term.State
}

// OpenTerminal prepares f for key reading. Input that is not a terminal,
// such as a pipe, is read as-is.
func OpenTerminal(f *os.File) (*Terminal, error) {
	t := &Terminal{Reader: NewReader(f), fd: int(f.Fd())}
	if !term.IsTerminal(t.fd) {
		log.Infof("keys: %s is not a terminal, reading raw bytes", f.Name())
		return t, nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, fmt.Errorf("keys: raw mode on %s: %w", f.Name(), err)
	}
	t.state = state
	return t, nil
}

// Close restores the terminal to the mode it was in before OpenTerminal.
func (t *Terminal) Close() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("keys: restoring terminal: %w", err)
	}
	return nil
}
