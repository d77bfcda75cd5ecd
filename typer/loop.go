/*
Copyright 2024 Tim St. Pierre
Input loop tying a key source to a display
*/
package typer

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Source yields one key per call, blocking until one is available.
type Source interface {
	Next() (Key, error)
}

// Run reads keys from src and applies them to sink until a terminating key
// arrives, ctx is cancelled, or src or sink fail. The cursor starts at Origin;
// Run returns the final cursor position.
func Run(ctx context.Context, src Source, sink Sink) (Position, error) {
	pos := Origin
	for {
		if err := ctx.Err(); err != nil {
			return pos, err
		}
		k, err := src.Next()
		if err != nil {
			return pos, fmt.Errorf("typer: reading key: %w", err)
		}

		next, ops, sig := Handle(k, pos)
		log.WithFields(log.Fields{
			"key":  k,
			"from": pos,
			"to":   next,
			"ops":  len(ops),
		}).Debug("key handled")
		if sig == Terminate {
			log.Infof("typer: %s received, stopping", k)
			return pos, nil
		}
		if err := Apply(sink, ops); err != nil {
			return pos, err
		}
		pos = next
	}
}
