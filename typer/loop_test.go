package typer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type write struct {
	command bool
	b       byte
}

// recordSink remembers every byte written, failing on the failAt-th write
// when failAt is positive.
type recordSink struct {
	writes []write
	failAt int
}

func (s *recordSink) add(w write) error {
	if s.failAt > 0 && len(s.writes)+1 == s.failAt {
		return errors.New("bus fault")
	}
	s.writes = append(s.writes, w)
	return nil
}

func (s *recordSink) Command(b byte) error   { return s.add(write{true, b}) }
func (s *recordSink) WriteData(b byte) error { return s.add(write{false, b}) }

type sliceSource struct {
	keys []Key
	err  error
}

func (s *sliceSource) Next() (Key, error) {
	if len(s.keys) == 0 {
		if s.err != nil {
			return Key{}, s.err
		}
		return Special(KeyEOF), nil
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

func TestApply(t *testing.T) {
	sink := &recordSink{}
	err := Apply(sink, []Op{
		SetAddress(at(First, 15)),
		ClearCell(),
		SetAddress(at(Second, 2)),
		PrintChar('k'),
	})
	require.NoError(t, err)
	assert.Equal(t, []write{
		{true, 0x8F},
		{false, BlankCode},
		{true, 0xC2},
		{false, 'k'},
	}, sink.writes)
}

func TestApplyStopsOnError(t *testing.T) {
	sink := &recordSink{failAt: 2}
	err := Apply(sink, []Op{PrintChar('a'), PrintChar('b'), PrintChar('c')})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus fault")
	assert.Len(t, sink.writes, 1)
}

func TestRun(t *testing.T) {
	src := &sliceSource{keys: []Key{
		Char('h'), Char('i'), Special(KeyDown), Special(KeyBackspace),
		Special(KeyInterrupt), Char('x'),
	}}
	sink := &recordSink{}

	pos, err := Run(context.Background(), src, sink)
	require.NoError(t, err)
	assert.Equal(t, at(Second, 1), pos)
	assert.Equal(t, []write{
		{false, 'h'},
		{false, 'i'},
		{true, 0xC2},
		{true, 0xC1},
		{false, BlankCode},
		{true, 0xC1},
	}, sink.writes)
	assert.Equal(t, []Key{Char('x')}, src.keys, "keys after the interrupt are not read")
}

func TestRunEndOfInput(t *testing.T) {
	pos, err := Run(context.Background(), &sliceSource{keys: []Key{Char('a')}}, &recordSink{})
	require.NoError(t, err)
	assert.Equal(t, at(First, 1), pos)
}

func TestRunSourceError(t *testing.T) {
	boom := errors.New("tty gone")
	_, err := Run(context.Background(), &sliceSource{err: boom, keys: []Key{}}, &recordSink{})
	require.ErrorIs(t, err, boom)
}

func TestRunSinkError(t *testing.T) {
	src := &sliceSource{keys: []Key{Char('a'), Char('b')}}
	pos, err := Run(context.Background(), src, &recordSink{failAt: 2})
	require.Error(t, err)
	assert.Equal(t, at(First, 1), pos)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &sliceSource{keys: []Key{Char('a')}}, &recordSink{})
	require.ErrorIs(t, err, context.Canceled)
}
