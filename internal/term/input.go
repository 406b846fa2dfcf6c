package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/muesli/cancelreader"
)

// EventKind discriminates terminal events. Only key presses carry
// meaning for playback; everything else is delivered as KindOther so
// the session can ignore it explicitly.
type EventKind int

const (
	// KindKey is a single key press.
	KindKey EventKind = iota
	// KindOther is any event the session does not act on.
	KindOther
)

// Event is one terminal input event.
type Event struct {
	Kind EventKind
	Rune rune
}

// ErrNoEvent is returned by Read when no event is pending. A positive
// Poll followed by ErrNoEvent means the source failed to deliver, which
// is fatal to the session.
var ErrNoEvent = errors.New("no input event available")

// Input reads key presses from a terminal file on a background
// goroutine and hands them out through bounded polls. It is meant for
// single-threaded consumption by the session loops.
type Input struct {
	reader  cancelreader.CancelReader
	events  chan Event
	pending *Event
	readErr error
}

// NewInput starts reading events from r. Call Close to stop the
// background reader and release r.
func NewInput(r io.Reader) (*Input, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create input reader: %w", err)
	}
	in := &Input{
		reader: cr,
		events: make(chan Event, 32),
	}
	go in.readLoop()
	return in, nil
}

func (in *Input) readLoop() {
	br := bufio.NewReader(in.reader)
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			in.readErr = err
			close(in.events)
			return
		}
		kind := KindKey
		if r == utf8.RuneError {
			kind = KindOther
		}
		in.events <- Event{Kind: kind, Rune: r}
	}
}

// Poll reports whether an event is available, waiting at most timeout.
// The event stays pending until Read consumes it.
func (in *Input) Poll(timeout time.Duration) (bool, error) {
	if in.pending != nil {
		return true, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev, ok := <-in.events:
		if !ok {
			if errors.Is(in.readErr, cancelreader.ErrCanceled) {
				return false, nil
			}
			return false, fmt.Errorf("input source closed: %w", in.readErr)
		}
		in.pending = &ev
		return true, nil
	case <-timer.C:
		return false, nil
	}
}

// Read returns the event a previous Poll made available.
func (in *Input) Read() (Event, error) {
	if in.pending == nil {
		return Event{}, ErrNoEvent
	}
	ev := *in.pending
	in.pending = nil
	return ev, nil
}

// Close cancels the pending read and releases the reader. The terminal
// file itself stays open; later stages may keep using it.
func (in *Input) Close() error {
	in.reader.Cancel()
	if err := in.reader.Close(); err != nil {
		return fmt.Errorf("failed to close input reader: %w", err)
	}
	return nil
}
