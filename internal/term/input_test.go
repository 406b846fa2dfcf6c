package term

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestInputDeliversRunes(t *testing.T) {
	in, err := NewInput(strings.NewReader("q +"))
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	defer func() {
		_ = in.Close()
	}()

	want := []rune{'q', ' ', '+'}
	for _, r := range want {
		available, err := in.Poll(time.Second)
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if !available {
			t.Fatalf("expected event for %q", r)
		}
		ev, err := in.Read()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if ev.Kind != KindKey || ev.Rune != r {
			t.Fatalf("expected key %q, got %+v", r, ev)
		}
	}
}

func TestPollTimesOutWithoutInput(t *testing.T) {
	r := &blockedReader{ch: make(chan struct{})}
	defer r.unblock()
	in, err := NewInput(r)
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	defer func() {
		_ = in.Close()
	}()

	start := time.Now()
	available, err := in.Poll(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if available {
		t.Fatalf("expected no event")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("poll returned before timeout: %v", elapsed)
	}
}

func TestPollKeepsEventPendingUntilRead(t *testing.T) {
	in, err := NewInput(strings.NewReader("q"))
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	defer func() {
		_ = in.Close()
	}()

	for i := 0; i < 2; i++ {
		available, err := in.Poll(time.Second)
		if err != nil {
			t.Fatalf("poll failed: %v", err)
		}
		if !available {
			t.Fatalf("expected pending event on poll %d", i+1)
		}
	}
	ev, err := in.Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if ev.Rune != 'q' {
		t.Fatalf("expected q, got %+v", ev)
	}
}

func TestReadWithoutPendingEventFails(t *testing.T) {
	in, err := NewInput(strings.NewReader(""))
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	defer func() {
		_ = in.Close()
	}()

	if _, err := in.Read(); !errors.Is(err, ErrNoEvent) {
		t.Fatalf("expected ErrNoEvent, got %v", err)
	}
}

func TestPollReportsClosedSource(t *testing.T) {
	in, err := NewInput(strings.NewReader(""))
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	available, err := in.Poll(time.Second)
	if available {
		t.Fatalf("expected no event from empty source")
	}
	if err == nil {
		t.Fatalf("expected error once the source is exhausted")
	}
}

// blockedReader blocks reads until unblocked, simulating a quiet keyboard.
type blockedReader struct {
	ch chan struct{}
}

func (b *blockedReader) Read(p []byte) (int, error) {
	<-b.ch
	return 0, errors.New("closed")
}

func (b *blockedReader) unblock() {
	close(b.ch)
}
