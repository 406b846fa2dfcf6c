// Package reader implements the timed word-by-word playback core: the
// countdown stage, the pacing loop that holds each token on screen for
// a rate-derived duration while draining key events, and the pause
// sub-loop that adjusts the rate while the main sequence is frozen.
package reader

import (
	"fmt"
	"time"

	"github.com/verte-zerg/skim/internal/model"
	"github.com/verte-zerg/skim/internal/term"
)

// Surface is the cursor-addressable display the session renders to.
// The caller owns the terminal lifecycle; the session assumes the
// surface is already interactive.
type Surface interface {
	Clear() error
	MoveTo(col, row int) error
	WriteText(text string) error
	ClearLine() error
	Flush() error
}

// EventSource delivers key presses through bounded polls so the pacing
// loop never blocks past its hold deadline.
type EventSource interface {
	Poll(timeout time.Duration) (bool, error)
	Read() (term.Event, error)
}

const (
	pollInterval      = 50 * time.Millisecond
	pausePollInterval = 100 * time.Millisecond
	countdownSeconds  = 3
)

// passOutcome is the result of one pass over the token sequence. The
// outer driver loop in Run turns restart into another pass instead of
// recursing, so stack depth stays constant however often the rate
// changes mid-session.
type passOutcome int

const (
	passCompleted passOutcome = iota
	passCancelled
	passRestart
)

// Session drives one reading run over a fixed token sequence. The rate
// is owned by the session and mutated only by the pause sub-loop while
// the pacing loop is suspended.
type Session struct {
	surface Surface
	input   EventSource
	words   []string
	keys    model.KeyBindings
	step    int
	wpm     int
	cols    int
	rows    int

	pollEvery      time.Duration
	pausePollEvery time.Duration
	countdown      time.Duration
	sleep          func(time.Duration)
	now            func() time.Time
}

// New constructs a session over an already-tokenized text. The terminal
// size is captured once; mid-session resizes are not tracked.
func New(surface Surface, input EventSource, words []string, cfg model.Config, cols, rows int) *Session {
	return &Session{
		surface:        surface,
		input:          input,
		words:          words,
		keys:           cfg.Keys,
		step:           cfg.WPMStep,
		wpm:            model.ClampWPM(cfg.WPM),
		cols:           cols,
		rows:           rows,
		pollEvery:      pollInterval,
		pausePollEvery: pausePollInterval,
		countdown:      countdownSeconds * time.Second,
		sleep:          time.Sleep,
		now:            time.Now,
	}
}

// Run plays the token sequence to completion or cancellation. A rate
// change while paused restarts playback from the first token with the
// new rate; the countdown runs only once per session.
func (s *Session) Run() (model.Result, error) {
	if err := s.runCountdown(); err != nil {
		return model.Result{}, err
	}
	for {
		outcome, err := s.playWords()
		if err != nil {
			return model.Result{}, err
		}
		switch outcome {
		case passRestart:
			continue
		case passCancelled:
			return model.Result{}, nil
		default:
			return model.Result{Completed: true, WPM: s.wpm}, nil
		}
	}
}

// playWords is the pacing loop: one pass over the full token sequence.
func (s *Session) playWords() (passOutcome, error) {
	for i, word := range s.words {
		if err := s.renderFrame(word, i); err != nil {
			return passCancelled, err
		}

		// Per-word interval at the rate in effect when the frame
		// was rendered. A pause cannot stretch it: resuming picks
		// the wait back up against the same start instant.
		hold := time.Duration(60_000/s.wpm) * time.Millisecond
		start := s.now()
		paused := false

		for s.now().Sub(start) < hold {
			available, err := s.input.Poll(s.pollEvery)
			if err != nil {
				return passCancelled, fmt.Errorf("failed to poll input: %w", err)
			}
			if available {
				ev, err := s.input.Read()
				if err != nil {
					return passCancelled, fmt.Errorf("failed to read input event: %w", err)
				}
				if ev.Kind == term.KindKey {
					switch ev.Rune {
					case s.keys.Quit:
						return passCancelled, nil
					case s.keys.Pause:
						paused = !paused
					}
				}
			}

			if paused {
				outcome, err := s.pauseLoop()
				if err != nil {
					return passCancelled, err
				}
				switch outcome {
				case pauseQuit:
					return passCancelled, nil
				case pauseRateChanged:
					return passRestart, nil
				}
				paused = false
			}
		}
	}
	return passCompleted, nil
}
