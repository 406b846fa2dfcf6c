package reader

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/skim/internal/model"
	"github.com/verte-zerg/skim/internal/term"
)

// pauseOutcome is the three-way result the pacing loop dispatches on:
// continue the current token, restart from the first token, or cancel.
type pauseOutcome int

const (
	pauseResumed pauseOutcome = iota
	pauseRateChanged
	pauseQuit
)

// pauseLoop freezes playback and keeps handling input at a coarser
// poll. Rate changes apply immediately to the session's rate and are
// reflected in the top-left indicator in place.
func (s *Session) pauseLoop() (pauseOutcome, error) {
	msg := fmt.Sprintf("Paused. Press %q to resume...", keyName(s.keys.Pause))
	if err := s.printAligned(msg, s.cols/2, s.rows/2+1, alignCenter); err != nil {
		return pauseQuit, err
	}
	if err := s.surface.Flush(); err != nil {
		return pauseQuit, err
	}

	changed := false
	for {
		available, err := s.input.Poll(s.pausePollEvery)
		if err != nil {
			return pauseQuit, fmt.Errorf("failed to poll input: %w", err)
		}
		if !available {
			continue
		}
		ev, err := s.input.Read()
		if err != nil {
			return pauseQuit, fmt.Errorf("failed to read input event: %w", err)
		}
		if ev.Kind != term.KindKey {
			continue
		}

		switch ev.Rune {
		case s.keys.IncreaseWPM:
			s.wpm = model.ClampWPM(s.wpm + s.step)
			changed = true
			if err := s.renderRate(); err != nil {
				return pauseQuit, err
			}
		case s.keys.DecreaseWPM:
			s.wpm = model.ClampWPM(s.wpm - s.step)
			changed = true
			// A lower rate can have fewer digits; blank the old
			// cell first so no stale characters trail the value.
			if err := s.clearRate(); err != nil {
				return pauseQuit, err
			}
			if err := s.renderRate(); err != nil {
				return pauseQuit, err
			}
		case s.keys.Quit:
			return pauseQuit, nil
		case s.keys.Pause:
			if err := s.surface.ClearLine(); err != nil {
				return pauseQuit, fmt.Errorf("failed to clear paused line: %w", err)
			}
			if err := s.surface.Flush(); err != nil {
				return pauseQuit, err
			}
			if changed {
				return pauseRateChanged, nil
			}
			return pauseResumed, nil
		}
	}
}

func (s *Session) renderRate() error {
	if err := s.printAligned(fmt.Sprintf("WPM: %d", s.wpm), 0, 0, alignLeft); err != nil {
		return err
	}
	return s.surface.Flush()
}

func (s *Session) clearRate() error {
	if err := s.surface.MoveTo(0, 0); err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	blank := strings.Repeat(" ", len(fmt.Sprintf("WPM: %d", model.MaxWPM)))
	if err := s.surface.WriteText(blank); err != nil {
		return fmt.Errorf("failed to clear rate indicator: %w", err)
	}
	return nil
}
