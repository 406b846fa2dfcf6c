package reader

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
)

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

// Aligned positions are emitted as CSI parameters, which cap out at
// 16 bits. Wider text is a reported error, never a silent truncation.
const maxTextWidth = 1<<16 - 1

// ErrTextTooWide reports text whose display width exceeds the
// addressable coordinate space.
var ErrTextTooWide = errors.New("rendered text exceeds addressable width")

// renderFrame draws one word frame: rate top-left, position top-right,
// the token screen-centered, and the control legend bottom-centered.
func (s *Session) renderFrame(word string, index int) error {
	if err := s.surface.Clear(); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	if err := s.printAligned(fmt.Sprintf("WPM: %d", s.wpm), 0, 0, alignLeft); err != nil {
		return err
	}
	position := fmt.Sprintf("Word %d / %d", index+1, len(s.words))
	if err := s.printAligned(position, s.cols, 0, alignRight); err != nil {
		return err
	}
	if err := s.printAligned(word, s.cols/2, s.rows/2, alignCenter); err != nil {
		return err
	}
	legend := fmt.Sprintf("Controls: %s=Pause, %s=Quit, %s/%s = Adjust WPM",
		keyName(s.keys.Pause), string(s.keys.Quit), string(s.keys.IncreaseWPM), string(s.keys.DecreaseWPM))
	if err := s.printAligned(legend, s.cols/2, s.rows-2, alignCenter); err != nil {
		return err
	}
	return s.surface.Flush()
}

// printAligned writes text so that col is its left edge, center, or
// right edge depending on align. Display width uses terminal cells,
// not bytes, so wide runes center correctly.
func (s *Session) printAligned(text string, col, row int, align alignment) error {
	width := runewidth.StringWidth(text)
	if width > maxTextWidth {
		return ErrTextTooWide
	}

	pos := col
	switch align {
	case alignCenter:
		pos = col - width/2
	case alignRight:
		pos = col - width
	}
	if pos < 0 {
		pos = 0
	}

	if err := s.surface.MoveTo(pos, row); err != nil {
		return fmt.Errorf("failed to move cursor: %w", err)
	}
	if err := s.surface.WriteText(text); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// keyName renders a binding for on-screen hints.
func keyName(r rune) string {
	if r == ' ' {
		return "Spacebar"
	}
	return string(r)
}
