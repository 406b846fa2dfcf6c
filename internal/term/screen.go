// Package term implements the ANSI render surface and the keyboard
// event source for a reading session. The session core only sees the
// reader.Surface and reader.EventSource interfaces; this package binds
// them to a real terminal.
package term

import (
	"bufio"
	"fmt"
	"io"
)

// Cursor positions are encoded as CSI parameters; anything beyond this
// cannot be addressed and is reported as an error, never truncated.
const maxCoord = 1<<16 - 1

// Screen renders text at absolute coordinates on an already-interactive
// terminal. It buffers writes until Flush.
type Screen struct {
	w *bufio.Writer
}

// NewScreen wraps a terminal writer. The caller owns raw-mode and
// alternate-screen lifecycle (see EnterInteractive).
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: bufio.NewWriter(w)}
}

// Clear erases the whole screen.
func (s *Screen) Clear() error {
	return s.escape("\x1b[2J")
}

// MoveTo places the cursor at a zero-based (col, row) position.
func (s *Screen) MoveTo(col, row int) error {
	if col < 0 || row < 0 || col > maxCoord || row > maxCoord {
		return fmt.Errorf("cursor position out of range: (%d, %d)", col, row)
	}
	return s.escape(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
}

// WriteText writes text at the current cursor position.
func (s *Screen) WriteText(text string) error {
	if _, err := s.w.WriteString(text); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// ClearLine erases the line the cursor is on.
func (s *Screen) ClearLine() error {
	return s.escape("\x1b[2K")
}

// Flush pushes buffered output to the terminal.
func (s *Screen) Flush() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func (s *Screen) escape(seq string) error {
	if _, err := s.w.WriteString(seq); err != nil {
		return fmt.Errorf("failed to write escape sequence: %w", err)
	}
	return nil
}
