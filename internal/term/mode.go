package term

import (
	"fmt"
	"os"

	xterm "golang.org/x/term"
)

// Mode holds the terminal state needed to undo EnterInteractive.
type Mode struct {
	in    *os.File
	out   *os.File
	state *xterm.State
}

// EnterInteractive switches the terminal into playback mode: raw input,
// alternate screen, hidden cursor. The caller must call Restore on
// every exit path, including failures.
func EnterInteractive(in, out *os.File) (*Mode, error) {
	state, err := xterm.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	if _, err := out.WriteString("\x1b[?1049h\x1b[2J\x1b[?25l"); err != nil {
		_ = xterm.Restore(int(in.Fd()), state)
		return nil, fmt.Errorf("failed to enter alternate screen: %w", err)
	}
	return &Mode{in: in, out: out, state: state}, nil
}

// Restore returns the terminal to its prior mode.
func (m *Mode) Restore() error {
	var firstErr error
	if err := xterm.Restore(int(m.in.Fd()), m.state); err != nil {
		firstErr = fmt.Errorf("failed to disable raw mode: %w", err)
	}
	if _, err := m.out.WriteString("\x1b[?1049l\x1b[2J\x1b[H\x1b[?25h"); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to restore screen: %w", err)
	}
	return firstErr
}

// Size reports the terminal dimensions. The session captures them once
// at startup; mid-session resizes are not tracked.
func Size(out *os.File) (cols, rows int, err error) {
	cols, rows, err = xterm.GetSize(int(out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get terminal size: %w", err)
	}
	return cols, rows, nil
}

// OpenTTY returns the keyboard file: stdin when it is a terminal,
// otherwise the controlling terminal (the text was piped in on stdin).
func OpenTTY() (*os.File, error) {
	if xterm.IsTerminal(int(os.Stdin.Fd())) {
		return os.Stdin, nil
	}
	f, err := os.Open("/dev/tty")
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal for keyboard input: %w", err)
	}
	return f, nil
}
