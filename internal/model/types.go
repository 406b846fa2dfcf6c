// Package model defines shared data structures.
package model

// WPM bounds enforced on every rate mutation.
const (
	MinWPM = 150
	MaxWPM = 1000
)

// KeyBindings holds the four single-rune playback commands.
type KeyBindings struct {
	Quit        rune
	Pause       rune
	IncreaseWPM rune
	DecreaseWPM rune
}

// Config defines the settings for one reading session.
type Config struct {
	WPM     int
	WPMStep int
	Model   string
	Keys    KeyBindings
}

// Result is the terminal outcome of a playback run. WPM is only
// meaningful when Completed is true; a cancelled run reports no rate.
type Result struct {
	Completed bool
	WPM       int
}

// ClampWPM forces a rate into the [MinWPM, MaxWPM] range.
func ClampWPM(wpm int) int {
	if wpm < MinWPM {
		return MinWPM
	}
	if wpm > MaxWPM {
		return MaxWPM
	}
	return wpm
}
