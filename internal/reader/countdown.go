package reader

import (
	"strconv"
	"time"
)

// runCountdown renders the pre-roll countdown once per second, counting
// from the configured lead-in down to 0. Remaining seconds come from
// wall-clock elapsed time, not a decrement, so render delays cannot
// accumulate drift. The countdown ignores input: the lead-in is a
// guaranteed quiet period before pacing starts.
func (s *Session) runCountdown() error {
	start := s.now()
	for {
		elapsed := s.now().Sub(start)
		remaining := int(s.countdown.Seconds()) - int(elapsed.Seconds())
		if remaining < 0 {
			remaining = 0
		}

		if err := s.printAligned(strconv.Itoa(remaining), s.cols/2, s.rows/2, alignCenter); err != nil {
			return err
		}
		if remaining > 0 {
			if err := s.printAligned("Starting in...", s.cols/2, s.rows/2-2, alignCenter); err != nil {
				return err
			}
		}
		if err := s.surface.Flush(); err != nil {
			return err
		}

		s.sleep(time.Second)

		if elapsed >= s.countdown {
			return nil
		}
	}
}
