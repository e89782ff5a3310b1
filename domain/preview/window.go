package preview

import "math"

// MinTrimDuration is the shortest window, in seconds, ever handed to the
// external tool. It prevents zero-length or inverted trims regardless of
// what the caller asked for.
const MinTrimDuration = 0.05

// Window is a sanitized trim range. Start is never negative, End is always
// strictly greater than Start, and Duration is their difference.
type Window struct {
	Start    float64
	End      float64
	Duration float64
}

// SanitizeWindow normalizes a requested [start, end) range into a valid,
// minimum-duration Window. It is total over all float64 inputs: NaN and
// infinities are treated as absent. The duration floor is unconditional, so
// an end barely above start still yields at least MinTrimDuration.
func SanitizeWindow(start, end float64) Window {
	s := 0.0
	if isFinite(start) && start > 0 {
		s = start
	}

	e := s + MinTrimDuration
	if isFinite(end) && end > s {
		e = end
	}
	if e < s+MinTrimDuration {
		e = s + MinTrimDuration
	}

	return Window{
		Start:    s,
		End:      e,
		Duration: e - s,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
