package timesheet

import "time"

// TravelShift is the fixed commute allowance applied to stored times when a
// travel flag is set.
const TravelShift = time.Hour

// ApplyTravelShift converts the raw user-entered span into the stored span:
// a morning commute moves the start back one hour, an afternoon commute moves
// the end forward one hour. The flags are independent and composable.
func ApplyTravelShift(start, end time.Time, morning, afternoon bool) (time.Time, time.Time) {
	if morning {
		start = start.Add(-TravelShift)
	}
	if afternoon {
		end = end.Add(TravelShift)
	}
	return start, end
}

// RawTimes inverts ApplyTravelShift so that editors redisplay the span the
// user originally typed, not the shifted one.
func RawTimes(start, end time.Time, morning, afternoon bool) (time.Time, time.Time) {
	if morning {
		start = start.Add(TravelShift)
	}
	if afternoon {
		end = end.Add(-TravelShift)
	}
	return start, end
}

// ValidSpan reports whether a stored span is acceptable: the end must be
// strictly after the start, evaluated after the travel shift.
func ValidSpan(start, end time.Time) bool {
	return end.After(start)
}
