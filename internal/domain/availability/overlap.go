package availability

import "time"

type Reason string

const (
	ReasonPastClosing Reason = "past_closing"
	ReasonOverlap     Reason = "overlap"
)

type Decision struct {
	Bookable  bool
	Reason    Reason
	Conflicts []Interval
}

// Overlaps reports whether the candidate [start, end) collides with occ.
// A candidate ending exactly when occ starts, or starting exactly when occ
// ends, does not collide.
func Overlaps(start, end time.Time, occ Interval) bool {
	occStart, occEnd := occ.Start, occ.End()

	startsInside := !start.Before(occStart) && start.Before(occEnd)
	endsInside := end.After(occStart) && !end.After(occEnd)
	contains := !start.After(occStart) && !end.Before(occEnd)

	return startsInside || endsInside || contains
}

// Check decides whether a booking of durationMin starting at start fits
// before closeAt and clear of every occupied interval. All conflicting
// intervals are reported.
func Check(
	start time.Time,
	durationMin int,
	closeAt time.Time,
	occupied []Interval,
) Decision {

	end := start.Add(time.Duration(durationMin) * time.Minute)
	if end.After(closeAt) {
		return Decision{Reason: ReasonPastClosing}
	}

	var conflicts []Interval
	for _, occ := range occupied {
		if Overlaps(start, end, occ) {
			conflicts = append(conflicts, occ)
		}
	}

	if len(conflicts) > 0 {
		return Decision{Reason: ReasonOverlap, Conflicts: conflicts}
	}
	return Decision{Bookable: true}
}

// IsBookable is Check without the diagnostics; it stops at the first conflict.
func IsBookable(
	start time.Time,
	durationMin int,
	closeAt time.Time,
	occupied []Interval,
) bool {

	end := start.Add(time.Duration(durationMin) * time.Minute)
	if end.After(closeAt) {
		return false
	}

	for _, occ := range occupied {
		if Overlaps(start, end, occ) {
			return false
		}
	}
	return true
}
