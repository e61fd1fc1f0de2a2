package availability

import (
	"iter"
	"slices"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// Granularity is the spacing of candidate start times, in minutes.
const Granularity = 30

// RoundUp moves now to the next slot boundary: before :30 it becomes :30 of
// the same hour, otherwise :00 of the next hour.
func RoundUp(now time.Time) time.Time {
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	if now.Minute() < Granularity {
		return base.Add(Granularity * time.Minute)
	}
	return base.Add(time.Hour)
}

func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Candidates enumerates start times inside window on date. The sequence is
// lazy and can be ranged over any number of times. When date is the same
// calendar day as now, candidates before RoundUp(now) are skipped.
func Candidates(window schedule.Window, date, now time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		today := SameDay(date, now)

		var earliest time.Time
		if today {
			earliest = RoundUp(now.In(date.Location()))
		}

		startHour, endHour := window.Start.Hour(), window.End.Hour()

		for hour := startHour; hour <= endHour; hour++ {
			first := 0
			if hour == startHour {
				first = window.Start.Minute()
			}
			last := 60
			if hour == endHour {
				last = window.End.Minute()
			}

			for minute := first; minute < last; minute += Granularity {
				t := time.Date(
					date.Year(), date.Month(), date.Day(),
					hour, minute, 0, 0,
					date.Location(),
				)
				if today && t.Before(earliest) {
					continue
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Bookable filters candidates through the overlap validator.
func Bookable(
	candidates iter.Seq[time.Time],
	durationMin int,
	closeAt time.Time,
	occupied []Interval,
) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for t := range candidates {
			if !IsBookable(t, durationMin, closeAt, occupied) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Slots is the materialized list of bookable start times for a day.
func Slots(
	window schedule.Window,
	date time.Time,
	now time.Time,
	durationMin int,
	occupied []Interval,
) []time.Time {
	seq := Bookable(
		Candidates(window, date, now),
		durationMin,
		window.CloseOn(date),
		occupied,
	)
	return slices.Collect(seq)
}
