package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	occ := Interval{ReservationID: 1, Start: at(10, 0), DurationMin: 30}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"ends exactly at occupied start", at(9, 30), at(10, 0), false},
		{"starts exactly at occupied end", at(10, 30), at(11, 0), false},
		{"starts at occupied start", at(10, 0), at(10, 30), true},
		{"starts inside", at(10, 15), at(10, 45), true},
		{"ends inside", at(9, 45), at(10, 15), true},
		{"ends at occupied end", at(9, 30), at(10, 30), true},
		{"contains occupied", at(9, 30), at(11, 0), true},
		{"inside occupied", at(10, 5), at(10, 25), true},
		{"well before", at(8, 0), at(9, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.start, tt.end, occ))
		})
	}
}

func TestCheck_ClosingBoundary(t *testing.T) {
	closeAt := at(17, 0)

	d := Check(at(16, 30), 30, closeAt, nil)
	assert.True(t, d.Bookable, "ending exactly at closing is allowed")

	d = Check(at(16, 45), 30, closeAt, nil)
	assert.False(t, d.Bookable)
	assert.Equal(t, ReasonPastClosing, d.Reason)
	assert.Empty(t, d.Conflicts)
}

// One 10:00-10:30 booking, 30 minute request.
func TestCheck_AdjacentBookings(t *testing.T) {
	closeAt := at(17, 0)
	occupied := []Interval{{ReservationID: 7, Start: at(10, 0), DurationMin: 30}}

	assert.True(t, Check(at(9, 30), 30, closeAt, occupied).Bookable)
	assert.True(t, Check(at(10, 30), 30, closeAt, occupied).Bookable)

	d := Check(at(10, 0), 30, closeAt, occupied)
	require.False(t, d.Bookable)
	assert.Equal(t, ReasonOverlap, d.Reason)
	require.Len(t, d.Conflicts, 1)
	assert.Equal(t, uint(7), d.Conflicts[0].ReservationID)
}

func TestCheck_ReportsEveryConflict(t *testing.T) {
	occupied := []Interval{
		{ReservationID: 1, Start: at(9, 0), DurationMin: 30},
		{ReservationID: 2, Start: at(10, 0), DurationMin: 60},
		{ReservationID: 3, Start: at(12, 0), DurationMin: 30},
	}

	d := Check(at(9, 15), 90, at(18, 0), occupied)
	require.False(t, d.Bookable)

	ids := []uint{}
	for _, c := range d.Conflicts {
		ids = append(ids, c.ReservationID)
	}
	assert.Equal(t, []uint{1, 2}, ids)
}

func TestIsBookable_MatchesCheck(t *testing.T) {
	occupied := []Interval{
		{Start: at(10, 0), DurationMin: 45},
		{Start: at(13, 30), DurationMin: 30},
	}
	closeAt := at(15, 0)

	for start := at(8, 0); start.Before(closeAt); start = start.Add(15 * time.Minute) {
		for _, dur := range []int{15, 30, 60, 90} {
			assert.Equal(t,
				Check(start, dur, closeAt, occupied).Bookable,
				IsBookable(start, dur, closeAt, occupied),
				"start %s duration %d", start.Format("15:04"), dur,
			)
		}
	}
}
