package timezone

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBack(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	want := time.Date(2030, time.June, 3, 9, 30, 0, 0, loc)

	for _, in := range []string{
		"2030-06-03 09:30",
		"2030-06-03 09:30:00",
		"2030-06-03T09:30",
		"2030-06-03T12:30:00Z",
	} {
		got, err := ParseDateTime(in, loc)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, loc, got.Location(), in)
	}

	_, err := ParseDateTime("03/06/2030 09:30", loc)
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	start, end := DayBounds(time.Date(2030, time.June, 3, 23, 59, 0, 0, loc))
	assert.Equal(t, time.Date(2030, time.June, 3, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2030, time.June, 4, 0, 0, 0, 0, loc), end)
}
