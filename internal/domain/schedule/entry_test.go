package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   models.WorkingSchedule
		wantErr error
	}{
		{
			name:  "weekly rule",
			entry: models.WorkingSchedule{Weekday: ptr(3), StartTime: "09:00", EndTime: "18:00", Active: true},
		},
		{
			name:  "exception",
			entry: models.WorkingSchedule{SpecificDate: ptr("2030-12-24"), StartTime: "09:00", EndTime: "12:00", Active: true},
		},
		{
			name:  "day off without hours",
			entry: models.WorkingSchedule{SpecificDate: ptr("2030-12-25")},
		},
		{
			name:    "both keys",
			entry:   models.WorkingSchedule{Weekday: ptr(1), SpecificDate: ptr("2030-06-03"), StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrWeekdayAndDate,
		},
		{
			name:    "no key",
			entry:   models.WorkingSchedule{StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrNoRuleKey,
		},
		{
			name:    "weekday zero",
			entry:   models.WorkingSchedule{Weekday: ptr(0), StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrInvalidWeekday,
		},
		{
			name:    "bad date",
			entry:   models.WorkingSchedule{SpecificDate: ptr("03/06/2030"), StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "bad clock",
			entry:   models.WorkingSchedule{Weekday: ptr(2), StartTime: "25:00", EndTime: "26:00", Active: true},
			wantErr: ErrInvalidClock,
		},
		{
			name:    "empty window",
			entry:   models.WorkingSchedule{Weekday: ptr(2), StartTime: "10:00", EndTime: "10:00", Active: true},
			wantErr: ErrEmptyWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:05:59")
	require.NoError(t, err)
	assert.Equal(t, Clock(8*60+5), c)
	assert.Equal(t, "08:05", c.String())

	for _, bad := range []string{"", "8", "24:00", "10:60", "ab:cd", "1:2:3:4"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, bad)
	}
}
