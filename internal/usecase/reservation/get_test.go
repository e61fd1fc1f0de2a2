package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReservation_EditPermissions(t *testing.T) {
	s := newFixture()
	id, err := createAt(s, nil, clockAt(monday, 10, 0), 1, 2)
	require.NoError(t, err)

	detail, err := NewGetReservation(s, fixedClock(testNow)).Execute(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, detail.Editable)
	assert.Empty(t, detail.BlockedReason)
	assert.Len(t, detail.Reservation.Services, 2)

	soon := fixedClock(clockAt(monday, 10, 0).Add(-time.Hour))
	detail, err = NewGetReservation(s, soon).Execute(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, detail.Editable)
	assert.Contains(t, detail.BlockedReason, "24 hours")
}

func TestListReservationsByDate(t *testing.T) {
	s := newFixture()
	seedReservation(s, clockAt(monday, 15, 0), 30)
	seedReservation(s, clockAt(monday, 9, 0), 30)
	seedReservation(s, clockAt(monday.AddDate(0, 0, 1), 9, 0), 30)

	list, err := NewListReservationsByDate(s).Execute(context.Background(), barberID, monday)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].StartAt.Before(list[1].StartAt))
}
