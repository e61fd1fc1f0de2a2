package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

func createAt(s *memStore, cache availability.Cache, start time.Time, services ...uint) (uint, error) {
	uc := NewCreateReservation(s, nil, cache, fixedClock(testNow))

	res, err := uc.Execute(context.Background(), CreateReservationInput{
		ClientID:   1,
		BarberID:   barberID,
		StartAt:    start,
		Detail:     "fade",
		ServiceIDs: services,
	})
	if err != nil {
		return 0, err
	}
	return res.ID, nil
}

func TestCreateReservation_Success(t *testing.T) {
	s := newFixture()
	cache := newMemCache()

	id, err := createAt(s, cache, clockAt(monday, 9, 0), 1, 2)
	require.NoError(t, err)

	stored := s.reservation(id)
	assert.Equal(t, string(domain.StatusActive), stored.Status)
	assert.Equal(t, 75, stored.DurationMin)
	assert.Equal(t, "fade", stored.Detail)
	assert.Equal(t, []uint{1, 2}, s.links[id])
	assert.Equal(t, 1, s.dayLocks)

	assert.Equal(t, []string{"slots:1:2030-06-03"}, cache.invalidated)
}

func TestCreateReservation_InputValidation(t *testing.T) {
	uc := NewCreateReservation(newFixture(), nil, nil, fixedClock(testNow))
	ctx := context.Background()

	valid := CreateReservationInput{
		ClientID:   1,
		BarberID:   barberID,
		StartAt:    clockAt(monday, 9, 0),
		ServiceIDs: []uint{1},
	}

	tests := []struct {
		name   string
		mutate func(in *CreateReservationInput)
		code   string
	}{
		{"no client", func(in *CreateReservationInput) { in.ClientID = 0 }, "missing_client"},
		{"contact without phone", func(in *CreateReservationInput) {
			in.ClientID = 0
			in.Client = &ClientContact{Name: "Bia", Phone: "  "}
		}, "missing_client"},
		{"unknown client", func(in *CreateReservationInput) { in.ClientID = 99 }, "client_not_found"},
		{"no barber", func(in *CreateReservationInput) { in.BarberID = 0 }, "missing_barber"},
		{"no start", func(in *CreateReservationInput) { in.StartAt = time.Time{} }, "missing_start"},
		{"no services", func(in *CreateReservationInput) { in.ServiceIDs = nil }, "missing_services"},
		{"start in the past", func(in *CreateReservationInput) { in.StartAt = testNow.Add(-time.Minute) }, "start_in_past"},
		{"unknown service", func(in *CreateReservationInput) { in.ServiceIDs = []uint{42} }, "services_not_available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := uc.Execute(ctx, in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.code, ve.Code)
		})
	}
}

// The offering check fails before any schedule lookup.
func TestCreateReservation_NotOffered(t *testing.T) {
	s := newFixture()

	_, err := createAt(s, nil, clockAt(monday, 9, 0), 1, 3)

	var notOffered *domain.NotOfferedError
	require.ErrorAs(t, err, &notOffered)
	assert.Equal(t, []uint{1, 3}, notOffered.ServiceIDs)
	assert.Zero(t, s.scheduleLookups)
	assert.Zero(t, s.activeCount())
}

// One 10:00-10:30 booking, checked on the write path.
func TestCreateReservation_Adjacency(t *testing.T) {
	s := newFixture()
	existing := seedReservation(s, clockAt(monday, 10, 0), 30)

	_, err := createAt(s, nil, clockAt(monday, 10, 0), 1)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictOverlap, conflict.Reason)
	assert.Equal(t, 30, conflict.DurationMin)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, existing, conflict.Conflicts[0].ReservationID)

	_, err = createAt(s, nil, clockAt(monday, 9, 30), 1)
	assert.NoError(t, err)

	_, err = createAt(s, nil, clockAt(monday, 10, 30), 1)
	assert.NoError(t, err)

	assert.Equal(t, 3, s.activeCount())
}

func TestCreateReservation_WindowEdges(t *testing.T) {
	s := newFixture()
	var conflict *domain.ConflictError

	_, err := createAt(s, nil, clockAt(monday, 16, 45), 1)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictPastClosing, conflict.Reason)

	_, err = createAt(s, nil, clockAt(monday, 8, 30), 1)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictBeforeOpening, conflict.Reason)

	_, err = createAt(s, nil, clockAt(monday, 16, 30), 1)
	assert.NoError(t, err, "ending exactly at closing is allowed")
}

func TestCreateReservation_ClosedDay(t *testing.T) {
	s := newFixture()
	tuesday := monday.AddDate(0, 0, 1)

	_, err := createAt(s, nil, clockAt(tuesday, 10, 0), 1)

	var unavailable *domain.ScheduleUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, schedule.OutcomeInactiveWeeklyRule, unavailable.Outcome())
	assert.Zero(t, s.dayLocks)
}

func TestCreateReservation_ExceptionHours(t *testing.T) {
	s := newFixture()
	s.addException(barberID, "2030-06-03", "13:00", "15:00", true)

	_, err := createAt(s, nil, clockAt(monday, 10, 0), 1)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ConflictBeforeOpening, conflict.Reason)

	_, err = createAt(s, nil, clockAt(monday, 14, 30), 1)
	assert.NoError(t, err)
}

func TestCreateReservation_RollsBackOnStorageFailure(t *testing.T) {
	s := newFixture()
	s.insertErr = assert.AnError

	_, err := createAt(s, nil, clockAt(monday, 9, 0), 1)

	var st *domain.StorageError
	require.ErrorAs(t, err, &st)
	assert.Equal(t, "storage failure", err.Error())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, s.activeCount())
}

func TestCreateReservation_RegistersNewClient(t *testing.T) {
	s := newFixture()
	uc := NewCreateReservation(s, nil, nil, fixedClock(testNow))

	res, err := uc.Execute(context.Background(), CreateReservationInput{
		Client:     &ClientContact{Name: " Bia ", Phone: "555-0202", Email: "Bia@Example.com"},
		BarberID:   barberID,
		StartAt:    clockAt(monday, 9, 0),
		ServiceIDs: []uint{1},
	})
	require.NoError(t, err)

	require.Equal(t, 2, s.clientCount())
	client := s.clients[res.ClientID]
	assert.Equal(t, "Bia", client.Name)
	assert.Equal(t, "bia@example.com", client.Email)

	// A known phone books as the existing client.
	again, err := uc.Execute(context.Background(), CreateReservationInput{
		Client:     &ClientContact{Name: "Someone else", Phone: "555-0202"},
		BarberID:   barberID,
		StartAt:    clockAt(monday, 10, 0),
		ServiceIDs: []uint{1},
	})
	require.NoError(t, err)
	assert.Equal(t, res.ClientID, again.ClientID)
	assert.Equal(t, 2, s.clientCount())
}

// A rejected booking leaves no client behind.
func TestCreateReservation_ConflictDoesNotRegisterClient(t *testing.T) {
	s := newFixture()
	seedReservation(s, clockAt(monday, 10, 0), 30)

	uc := NewCreateReservation(s, nil, nil, fixedClock(testNow))
	_, err := uc.Execute(context.Background(), CreateReservationInput{
		Client:     &ClientContact{Name: "Bia", Phone: "555-0202"},
		BarberID:   barberID,
		StartAt:    clockAt(monday, 10, 0),
		ServiceIDs: []uint{1},
	})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, s.clientCount())
}

func TestCreateReservation_InactiveClient(t *testing.T) {
	s := newFixture()
	id := s.addClient("Caio", "555-0303", false)
	uc := NewCreateReservation(s, nil, nil, fixedClock(testNow))

	byID := CreateReservationInput{
		ClientID:   id,
		BarberID:   barberID,
		StartAt:    clockAt(monday, 9, 0),
		ServiceIDs: []uint{1},
	}
	byPhone := byID
	byPhone.ClientID = 0
	byPhone.Client = &ClientContact{Name: "Caio", Phone: "555-0303"}

	for _, in := range []CreateReservationInput{byID, byPhone} {
		_, err := uc.Execute(context.Background(), in)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "client_inactive", ve.Code)
	}
	assert.Zero(t, s.activeCount())
}

// Two identical requests race; exactly one commits and the other
// is told which reservation it collided with.
func TestCreateReservation_ConcurrentSameSlot(t *testing.T) {
	s := newFixture()
	start := clockAt(monday, 11, 0)

	const workers = 2

	var (
		wg    sync.WaitGroup
		ready = make(chan struct{})
		ids   = make([]uint, workers)
		errs  = make([]error, workers)
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ready
			ids[i], errs[i] = createAt(s, nil, start, 1)
		}()
	}
	close(ready)
	wg.Wait()

	var winner uint
	var conflict *domain.ConflictError
	successes := 0

	for i := range workers {
		if errs[i] == nil {
			successes++
			winner = ids[i]
			continue
		}
		require.ErrorAs(t, errs[i], &conflict)
	}

	require.Equal(t, 1, successes)
	require.NotNil(t, conflict)
	assert.Equal(t, domain.ConflictOverlap, conflict.Reason)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, winner, conflict.Conflicts[0].ReservationID)
	assert.Equal(t, 1, s.activeCount())
}
