package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// OccupancyQuery selects the ACTIVE reservations of one barber's day.
type OccupancyQuery struct {
	BarberID  uint
	DayStart  time.Time
	DayEnd    time.Time
	ExcludeID uint
	ForUpdate bool
}

// Store is the record store the booking engine runs against. Lookups that
// find nothing return ErrNotFound.
type Store interface {
	// -------- Services --------
	SumServiceDurations(
		ctx context.Context,
		serviceIDs []uint,
	) (int, error)

	CountOfferedServices(
		ctx context.Context,
		barberID uint,
		serviceIDs []uint,
	) (int, error)

	// -------- Schedule --------
	FindScheduleException(
		ctx context.Context,
		barberID uint,
		date string,
	) (*models.WorkingSchedule, error)

	FindWeeklySchedule(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingSchedule, error)

	// -------- Occupancy --------
	ListActiveReservations(
		ctx context.Context,
		q OccupancyQuery,
	) ([]availability.Interval, error)

	// LockBarberDay serializes writers on (barberID, day) until the
	// surrounding transaction ends.
	LockBarberDay(
		ctx context.Context,
		barberID uint,
		day time.Time,
	) error

	// -------- Client --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// FindOrCreateClient loads the client with c.Phone into c, inserting c
	// when no client has that phone.
	FindOrCreateClient(
		ctx context.Context,
		c *models.Client,
	) error

	// -------- Reservation --------
	InsertReservation(
		ctx context.Context,
		r *models.Reservation,
		serviceIDs []uint,
	) error

	GetReservation(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	GetReservationForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	UpdateReservation(
		ctx context.Context,
		r *models.Reservation,
	) error

	UpdateReservationStatus(
		ctx context.Context,
		id uint,
		status Status,
		at time.Time,
	) error

	InsertCancellation(
		ctx context.Context,
		c *models.ReservationCancellation,
	) error

	ListReservationsForDay(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Reservation, error)

	// ListActiveReservationsPage lists ACTIVE reservations of every barber,
	// latest start first, and the total number of them.
	ListActiveReservationsPage(
		ctx context.Context,
		limit int,
		offset int,
	) ([]models.Reservation, int64, error)

	// Transaction runs fn against a store bound to one database
	// transaction; fn's error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Store) error,
	) error
}
