package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ReservationGormRepository) SumServiceDurations(
	ctx context.Context,
	serviceIDs []uint,
) (int, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Select("COALESCE(SUM(duration_min), 0)").
		Where("id IN ?", serviceIDs).
		Scan(&total).Error; err != nil {
		return 0, translate(err)
	}
	return int(total), nil
}

func (r *ReservationGormRepository) CountOfferedServices(
	ctx context.Context,
	barberID uint,
	serviceIDs []uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BarberService{}).
		Where("barber_id = ? AND service_id IN ?", barberID, serviceIDs).
		Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return int(count), nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *ReservationGormRepository) FindScheduleException(
	ctx context.Context,
	barberID uint,
	date string,
) (*models.WorkingSchedule, error) {

	var ws models.WorkingSchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND specific_date = ?", barberID, date).
		First(&ws).Error; err != nil {
		return nil, translate(err)
	}
	return &ws, nil
}

func (r *ReservationGormRepository) FindWeeklySchedule(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingSchedule, error) {

	var ws models.WorkingSchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ? AND specific_date IS NULL", barberID, weekday).
		First(&ws).Error; err != nil {
		return nil, translate(err)
	}
	return &ws, nil
}

// --------------------------------------------------
// Occupancy
// --------------------------------------------------

func (r *ReservationGormRepository) ListActiveReservations(
	ctx context.Context,
	q domain.OccupancyQuery,
) ([]availability.Interval, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("id", "start_at", "duration_min").
		Where(
			"barber_id = ? AND status = ? AND start_at >= ? AND start_at < ?",
			q.BarberID, string(domain.StatusActive), q.DayStart, q.DayEnd,
		)

	if q.ExcludeID != 0 {
		tx = tx.Where("id <> ?", q.ExcludeID)
	}
	if q.ForUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.Reservation
	if err := tx.Order("start_at ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	out := make([]availability.Interval, 0, len(rows))
	for _, row := range rows {
		out = append(out, availability.Interval{
			ReservationID: row.ID,
			Start:         row.StartAt,
			DurationMin:   row.DurationMin,
		})
	}
	return out, nil
}

// LockBarberDay takes a transaction-scoped advisory lock keyed by barber and
// calendar day on PostgreSQL. Other dialects lock the barber row instead,
// which serializes every day of that barber.
func (r *ReservationGormRepository) LockBarberDay(
	ctx context.Context,
	barberID uint,
	day time.Time,
) error {

	if r.db.Dialector.Name() == "postgres" {
		return translate(r.db.WithContext(ctx).
			Exec("SELECT pg_advisory_xact_lock(?, ?)", int32(barberID), dayNumber(day)).
			Error)
	}

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&barber, barberID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return translate(err)
	}
	return nil
}

func dayNumber(day time.Time) int32 {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return int32(midnight.Unix() / 86400)
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ReservationGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ReservationGormRepository) FindOrCreateClient(
	ctx context.Context,
	c *models.Client,
) error {

	var found models.Client
	err := r.db.WithContext(ctx).
		Where(models.Client{Phone: c.Phone}).
		Attrs(models.Client{
			Name:   c.Name,
			Email:  c.Email,
			Active: true,
		}).
		FirstOrCreate(&found).Error
	if err != nil {
		return translate(err)
	}

	*c = found
	return nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) InsertReservation(
	ctx context.Context,
	res *models.Reservation,
	serviceIDs []uint,
) error {

	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(res).Error; err != nil {
		return translate(err)
	}

	links := make([]models.ReservationService, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		links = append(links, models.ReservationService{
			ReservationID: res.ID,
			ServiceID:     id,
		})
	}

	if len(links) > 0 {
		if err := db.Create(&links).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Services").
		First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *ReservationGormRepository) GetReservationForUpdate(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {

	return translate(r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", res.ID).
		Updates(map[string]any{
			"start_at": res.StartAt,
			"detail":   res.Detail,
		}).Error)
}

func (r *ReservationGormRepository) UpdateReservationStatus(
	ctx context.Context,
	id uint,
	status domain.Status,
	at time.Time,
) error {

	fields := map[string]any{"status": string(status)}
	if status == domain.StatusCancelled {
		fields["cancelled_at"] = at
	}

	return translate(r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (r *ReservationGormRepository) InsertCancellation(
	ctx context.Context,
	c *models.ReservationCancellation,
) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *ReservationGormRepository) ListReservationsForDay(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Reservation, error) {

	var out []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"barber_id = ? AND start_at >= ? AND start_at < ?",
			barberID, dayStart, dayEnd,
		).
		Order("start_at ASC").
		Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ReservationGormRepository) ListActiveReservationsPage(
	ctx context.Context,
	limit int,
	offset int,
) ([]models.Reservation, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("status = ?", string(domain.StatusActive))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var out []models.Reservation
	if err := q.
		Preload("Client").
		Preload("Barber").
		Preload("Services").
		Order("start_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, 0, translate(err)
	}
	return out, total, nil
}

func (r *ReservationGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Store) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
	return translate(err)
}

// Compile-time check
var _ domain.Store = (*ReservationGormRepository)(nil)
