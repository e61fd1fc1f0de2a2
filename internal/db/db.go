package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Msg("database ready")
	return db, nil
}

// Migrate registers the link tables and creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Barber{}, "Services", &models.BarberService{}); err != nil {
		return fmt.Errorf("setup barber_services: %w", err)
	}
	if err := db.SetupJoinTable(&models.Reservation{}, "Services", &models.ReservationService{}); err != nil {
		return fmt.Errorf("setup reservation_services: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Service{},
		&models.Barber{},
		&models.BarberService{},
		&models.Client{},
		&models.WorkingSchedule{},
		&models.Reservation{},
		&models.ReservationService{},
		&models.ReservationCancellation{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// One weekly rule per weekday and one exception per date.
	for _, stmt := range []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_working_schedules_weekly
			ON working_schedules (barber_id, weekday) WHERE specific_date IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_working_schedules_exception
			ON working_schedules (barber_id, specific_date) WHERE specific_date IS NOT NULL`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate schedule indexes: %w", err)
		}
	}

	return nil
}
