package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucReservation "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
)

// Infra is what the process builds once and shares with every handler.
type Infra struct {
	Audit   *audit.Dispatcher
	Cache   availability.Cache
	Metrics *metrics.Metrics
	Limiter *middleware.RateLimiter

	// Now defaults to the wall clock in the configured time zone.
	Now func() time.Time
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	loc := timezone.Location(cfg.Timezone)

	now := infra.Now
	if now == nil {
		now = func() time.Time { return timezone.NowIn(loc) }
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	// ======================================================
	// USE CASES (RESERVATIONS)
	// ======================================================
	listSlotsUC := ucReservation.NewListAvailableSlots(
		reservationRepo,
		infra.Cache,
		now,
	)

	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		infra.Audit,
		infra.Cache,
		now,
	)

	editReservationUC := ucReservation.NewEditReservation(
		reservationRepo,
		infra.Audit,
		infra.Cache,
		now,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		infra.Audit,
		infra.Cache,
		now,
	)

	getReservationUC := ucReservation.NewGetReservation(
		reservationRepo,
		now,
	)

	listReservationsByDateUC := ucReservation.NewListReservationsByDate(
		reservationRepo,
	)

	listActiveReservationsUC := ucReservation.NewListActiveReservations(
		reservationRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(listSlotsUC, loc, infra.Metrics)

	reservationHandler := handlers.NewReservationHandler(
		loc,
		infra.Metrics,
		createReservationUC,
		editReservationUC,
		cancelReservationUC,
		getReservationUC,
		listReservationsByDateUC,
		listActiveReservationsUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(db, infra.Cache, infra.Audit)
	barberHandler := handlers.NewBarberHandler(db, infra.Cache)
	serviceHandler := handlers.NewServiceHandler(db, infra.Cache)
	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	if infra.Limiter != nil {
		api.Use(infra.Limiter.Middleware())
	}
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/availability", availabilityHandler.Get)

		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/services", barberHandler.Services)
		api.GET("/barbers/:id/schedules", scheduleHandler.List)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.POST("/barbers", barberHandler.Create)
			secured.PUT("/barbers/:id/services", barberHandler.SetServices)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Deactivate)

			secured.POST("/schedules", scheduleHandler.Save)
			secured.DELETE("/schedules/:id", scheduleHandler.Delete)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/reservations", reservationHandler.List)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.POST("/reservations", reservationHandler.Create)
			secured.PUT("/reservations/:id", reservationHandler.Edit)
			secured.PUT("/reservations/:id/cancel", reservationHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
