package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleHandler struct {
	db    *gorm.DB
	cache availability.Cache
	audit *audit.Dispatcher
}

func NewScheduleHandler(
	db *gorm.DB,
	cache availability.Cache,
	audit *audit.Dispatcher,
) *ScheduleHandler {
	return &ScheduleHandler{
		db:    db,
		cache: cache,
		audit: audit,
	}
}

// --------- Requests ---------

// SaveScheduleRequest carries either a weekday (weekly rule) or a
// specific_date (exception), never both.
type SaveScheduleRequest struct {
	BarberID     uint    `json:"barber_id" binding:"required"`
	Weekday      *int    `json:"weekday"`
	SpecificDate *string `json:"specific_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Active       *bool   `json:"active"`
}

// --------- Handlers ---------

// List returns the barber's rows, exceptions first (by date), then the
// weekly rules (by weekday).
func (h *ScheduleHandler) List(c *gin.Context) {
	barberID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var rows []models.WorkingSchedule
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", barberID).
		Order("specific_date IS NULL ASC").
		Order("specific_date ASC").
		Order("weekday ASC").
		Find(&rows).Error; err != nil {

		httperr.Internal(c, "failed_to_list_schedules", "failed to list schedules")
		return
	}

	httpresp.List(c, rows)
}

// Save upserts one row keyed by (barber, weekday) or (barber, date).
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	entry := models.WorkingSchedule{
		BarberID:     req.BarberID,
		Weekday:      req.Weekday,
		SpecificDate: req.SpecificDate,
		StartTime:    strings.TrimSpace(req.StartTime),
		EndTime:      strings.TrimSpace(req.EndTime),
		Active:       req.Active == nil || *req.Active,
	}
	if entry.SpecificDate != nil && *entry.SpecificDate == "" {
		entry.SpecificDate = nil
	}

	if err := schedule.ValidateEntry(entry); err != nil {
		httperr.BadRequest(c, "invalid_schedule", err.Error())
		return
	}

	ctx := c.Request.Context()
	created := false

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.Select("id").First(&barber, entry.BarberID).Error; err != nil {
			return err
		}

		q := tx.Where("barber_id = ?", entry.BarberID)
		if entry.IsException() {
			q = q.Where("specific_date = ?", *entry.SpecificDate)
		} else {
			q = q.Where("weekday = ? AND specific_date IS NULL", *entry.Weekday)
		}

		var existing models.WorkingSchedule
		err := q.First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(&entry).Error
		case err != nil:
			return err
		}

		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Updates(map[string]any{
			"start_time": entry.StartTime,
			"end_time":   entry.EndTime,
			"active":     entry.Active,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "barber not found")
			return
		}
		httperr.Internal(c, "failed_to_save_schedule", "failed to save schedule")
		return
	}

	h.invalidate(c, entry)

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   audit.ActionScheduleSaved,
		Entity:   audit.EntitySchedule,
		EntityID: &entry.ID,
		Metadata: entry,
	})

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, entry)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var entry models.WorkingSchedule
	if err := db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "schedule_not_found", "schedule not found")
			return
		}
		httperr.Internal(c, "failed_to_get_schedule", "failed to get schedule")
		return
	}

	if err := db.Delete(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_schedule", "failed to delete schedule")
		return
	}

	h.invalidate(c, entry)

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   audit.ActionScheduleDeleted,
		Entity:   audit.EntitySchedule,
		EntityID: &entry.ID,
		Metadata: entry,
	})

	c.Status(http.StatusNoContent)
}

// invalidate drops cached slots the entry can affect: one day for an
// exception, every day of the barber for a weekly rule.
func (h *ScheduleHandler) invalidate(c *gin.Context, entry models.WorkingSchedule) {
	if h.cache == nil {
		return
	}
	if entry.IsException() {
		h.cache.InvalidateDay(c.Request.Context(), entry.BarberID, *entry.SpecificDate)
		return
	}
	h.cache.InvalidateBarber(c.Request.Context(), entry.BarberID)
}
