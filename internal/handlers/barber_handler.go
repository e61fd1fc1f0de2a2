package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberHandler struct {
	db    *gorm.DB
	cache availability.Cache
}

func NewBarberHandler(db *gorm.DB, cache availability.Cache) *BarberHandler {
	return &BarberHandler{db: db, cache: cache}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"max=20"`
}

type SetBarberServicesRequest struct {
	Services []uint `json:"services" binding:"required"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "failed to list barbers")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		First(&barber, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "barber not found")
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "failed to get barber")
		return
	}

	httpresp.OK(c, barber)
}

// Services lists what the barber offers.
func (h *BarberHandler) Services(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Joins("JOIN barber_services bs ON bs.service_id = services.id").
		Where("bs.barber_id = ?", id).
		Order("services.name ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "failed to list services")
		return
	}

	httpresp.List(c, services)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	barber := models.Barber{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Active: true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "failed to create barber")
		return
	}

	httpresp.Created(c, barber)
}

// SetServices replaces the barber's offering set.
func (h *BarberHandler) SetServices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetBarberServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	ctx := c.Request.Context()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.Select("id").First(&barber, id).Error; err != nil {
			return err
		}

		if len(req.Services) > 0 {
			var count int64
			if err := tx.Model(&models.Service{}).
				Where("id IN ?", req.Services).
				Count(&count).Error; err != nil {
				return err
			}
			if int(count) != len(uniqueIDs(req.Services)) {
				return errUnknownService
			}
		}

		if err := tx.Where("barber_id = ?", id).Delete(&models.BarberService{}).Error; err != nil {
			return err
		}

		links := make([]models.BarberService, 0, len(req.Services))
		for _, sid := range uniqueIDs(req.Services) {
			links = append(links, models.BarberService{BarberID: id, ServiceID: sid})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, "barber_not_found", "barber not found")
		return
	case errors.Is(err, errUnknownService):
		httperr.BadRequest(c, "unknown_service", err.Error())
		return
	case err != nil:
		httperr.Internal(c, "failed_to_set_services", "failed to update barber services")
		return
	}

	if h.cache != nil {
		h.cache.InvalidateBarber(ctx, id)
	}

	c.JSON(http.StatusOK, gin.H{"barber_id": id, "services": uniqueIDs(req.Services)})
}

var errUnknownService = errors.New("one or more services do not exist")

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
