package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache availability.Cache
}

func NewServiceHandler(db *gorm.DB, cache availability.Cache) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cache}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Cost        float64 `json:"cost" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=1"`
	Cost        *float64 `json:"cost,omitempty" binding:"omitempty,min=0"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "failed to list services")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "service not found")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "failed to get service")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		DurationMin: req.DurationMin,
		Cost:        req.Cost,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "failed to create service")
		return
	}

	httpresp.Created(c, service)
}

// Update changes a service. Existing reservations keep the duration they
// were booked with.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var service models.Service
	if err := h.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "service not found")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "failed to get service")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Cost != nil {
		service.Cost = *req.Cost
	}

	if err := h.db.WithContext(ctx).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "failed to update service")
		return
	}

	if req.DurationMin != nil {
		h.invalidateOfferingBarbers(c, service.ID)
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) invalidateOfferingBarbers(c *gin.Context, serviceID uint) {
	if h.cache == nil {
		return
	}

	var barberIDs []uint
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.BarberService{}).
		Where("service_id = ?", serviceID).
		Pluck("barber_id", &barberIDs).Error; err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("slot cache invalidation skipped")
		return
	}

	for _, id := range barberIDs {
		h.cache.InvalidateBarber(c.Request.Context(), id)
	}
}
