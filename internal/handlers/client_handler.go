package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Phone string `json:"phone" binding:"required,max=20"`
	Email string `json:"email" binding:"omitempty,email,max=100"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,min=1,max=20"`
	Email *string `json:"email" binding:"omitempty,max=100"`
}

// ======================================================
// LIST CLIENTS
// ======================================================

// List shows active clients; all=true includes deactivated ones.
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "failed to list clients")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	phone := strings.TrimSpace(req.Phone)
	db := h.db.WithContext(c.Request.Context())

	if !h.phoneFree(c, db, phone, 0) {
		return
	}

	client := models.Client{
		Name:   strings.TrimSpace(req.Name),
		Phone:  phone,
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Active: true,
	}

	if err := db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "failed to create client")
		return
	}

	httpresp.Created(c, client)
}

// ======================================================
// UPDATE CLIENT
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	client, ok := h.load(c, db, id)
	if !ok {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "name cannot be blank")
			return
		}
		client.Name = name
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			httperr.BadRequest(c, "invalid_phone", "phone cannot be blank")
			return
		}
		if phone != client.Phone && !h.phoneFree(c, db, phone, client.ID) {
			return
		}
		client.Phone = phone
	}

	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := db.Save(client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "failed to update client")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// DEACTIVATE CLIENT
// ======================================================

// Deactivate is a soft delete: the client and their reservations stay, but
// the client can no longer book.
func (h *ClientHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	client, ok := h.load(c, db, id)
	if !ok {
		return
	}

	if client.Active {
		if err := db.Model(client).Update("active", false).Error; err != nil {
			httperr.Internal(c, "failed_to_deactivate_client", "failed to deactivate client")
			return
		}
		client.Active = false
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) load(c *gin.Context, db *gorm.DB, id uint) (*models.Client, bool) {
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "client not found")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_client", "failed to get client")
		return nil, false
	}
	return &client, true
}

// phoneFree reports whether no client other than self uses phone. On false
// it has already written the response.
func (h *ClientHandler) phoneFree(c *gin.Context, db *gorm.DB, phone string, self uint) bool {
	var existing models.Client
	err := db.Where("phone = ? AND id <> ?", phone, self).First(&existing).Error
	switch {
	case err == nil:
		httperr.Conflict(c, "client_exists", "a client with this phone already exists")
		return false
	case !errors.Is(err, gorm.ErrRecordNotFound):
		httperr.Internal(c, "failed_to_get_client", "failed to get client")
		return false
	}
	return true
}
