package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucReservation "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	loc     *time.Location
	metrics *metrics.Metrics

	create     *ucReservation.CreateReservation
	edit       *ucReservation.EditReservation
	cancel     *ucReservation.CancelReservation
	get        *ucReservation.GetReservation
	listByDate *ucReservation.ListReservationsByDate
	listActive *ucReservation.ListActiveReservations
}

func NewReservationHandler(
	loc *time.Location,
	m *metrics.Metrics,
	create *ucReservation.CreateReservation,
	edit *ucReservation.EditReservation,
	cancel *ucReservation.CancelReservation,
	get *ucReservation.GetReservation,
	listByDate *ucReservation.ListReservationsByDate,
	listActive *ucReservation.ListActiveReservations,
) *ReservationHandler {
	return &ReservationHandler{
		loc:        loc,
		metrics:    m,
		create:     create,
		edit:       edit,
		cancel:     cancel,
		get:        get,
		listByDate: listByDate,
		listActive: listActive,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateReservationRequest names the client either by id or by contact
// details; an unknown phone number registers a new client.
type CreateReservationRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Services []uint `json:"services" binding:"required,min=1"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"` // HH:MM
	Detail   string `json:"detail" binding:"max=255"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
}

type EditReservationRequest struct {
	Date   *string `json:"date"`
	Time   *string `json:"time"`
	Detail *string `json:"detail" binding:"omitempty,max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	start, err := timezone.ParseDateTime(req.Date+" "+req.Time, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "invalid date or time")
		return
	}

	in := ucReservation.CreateReservationInput{
		ClientID:   req.ClientID,
		BarberID:   req.BarberID,
		StartAt:    start,
		Detail:     req.Detail,
		ServiceIDs: req.Services,
		ActorID:    middleware.ActorID(c),
	}
	if req.ClientID == 0 {
		in.Client = &ucReservation.ClientContact{
			Name:  req.ClientName,
			Phone: req.ClientPhone,
			Email: req.ClientEmail,
		}
	}

	res, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		h.observeConflict(err)
		httperr.FromError(c, err)
		return
	}

	h.metrics.ObserveCreated()
	httpresp.Created(c, gin.H{
		"id":       res.ID,
		"duration": res.DurationMin,
		"start_at": res.StartAt,
		"end_at":   res.EndAt(),
	})
}

func (h *ReservationHandler) observeConflict(err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		h.metrics.ObserveConflict(string(conflict.Reason))
	}
}

// ======================================================
// LIST
// ======================================================

// List serves one barber's day when barber_id or date is given, and
// otherwise a page of every ACTIVE reservation.
func (h *ReservationHandler) List(c *gin.Context) {
	if c.Query("barber_id") == "" && c.Query("date") == "" {
		h.listActivePage(c)
		return
	}
	h.listByBarberDay(c)
}

func (h *ReservationHandler) listActivePage(c *gin.Context) {
	page, limit := pageParams(c, 20, 100)

	list, total, err := h.listActive.Execute(c.Request.Context(), limit, (page-1)*limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]dto.ReservationListDTO, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewReservationListDTO(r))
	}

	httpresp.Page(c, out, page, limit, total)
}

func (h *ReservationHandler) listByBarberDay(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date is required")
		return
	}

	date, err := timezone.ParseDate(dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]dto.ReservationListDTO, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewReservationListDTO(r))
	}

	httpresp.List(c, out)
}

// ======================================================
// DETAIL
// ======================================================

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewReservationDetailDTO(
		*detail.Reservation,
		detail.Editable,
		detail.BlockedReason,
	))
}

// ======================================================
// EDIT
// ======================================================

func (h *ReservationHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req EditReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	in := ucReservation.EditReservationInput{
		ID:      id,
		Detail:  req.Detail,
		ActorID: middleware.ActorID(c),
	}

	switch {
	case req.Date != nil && req.Time != nil:
		start, err := timezone.ParseDateTime(*req.Date+" "+*req.Time, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "invalid date or time")
			return
		}
		in.StartAt = &start
	case req.Date != nil || req.Time != nil:
		httperr.BadRequest(c, "date_and_time_required", "date and time must be sent together")
		return
	}

	res, err := h.edit.Execute(c.Request.Context(), in)
	if err != nil {
		h.observeConflict(err)
		httperr.FromError(c, err)
		return
	}

	h.metrics.ObserveEdited()
	httpresp.OK(c, gin.H{
		"id":       res.ID,
		"start_at": res.StartAt,
		"end_at":   res.EndAt(),
		"detail":   res.Detail,
		"status":   res.Status,
	})
}

// ======================================================
// CANCEL
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.ObserveCancelled()
	httpresp.OK(c, gin.H{
		"id":           res.ID,
		"status":       res.Status,
		"cancelled_at": res.CancelledAt,
	})
}
