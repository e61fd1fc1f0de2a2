package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucReservation "github.com/BruksfildServices01/barber-booking/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	listSlots *ucReservation.ListAvailableSlots
	loc       *time.Location
	metrics   *metrics.Metrics
}

func NewAvailabilityHandler(
	listSlots *ucReservation.ListAvailableSlots,
	loc *time.Location,
	m *metrics.Metrics,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		listSlots: listSlots,
		loc:       loc,
		metrics:   m,
	}
}

// ======================================================
// GET /api/availability?barber_id=&date=&services=
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
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

	serviceIDs, err := ucReservation.ParseServiceIDs(c.Query("services"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	day, err := h.listSlots.Execute(
		c.Request.Context(),
		ucReservation.ListSlotsInput{
			BarberID:   barberID,
			Date:       date,
			ServiceIDs: serviceIDs,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.metrics.ObserveSlotQuery(string(day.Outcome))
	c.JSON(http.StatusOK, day)
}
