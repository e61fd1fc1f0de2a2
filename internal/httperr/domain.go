package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// ConflictResponse is the 409 body of a rejected slot.
type ConflictResponse struct {
	HTTPError
	Reason      domain.ConflictReason   `json:"reason"`
	DurationMin int                     `json:"duration"`
	Conflicts   []availability.Interval `json:"conflicts"`
}

type NotOfferedResponse struct {
	HTTPError
	ServiceIDs  []uint `json:"services"`
	DurationMin int    `json:"duration"`
}

type ScheduleResponse struct {
	HTTPError
	Outcome schedule.Outcome `json:"outcome"`
}

// FromError writes the response for an error returned by a use case.
// Anything outside the booking taxonomy is logged and answered with 500.
func FromError(c *gin.Context, err error) {
	var (
		validation  *domain.ValidationError
		notOffered  *domain.NotOfferedError
		unavailable *domain.ScheduleUnavailableError
		conflict    *domain.ConflictError
		state       *domain.StateError
		storage     *domain.StorageError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		NotFound(c, "not_found", "resource not found")

	case errors.As(err, &validation):
		BadRequest(c, validation.Code, validation.Message)

	case errors.As(err, &notOffered):
		c.JSON(http.StatusUnprocessableEntity, NotOfferedResponse{
			HTTPError: HTTPError{
				Code:    "service_not_offered",
				Message: notOffered.Error(),
			},
			ServiceIDs:  notOffered.ServiceIDs,
			DurationMin: notOffered.DurationMin,
		})

	case errors.As(err, &unavailable):
		c.JSON(http.StatusUnprocessableEntity, ScheduleResponse{
			HTTPError: HTTPError{
				Code:    "schedule_unavailable",
				Message: unavailable.Error(),
			},
			Outcome: unavailable.Outcome(),
		})

	case errors.As(err, &conflict):
		conflicts := conflict.Conflicts
		if conflicts == nil {
			conflicts = []availability.Interval{}
		}
		c.JSON(http.StatusConflict, ConflictResponse{
			HTTPError: HTTPError{
				Code:    "slot_unavailable",
				Message: conflict.Error(),
			},
			Reason:      conflict.Reason,
			DurationMin: conflict.DurationMin,
			Conflicts:   conflicts,
		})

	case errors.As(err, &state):
		Conflict(c, state.Code, state.Message)

	case errors.As(err, &storage):
		zerolog.Ctx(c.Request.Context()).Error().
			Err(storage.Err).
			Str("op", storage.Op).
			Msg("storage failure")
		Internal(c, "storage_failure", "internal error")

	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("unhandled error")
		Internal(c, "internal_error", "internal error")
	}
}
