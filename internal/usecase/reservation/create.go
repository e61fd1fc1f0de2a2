package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// ClientContact names a client by phone. The client is registered with the
// reservation when the phone is unknown.
type ClientContact struct {
	Name  string
	Phone string
	Email string
}

// CreateReservationInput identifies the client by ClientID or, when that is
// zero, by Client.
type CreateReservationInput struct {
	ClientID   uint
	Client     *ClientContact
	BarberID   uint
	StartAt    time.Time
	Detail     string
	ServiceIDs []uint

	// ActorID is the authenticated user, recorded in the audit trail.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

// CreateReservation validates a requested start and persists it in one
// transaction, so two overlapping requests cannot both commit.
type CreateReservation struct {
	repo  domain.Store
	audit *audit.Dispatcher
	cache availability.Cache
	now   func() time.Time
}

func NewCreateReservation(
	repo domain.Store,
	audit *audit.Dispatcher,
	cache availability.Cache,
	now func() time.Time,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
		now:   now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	contact, err := clientContact(in)
	if err != nil {
		return nil, err
	}
	if in.BarberID == 0 {
		return nil, domain.ErrValidation("missing_barber", "barber is required")
	}
	if in.StartAt.IsZero() {
		return nil, domain.ErrValidation("missing_start", "start date/time is required")
	}

	serviceIDs, err := NormalizeServiceIDs(in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	if in.StartAt.Before(uc.now()) {
		return nil, domain.ErrValidation("start_in_past", "requested time has already passed")
	}

	// --------------------------------------------------
	// 2. Validate and insert under the (barber, day) lock.
	//    A new client is only registered once the slot is approved.
	// --------------------------------------------------
	var created *models.Reservation

	err = uc.repo.Transaction(ctx, func(tx domain.Store) error {
		total, err := resolveDuration(ctx, tx, in.BarberID, serviceIDs)
		if err != nil {
			return err
		}

		if contact == nil {
			if err := ensureClientActive(ctx, tx, in.ClientID); err != nil {
				return err
			}
		}

		if err := checkSlot(ctx, tx, in.BarberID, in.StartAt, total, 0); err != nil {
			return err
		}

		clientID := in.ClientID
		if contact != nil {
			client := &models.Client{
				Name:  contact.Name,
				Phone: contact.Phone,
				Email: contact.Email,
			}
			if err := tx.FindOrCreateClient(ctx, client); err != nil {
				return domain.Storage("find or create client", err)
			}
			if !client.Active {
				return errClientInactive
			}
			clientID = client.ID
		}

		res := &models.Reservation{
			ClientID:    clientID,
			BarberID:    in.BarberID,
			StartAt:     in.StartAt,
			Detail:      in.Detail,
			Status:      string(domain.InitialStatus()),
			DurationMin: total,
		}

		if err := tx.InsertReservation(ctx, res, serviceIDs); err != nil {
			return domain.Storage("insert reservation", err)
		}

		created = res
		return nil
	})

	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			uc.audit.Dispatch(audit.Event{
				UserID: in.ActorID,
				Action: audit.ActionReservationConflict,
				Entity: audit.EntityReservation,
				Metadata: map[string]any{
					"barber_id":    in.BarberID,
					"start":        in.StartAt,
					"duration_min": conflict.DurationMin,
					"reason":       conflict.Reason,
				},
			})
		}
		return nil, domain.Storage("create reservation", err)
	}

	// --------------------------------------------------
	// 3. Side effects after commit
	// --------------------------------------------------
	invalidateDays(ctx, uc.cache, created.BarberID, created.StartAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionReservationCreated,
		Entity:   audit.EntityReservation,
		EntityID: &created.ID,
		Metadata: map[string]any{
			"barber_id":    created.BarberID,
			"client_id":    created.ClientID,
			"start":        created.StartAt,
			"duration_min": created.DurationMin,
			"services":     serviceIDs,
		},
	})

	return created, nil
}

var errClientInactive = domain.ErrValidation("client_inactive", "client is deactivated")

// clientContact returns the trimmed contact to register, or nil when the
// input names an existing client by id.
func clientContact(in CreateReservationInput) (*ClientContact, error) {
	if in.ClientID != 0 {
		return nil, nil
	}

	if in.Client != nil {
		c := ClientContact{
			Name:  strings.TrimSpace(in.Client.Name),
			Phone: strings.TrimSpace(in.Client.Phone),
			Email: strings.ToLower(strings.TrimSpace(in.Client.Email)),
		}
		if c.Name != "" && c.Phone != "" {
			return &c, nil
		}
	}

	return nil, domain.ErrValidation("missing_client", "client_id or client name and phone are required")
}

func ensureClientActive(ctx context.Context, tx domain.Store, id uint) error {
	client, err := tx.GetClient(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrValidation("client_not_found", "client does not exist")
		}
		return domain.Storage("get client", err)
	}
	if !client.Active {
		return errClientInactive
	}
	return nil
}
