package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Cost        float64 `json:"cost"`
}

type ReservationListDTO struct {
	ID          uint         `json:"id"`
	StartAt     time.Time    `json:"start_at"`
	EndAt       time.Time    `json:"end_at"`
	DurationMin int          `json:"duration_min"`
	Status      string       `json:"status"`
	BarberID    uint         `json:"barber_id"`
	BarberName  string       `json:"barber_name,omitempty"`
	ClientName  string       `json:"client_name"`
	Detail      string       `json:"detail"`
	Services    []ServiceDTO `json:"services"`
}

// EditPermissions tells a client which fields of a reservation it may send
// back in an edit.
type EditPermissions struct {
	Date          bool   `json:"date"`
	Time          bool   `json:"time"`
	Detail        bool   `json:"detail"`
	Services      bool   `json:"services"`
	Barber        bool   `json:"barber"`
	BlockedReason string `json:"blocked_reason,omitempty"`
}

type ReservationDetailDTO struct {
	ReservationListDTO

	ClientID    uint       `json:"client_id"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Permissions EditPermissions `json:"permissions"`
}

func NewServiceDTO(s models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Name:        s.Name,
		DurationMin: s.DurationMin,
		Cost:        s.Cost,
	}
}

func NewReservationListDTO(r models.Reservation) ReservationListDTO {
	services := make([]ServiceDTO, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, NewServiceDTO(s))
	}

	return ReservationListDTO{
		ID:          r.ID,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt(),
		DurationMin: r.DurationMin,
		Status:      r.Status,
		BarberID:    r.BarberID,
		BarberName:  r.Barber.Name,
		ClientName:  r.Client.Name,
		Detail:      r.Detail,
		Services:    services,
	}
}

func NewReservationDetailDTO(
	r models.Reservation,
	editable bool,
	blockedReason string,
) ReservationDetailDTO {
	return ReservationDetailDTO{
		ReservationListDTO: NewReservationListDTO(r),
		ClientID:           r.ClientID,
		CreatedAt:          r.CreatedAt,
		CancelledAt:        r.CancelledAt,
		Permissions: EditPermissions{
			Date:          editable,
			Time:          editable,
			Detail:        editable,
			BlockedReason: blockedReason,
		},
	}
}
