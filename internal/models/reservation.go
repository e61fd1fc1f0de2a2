package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	StartAt time.Time `gorm:"index;not null" json:"start_at"`
	Detail  string    `gorm:"size:255" json:"detail"`
	Status  string    `gorm:"size:20;default:'active';index" json:"status"`

	// Occupied minutes, fixed when the reservation is created.
	DurationMin int `gorm:"not null" json:"duration_min"`

	Services []Service `gorm:"many2many:reservation_services;" json:"services,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (r Reservation) EndAt() time.Time {
	return r.StartAt.Add(time.Duration(r.DurationMin) * time.Minute)
}

type ReservationService struct {
	ReservationID uint `gorm:"primaryKey" json:"reservation_id"`
	ServiceID     uint `gorm:"primaryKey" json:"service_id"`
}

type ReservationCancellation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ReservationID uint      `gorm:"index;not null" json:"reservation_id"`
	CancelledAt   time.Time `gorm:"not null" json:"cancelled_at"`
}
