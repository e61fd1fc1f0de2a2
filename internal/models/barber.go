package models

import "time"

type Barber struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	Active bool   `gorm:"default:true" json:"active"`

	Services []Service `gorm:"many2many:barber_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BarberService links a barber to a service the barber performs.
type BarberService struct {
	BarberID  uint `gorm:"primaryKey" json:"barber_id"`
	ServiceID uint `gorm:"primaryKey" json:"service_id"`
}
