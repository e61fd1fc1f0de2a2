package models

import "time"

// WorkingSchedule is either a weekly rule (Weekday, 1=Monday..7=Sunday) or a
// one-time exception (SpecificDate, YYYY-MM-DD). Exactly one of the two is set.
type WorkingSchedule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	Weekday      *int    `gorm:"index" json:"weekday"`
	SpecificDate *string `gorm:"size:10;index" json:"specific_date"`

	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ws WorkingSchedule) IsException() bool {
	return ws.SpecificDate != nil
}
