package calendar

import "time"

// Event is a calendar entry.
type Event struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	EndsAt      time.Time `gorm:"not null" json:"ends_at"`
	AllDay      bool      `json:"all_day"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the events table name.
func (Event) TableName() string {
	return "calendar_events"
}

// ModifiedAt exposes the last write time to recency strategies.
func (e *Event) ModifiedAt() time.Time {
	return e.UpdatedAt
}
