package models

import "time"

// Event end times must be strictly after start times. The check constraint
// mirrors the validation-layer rule so the invariant also holds for writes
// that bypass the handlers.
type Event struct {
	BaseModel

	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `gorm:"not null;index:idx_events_start_location" json:"start_time"`
	EndTime     time.Time `gorm:"not null;check:chk_events_time_window,end_time > start_time" json:"end_time"`
	Location    string    `gorm:"size:255;not null;index:idx_events_start_location" json:"location"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
