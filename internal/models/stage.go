package models

// Stage is a sequential phase of the incubation program. Reference data
// managed by admins.
type Stage struct {
	BaseModel

	Name           string `gorm:"size:50;not null" json:"name"`
	SequenceOrder  int    `gorm:"not null" json:"sequence_order"`
	DurationMonths int    `gorm:"not null" json:"duration_months"`
}
