package models

import "time"

type Application struct {
	BaseModel

	Status        string    `gorm:"size:20;not null;default:pending" json:"status"`
	SubmittedAt   time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	GoogleFormURL *string   `json:"google_form_url"`
	StartupID     uint      `gorm:"not null;index" json:"startup_id"`

	// Relationships
	Startup Startup            `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Votes   []ApplicationVote  `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Scores  []ApplicationScore `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type ApplicationVote struct {
	BaseModel

	Vote          bool      `gorm:"not null" json:"vote"`
	VotedAt       time.Time `gorm:"autoCreateTime" json:"voted_at"`
	ApplicationID uint      `gorm:"not null;uniqueIndex:idx_application_votes_application_user" json:"application_id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_application_votes_application_user" json:"user_id"`

	// Relationships
	Application Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User        User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type ApplicationScore struct {
	BaseModel

	Score         float64   `gorm:"type:decimal(5,2);not null" json:"score"`
	ScoredAt      time.Time `gorm:"autoCreateTime" json:"scored_at"`
	ApplicationID uint      `gorm:"not null;uniqueIndex:idx_application_scores_application_user" json:"application_id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_application_scores_application_user" json:"user_id"`

	// Relationships
	Application Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User        User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
