package models

import "time"

// JuryEvaluation scores a startup as a whole, unlike DeliverableEvaluation
// which targets a single deliverable.
type JuryEvaluation struct {
	BaseModel

	Score       float64   `gorm:"type:decimal(5,2);not null" json:"score"`
	Comments    string    `json:"comments"`
	EvaluatedAt time.Time `gorm:"autoCreateTime" json:"evaluated_at"`
	StartupID   uint      `gorm:"not null;index" json:"startup_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`

	// Relationships
	Startup Startup `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
