package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DeliverableStatusPending   = "pending"
	DeliverableStatusSubmitted = "submitted"
	DeliverableStatusReviewed  = "reviewed"
)

type Deliverable struct {
	BaseModel

	Title         string         `gorm:"size:100;not null" json:"title"`
	Description   string         `gorm:"not null" json:"description"`
	DueDate       datatypes.Date `gorm:"not null" json:"due_date"`
	SubmissionURL *string        `json:"submission_url"`
	Status        string         `gorm:"size:20;not null;default:pending" json:"status"`
	SubmittedAt   *time.Time     `json:"submitted_at"`
	StageID       uint           `gorm:"not null;index" json:"stage_id"`
	StartupID     uint           `gorm:"not null;index" json:"startup_id"`

	// Relationships
	Stage       Stage                   `gorm:"foreignKey:StageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Startup     Startup                 `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Evaluations []DeliverableEvaluation `gorm:"foreignKey:DeliverableID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// DeliverableEvaluation has no uniqueness constraint: multiple evaluators may
// score the same deliverable.
type DeliverableEvaluation struct {
	BaseModel

	Score         float64   `gorm:"type:decimal(5,2);not null" json:"score"`
	Comments      string    `json:"comments"`
	EvaluatedAt   time.Time `gorm:"autoCreateTime" json:"evaluated_at"`
	DeliverableID uint      `gorm:"not null;index" json:"deliverable_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`

	// Relationships
	Deliverable Deliverable `gorm:"foreignKey:DeliverableID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User        User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
