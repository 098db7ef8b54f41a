package models

// Startup, application, deliverable and resource-request statuses share the
// same pending/approved/rejected vocabulary.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Startup struct {
	BaseModel

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `json:"description"`
	Status      string `gorm:"size:20;not null;default:pending" json:"status"`
	UserID      *uint  `gorm:"index" json:"user_id"`
	StageID     *uint  `gorm:"index" json:"stage_id"`

	// Relationships
	User            *User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Stage           *Stage           `gorm:"foreignKey:StageID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	TeamMembers     []TeamMember     `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Applications    []Application    `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Deliverables    []Deliverable    `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	JuryEvaluations []JuryEvaluation `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
