package models

type User struct {
	BaseModel

	FullName     string `gorm:"size:30;not null" json:"full_name"`
	Email        string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	RoleID       uint   `gorm:"not null;index" json:"role_id"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`

	// Relationships
	Role             Role              `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"role"`
	TeamMemberships  []TeamMember      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Events           []Event           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Notifications    []Notification    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ResourceRequests []ResourceRequest `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
