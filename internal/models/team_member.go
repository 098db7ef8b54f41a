package models

// TeamLeaderRole is the distinguished role label a startup may assign to at
// most one member.
const TeamLeaderRole = "Team Leader"

type TeamMember struct {
	BaseModel

	RoleInTeam string `gorm:"size:50;not null" json:"role_in_team"`
	StartupID  uint   `gorm:"not null;uniqueIndex:idx_team_members_startup_user" json:"startup_id"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_team_members_startup_user" json:"user_id"`

	// Relationships
	Startup Startup `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
