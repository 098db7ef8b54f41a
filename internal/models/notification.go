package models

type Notification struct {
	BaseModel

	Type    string `gorm:"size:50;not null" json:"type"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
