package models

import "time"

// FileMetadata records a reference to a file held by the external storage
// provider. Each row is linked to exactly one of a deliverable or an
// application, enforced both in the validation layer and by the check
// constraint below.
type FileMetadata struct {
	BaseModel

	DriveFileID   string    `gorm:"size:255;not null" json:"drive_file_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	URL           string    `gorm:"not null" json:"url"`
	FileType      string    `gorm:"size:50;not null" json:"file_type"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
	DeliverableID *uint     `gorm:"index;check:chk_file_metadata_linkage,(deliverable_id IS NULL) <> (application_id IS NULL)" json:"deliverable_id"`
	ApplicationID *uint     `gorm:"index" json:"application_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`

	// Relationships
	Deliverable *Deliverable `gorm:"foreignKey:DeliverableID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Application *Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	User        User         `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (FileMetadata) TableName() string {
	return "file_metadata"
}
