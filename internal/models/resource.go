package models

import "time"

type Resource struct {
	BaseModel

	Type              string `gorm:"size:50;not null" json:"type"`
	Name              string `gorm:"size:100;not null" json:"name"`
	Description       string `json:"description"`
	QuantityAvailable int    `gorm:"not null;check:chk_resources_quantity,quantity_available >= 0" json:"quantity_available"`

	// Relationships
	Requests []ResourceRequest `gorm:"foreignKey:ResourceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type ResourceRequest struct {
	BaseModel

	QuantityRequested int       `gorm:"not null" json:"quantity_requested"`
	Status            string    `gorm:"size:20;not null;default:pending" json:"status"`
	RequestedAt       time.Time `gorm:"autoCreateTime" json:"requested_at"`
	StartupID         uint      `gorm:"not null;index" json:"startup_id"`
	ResourceID        uint      `gorm:"not null;index" json:"resource_id"`
	UserID            *uint     `gorm:"index" json:"user_id"`

	// Relationships
	Startup     Startup              `gorm:"foreignKey:StartupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Resource    Resource             `gorm:"foreignKey:ResourceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User        *User                `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Allocations []ResourceAllocation `gorm:"foreignKey:RequestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type ResourceAllocation struct {
	BaseModel

	AllocatedQuantity int       `gorm:"not null" json:"allocated_quantity"`
	AllocatedAt       time.Time `gorm:"autoCreateTime" json:"allocated_at"`
	RequestID         uint      `gorm:"not null;index" json:"request_id"`

	// Relationships
	Request ResourceRequest `gorm:"foreignKey:RequestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
