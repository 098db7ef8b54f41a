package models

// Role names are fixed reference data, seeded at startup.
const (
	RoleAdmin   = "admin"
	RoleCoach   = "coach"
	RoleMentor  = "mentor"
	RoleTrainer = "trainer"
	RoleStudent = "student"
)

var RoleNames = []string{RoleAdmin, RoleCoach, RoleMentor, RoleTrainer, RoleStudent}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:20;uniqueIndex;not null" json:"name"`
}
