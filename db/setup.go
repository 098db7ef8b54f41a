package db

import (
	"github.com/ensia-dev/incubator/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	entities := []interface{}{
		&models.Role{},
		&models.User{},
		&models.Stage{},
		&models.Startup{},
		&models.TeamMember{},
		&models.Application{},
		&models.ApplicationVote{},
		&models.ApplicationScore{},
		&models.Deliverable{},
		&models.DeliverableEvaluation{},
		&models.Resource{},
		&models.ResourceRequest{},
		&models.ResourceAllocation{},
		&models.Event{},
		&models.JuryEvaluation{},
		&models.FileMetadata{},
		&models.Notification{},
		&models.IncubationForm{},
		&models.IncubationFormScore{},
	}

	migrator := DB.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := DB.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedRoles inserts the fixed role reference data. Idempotent.
func SeedRoles() error {
	for _, name := range models.RoleNames {
		role := models.Role{Name: name}
		if err := DB.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
