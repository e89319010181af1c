package db

import (
	"github.com/internhub-dev/internhub/internal/models"
	"github.com/internhub-dev/internhub/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	tables := []interface{}{
		&models.User{},
		&models.InternProfile{},
		&models.OrganizationProfile{},
		&models.Internship{},
		&models.Task{},
		&models.Resource{},
		&models.Application{},
		&models.TaskSubmission{},
		&models.TaskEvaluation{},
	}

	for _, table := range tables {
		if err := DB.AutoMigrate(table); err != nil {
			return err
		}
	}

	// One live (non-withdrawn) application per intern per internship.
	// AutoMigrate cannot express a partial index, and the check must live in
	// the database so concurrent creates cannot both pass it.
	return DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_live_application
		 ON applications (intern_profile_id, internship_id)
		 WHERE status <> 'WITHDRAWN'`,
	).Error
}

// SeedAdmin ensures the configured admin account exists. Admins are never
// created through registration.
func SeedAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return DB.Create(&models.User{
		Name:         "Platform Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         types.RoleAdmin,
	}).Error
}
