package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ServiceCategory{},
		&models.ProviderProfile{},
		&models.AvailabilityWindow{},
		&models.UnavailableDate{},
		&models.Appointment{},
		&models.AppointmentNote{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.Payment{},
		&models.PortfolioItem{},
		&models.AuditLog{},
	)
}
