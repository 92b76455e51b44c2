package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/models"
)

var db_ *gorm.DB

// Connect establishes a connection to the database and migrates the schema.
func Connect() {
	dsn := config.DatabaseURL()

	logLevel := logger.Warn
	if config.Debug() {
		logLevel = logger.Info
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logLevel,
			Colorful:      false,
		},
	)

	var err error
	db_, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db_.AutoMigrate(
		&models.ShortsScript{},
		&models.LivePlan{},
		&models.StorageFile{},
		&models.ScheduledPost{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func GetDB() *gorm.DB {
	return db_
}

// SetDB swaps the handle, used by tests running against sqlite or a stub.
func SetDB(d *gorm.DB) {
	db_ = d
}
