package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wayfarer-app/wayfarer-backend/config"
)

// DB is the shared handle the route wiring builds repositories from.
// Assigned once by Connect at boot.
var DB *gorm.DB

// Connect opens the Postgres connection and returns the shared *gorm.DB
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db := open(postgres.Open(dsn))
	log.Println("✅ Database connected")
	return db
}

func open(dialector gorm.Dialector) *gorm.DB {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to database: %v", err))
	}
	DB = db
	return db
}
