package storage

import (
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

var db *gorm.DB

// InitDB opens the SQLite database and migrates the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = gorm.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return Migrate(db)
}

// Migrate creates all required tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserState{},
		&models.Workout{},
		&models.Exercise{},
		&models.ExerciseSet{},
		&models.ConsumedFood{},
	).Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
