package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sms_backend/internals/configs"
	academicsModel "sms_backend/internals/features/academics/model"
)

var DB *gorm.DB

// ConnectDB opens PostgreSQL when a DSN is configured, SQLite otherwise,
// then migrates the schema. Any failure is fatal at start-up.
func ConnectDB() {
	var (
		db  *gorm.DB
		err error
	)
	if configs.DatabaseURL != "" {
		log.Println("[INFO] connecting to PostgreSQL...")
		db, err = OpenPostgres(configs.DatabaseURL)
	} else {
		log.Printf("[INFO] opening SQLite database %s...", configs.SQLitePath)
		db, err = OpenSQLite(configs.SQLitePath)
	}
	if err != nil {
		log.Fatalf("[ERROR] database connection failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	}
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer friendly
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	tunePool(db, 20, 10)
	return db, nil
}

// OpenSQLite opens a file (or ":memory:") database with foreign keys enabled.
// SQLite gets a single connection so in-memory databases stay shared and
// writers never contend.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if path == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	tunePool(db, 1, 1)
	return db, nil
}

func tunePool(db *gorm.DB, maxOpen, maxIdle int) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	// a recycled SQLite connection would drop an in-memory database
	if maxOpen > 1 {
		sqlDB.SetConnMaxIdleTime(60 * time.Second)
		sqlDB.SetConnMaxLifetime(10 * time.Minute)
	}
}

// Migrate creates or updates the tables, including the ON DELETE CASCADE foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&academicsModel.StudentModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.EnrollmentModel{},
		&academicsModel.GradeModel{},
	)
}

// Close releases the pool. Safe to call when ConnectDB never ran.
func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
