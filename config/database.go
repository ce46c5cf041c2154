package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB() {
	// 1) Prefer a full URL (managed hosts hand out DATABASE_URL)
	dbURL := App.DatabaseURL

	// 2) Otherwise build a DSN from the discrete settings
	if dbURL == "" {
		host := App.DBHost
		if host == "" {
			host = "localhost"
		}
		port := App.DBPort
		if port == "" {
			port = "5432"
		}
		user := App.DBUser
		if user == "" {
			user = "postgres"
		}
		dbname := App.DBName
		if dbname == "" {
			dbname = "backoffice"
		}
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, App.DBPassword, dbname, port,
		)
	} else {
		// Managed hosts usually want sslmode=require; add it if missing
		if !strings.Contains(dbURL, "sslmode=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "sslmode=require"
		}
		// keep tables and the stored procedures in schema public
		if !strings.Contains(dbURL, "search_path=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "search_path=public"
		}
	}

	// 3) Open with a logger so slow queries and errors show up
	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	// 4) Session settings
	if err := db.Exec(`SET search_path TO public`).Error; err != nil {
		log.Printf("⚠️  Failed to set search_path public: %v", err)
	}
	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		log.Printf("⚠️  Failed to set timezone UTC: %v", err)
	}

	// 5) Connection info
	var dbName, currentUser, searchPath string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	_ = db.Raw("SHOW search_path").Scan(&searchPath)
	log.Printf("✅ DB connected: db=%s user=%s search_path=%s", dbName, currentUser, searchPath)

	DB = db
}
