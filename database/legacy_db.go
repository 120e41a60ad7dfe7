package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"fleetrental/config"
)

// LegacyDB is the global database instance for raw SQL operations. The
// reporting queries (inspection statistics, dashboard aggregates) run on it
// instead of going through the ORM.
var LegacyDB *sql.DB

// InitLegacyDB initializes the raw SQL database connection
func InitLegacyDB() error {
	var err error

	switch config.AppConfig.DBDriver {
	case "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		var connStr string

		if dbURL != "" {
			// Use the DATABASE_URL directly
			connStr = dbURL
			log.Println("Using DATABASE_URL environment variable for raw SQL connection")
		} else {
			connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				config.AppConfig.DBHost,
				config.AppConfig.DBPort,
				config.AppConfig.DBUser,
				config.AppConfig.DBPassword,
				config.AppConfig.DBName)

			log.Printf("Connecting raw SQL handle to PostgreSQL at host=%s port=%s dbname=%s",
				config.AppConfig.DBHost,
				config.AppConfig.DBPort,
				config.AppConfig.DBName)
		}

		LegacyDB, err = sql.Open("postgres", connStr)
		if err != nil {
			log.Printf("Failed to connect raw SQL handle to PostgreSQL: %v", err)
			return err
		}

	case "sqlite", "sqlite3":
		dbDir := filepath.Dir(config.AppConfig.DBPath)
		if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
			log.Printf("Failed to create directory for SQLite database: %v", err)
			return err
		}

		LegacyDB, err = sql.Open("sqlite3", config.AppConfig.DBPath)
		if err != nil {
			log.Printf("Failed to connect raw SQL handle to SQLite: %v", err)
			return err
		}

		// Enable foreign key constraints for SQLite
		if _, err = LegacyDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			log.Printf("Failed to enable foreign keys in SQLite: %v", err)
			return err
		}

	default:
		return fmt.Errorf("unsupported database driver: %s", config.AppConfig.DBDriver)
	}

	// Test the connection
	if err = LegacyDB.Ping(); err != nil {
		log.Printf("Failed to ping raw SQL database: %v", err)
		return err
	}

	return nil
}

// CloseLegacyDB closes the raw SQL database connection
func CloseLegacyDB() error {
	if LegacyDB != nil {
		return LegacyDB.Close()
	}
	return nil
}
