package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/suttley13/burn2earn-backend/models"
)

// Config holds everything read from the environment at startup. A missing
// required value is fatal: the process must not come up with a collaborator
// it cannot reach.
type Config struct {
	DatabaseDSN  string
	GeminiAPIKey string
	S3Bucket     string // empty disables photo archival
	S3Region     string
	Port         string
}

func Load() *Config {
	// .env is a dev convenience; in production the vars come from the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     os.Getenv("S3_REGION"),
		Port:         os.Getenv("PORT"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.S3Region == "" {
		cfg.S3Region = os.Getenv("AWS_REGION")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatalf("GEMINI_API_KEY is required")
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseDSN = dsn
		return cfg
	}
	for _, v := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT"} {
		if os.Getenv(v) == "" {
			log.Fatalf("%s is required (or set DATABASE_URL)", v)
		}
	}
	cfg.DatabaseDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	return cfg
}

// InitDB opens the Postgres connection and migrates the schema. The returned
// handle is shared by all requests for the life of the process.
func InitDB(cfg *Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.FoodLog{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	return db
}
