package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Workflow  WorkflowConfig
	Reference ReferenceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// WorkflowConfig tunes the approval workflow.
type WorkflowConfig struct {
	// HardBlockOnActive makes the consistency check a hard failure: an
	// approval on a lead with other actively engaged merchants is refused
	// and the application stays pending. When false the approval proceeds
	// with a recorded warning.
	HardBlockOnActive bool

	// BasicDays is the cancellation window counted from delivery.
	BasicDays int

	// Timezone is the business timezone deadlines are computed in.
	Timezone string

	// RepairTopic is the in-process queue for cascade repair messages.
	RepairTopic string
}

// ReferenceConfig tunes reference-data caching.
type ReferenceConfig struct {
	// ReasonCacheTTLSeconds bounds how stale reason thresholds may be.
	ReasonCacheTTLSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Kuraberu Lead Desk"),
		},
		Workflow: WorkflowConfig{
			HardBlockOnActive: getEnvAsBool("WORKFLOW_HARD_BLOCK_ON_ACTIVE", false),
			BasicDays:         getEnvAsInt("WORKFLOW_BASIC_DEADLINE_DAYS", 7),
			Timezone:          getEnv("WORKFLOW_TIMEZONE", "Asia/Tokyo"),
			RepairTopic:       getEnv("CASCADE_REPAIR_TOPIC_NAME", "CASCADE_REPAIR"),
		},
		Reference: ReferenceConfig{
			ReasonCacheTTLSeconds: getEnvAsInt("REASON_CACHE_TTL_SECONDS", 300),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
