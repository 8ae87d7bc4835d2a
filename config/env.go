package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Port              string
	JWTSecret         string
	JWTExpiry         string
	UploadDir         string
	MaxUploadSize     int64
	AdminCheckTimeout time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	adminTimeout, err := time.ParseDuration(getEnv("ADMIN_CHECK_TIMEOUT", "3s"))
	if err != nil {
		adminTimeout = 3 * time.Second
	}

	AppConfig = &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", getEnv("PORT", "8082")),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTExpiry:         getEnv("JWT_EXPIRY", "24h"),
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:     maxUploadSize,
		AdminCheckTimeout: adminTimeout,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
