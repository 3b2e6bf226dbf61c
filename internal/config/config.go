package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	DatabaseURL string
	JWTSecret   string
	JWTExpire   int // hours
	FrontendURL string

	UploadDir string

	PayMongoAPIKey string

	AudioMatchURL    string
	AudioMatchAPIKey string

	ResendAPIKey string
	MailFrom     string

	FirebaseCredentials string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=tunespace port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		JWTExpire:   getEnvInt("JWT_EXPIRE_HOURS", 24),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		PayMongoAPIKey: getEnv("PAYMONGO_API_KEY", ""),

		AudioMatchURL:    getEnv("AUDIOMATCH_URL", ""),
		AudioMatchAPIKey: getEnv("AUDIOMATCH_API_KEY", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		MailFrom:     getEnv("MAIL_FROM", "noreply@tunespace.app"),

		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
