package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration for the app.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string

	JWTSecret   string
	AdminSecret string

	SMTPHost  string
	SMTPPort  string
	EmailUser string
	EmailPass string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	GoogleClientID     string
	GoogleClientSecret string
	BaseURL            string
}

var cfg *Config

// Load reads .env (if present) and builds the config. Safe to call more
// than once; the first result wins.
func Load() *Config {
	if cfg != nil {
		return cfg
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment variables directly")
	}

	cfg = &Config{
		Port:        getEnv("PORT", "8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		JWTSecret:   getEnv("JWT_SECRET", "solid_secret_key"),
		AdminSecret: os.Getenv("ADMIN_SECRET"),

		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  getEnv("SMTP_PORT", "587"),
		EmailUser: os.Getenv("EMAIL_USER"),
		EmailPass: os.Getenv("EMAIL_PASS"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8000"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
