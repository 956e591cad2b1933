package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	ServerPort  string
	DatabaseDSN string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	RedisURL      string
	CloudinaryUrl string

	AccessSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AllowedEmailDomain string

	FrontendURL string
	CorsOrigins string

	AdminEmail    string
	AdminPassword string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	cfg := Config{
		Env:                os.Getenv("ENV"),
		ServerPort:         getenv("SERVER_PORT", ":8000"),
		DatabaseDSN:        os.Getenv("DATABASE_DSN"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaTopic:         getenv("KAFKA_TOPIC", "coffee-chat-notifications"),
		KafkaUsername:      os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:      os.Getenv("KAFKA_PASSWORD"),
		RedisURL:           os.Getenv("REDIS_URL"),
		CloudinaryUrl:      os.Getenv("CLOUDINARY_URL"),
		AccessSecret:       os.Getenv("JWT_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		AllowedEmailDomain: getenv("ALLOWED_EMAIL_DOMAIN", "berkeley.edu"),
		FrontendURL:        strings.TrimRight(os.Getenv("FRONTEND_URL"), "/"),
		CorsOrigins:        getenv("CORS_ORIGINS", "http://localhost:5173"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.AccessSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
