package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL     string
	JWTSecret       string
	AdminSessionTTL time.Duration
	ServerPort      string
	FTPAddr         string
	FTPUser         string
	FTPPassword     string
	PublicBaseURL   string
}

func Load() *Config {
	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/dochadzka"),
		JWTSecret:       getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		AdminSessionTTL: 12 * time.Hour,
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FTPAddr:         getEnv("FTP_ADDR", "localhost:21"),
		FTPUser:         getEnv("FTP_USER", ""),
		FTPPassword:     getEnv("FTP_PASSWORD", ""),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "https://aplikacia.example.sk"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
