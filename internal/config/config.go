package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	ServerPort       string
	SessionSecret    string
	LogLevel         string
	ListDeletePolicy string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "doit_user"),
		DBPassword:       getEnv("DB_PASSWORD", "doit_pass"),
		DBName:           getEnv("DB_NAME", "doit_db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		SessionSecret:    getEnv("SESSION_SECRET", "supersecretkey"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ListDeletePolicy: getEnv("LIST_DELETE_POLICY", "cascade"),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
