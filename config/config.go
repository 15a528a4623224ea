package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAccessExpire  = 15 * time.Minute
	defaultRefreshExpire = 7 * 24 * time.Hour
)

type Config struct {
	ServerPort int
	Env        string
	Database   DatabaseConfig
	JWT        JWTConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type JWTConfig struct {
	AccessSecret  string
	AccessExpire  time.Duration
	RefreshSecret string
	RefreshExpire time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "authgate"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "authgate_db"),
		UseSSL:   getEnvBool("DB_SSL", false),
	}

	jwtConfig := JWTConfig{
		AccessSecret:  getEnv("JWT_SECRET", ""),
		AccessExpire:  getEnvDuration("JWT_EXPIRE", defaultAccessExpire),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
		RefreshExpire: getEnvDuration("JWT_REFRESH_EXPIRE", defaultRefreshExpire),
	}

	return Config{
		ServerPort: getEnvInt("PORT", 5000),
		Env:        getEnv("ENV", "production"),
		Database:   dbConfig,
		JWT:        jwtConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		return valueStr == "true" || valueStr == "1"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
