// Package config loads the service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full service configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Game     GameConfig
	Log      LogConfig
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port     int
	GinMode  string
	RepoType string // "memory" or "postgres"
}

// DatabaseConfig configures the postgres connection
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig configures the optional snapshot sink
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// GameConfig configures the round timing
type GameConfig struct {
	BetWindow    time.Duration
	SpinTime     time.Duration
	TickInterval time.Duration
}

// LogConfig configures logging
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:     getEnvInt("SERVER_PORT", 8080),
			GinMode:  getEnv("GIN_MODE", "release"),
			RepoType: getEnv("REPO_TYPE", "memory"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "roulette"),
			Password: getEnv("DB_PASSWORD", "roulette"),
			Name:     getEnv("DB_NAME", "roulette"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Game: GameConfig{
			BetWindow:    time.Duration(getEnvInt("GAME_BET_WINDOW_SECONDS", 30)) * time.Second,
			SpinTime:     time.Duration(getEnvInt("GAME_SPIN_SECONDS", 5)) * time.Second,
			TickInterval: time.Duration(getEnvInt("GAME_TICK_SECONDS", 10)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			File:   getEnv("LOG_FILE", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
