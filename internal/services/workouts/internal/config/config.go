package config

import (
	"log/slog"
	"time"

	"github.com/sjsjaniw/workout-backend/internal/pkg/env"
)

type Config struct {
	AuthSecret string
	DB         dbConfig
	HTTP       httpConfig
	Log        logConfig
}

type dbConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

type httpConfig struct {
	ListenAddr      string
	IdleTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type logConfig struct {
	Level  slog.Level
	Format string
}

// FromEnv reads the configuration from the process environment. It panics
// when a database connection parameter is missing.
func FromEnv() Config {
	return Config{
		AuthSecret: env.String("AUTH_SECRET", ""),
		DB: dbConfig{
			Host:            env.RequireString("DB_HOST"),
			Port:            env.RequireString("DB_PORT"),
			User:            env.RequireString("DB_USER"),
			Password:        env.RequireString("DB_PASSWORD"),
			Name:            env.RequireString("DB_NAME"),
			SSLMode:         env.String("DB_SSLMODE", "disable"),
			MaxOpenConns:    env.Int("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    env.Int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: env.Duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			Migrate:         env.Bool("DB_MIGRATE", true),
		},
		HTTP: httpConfig{
			ListenAddr:      env.String("HTTP_LISTEN_ADDR", ":8080"),
			IdleTimeout:     env.Duration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ReadTimeout:     env.Duration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.Duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: env.Duration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: logConfig{
			Level:  env.Level("LOG_LEVEL", slog.LevelInfo),
			Format: env.String("LOG_FORMAT", "json"),
		},
	}
}
