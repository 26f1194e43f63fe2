package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	SQLite    SQLiteConfig
	Auth      AuthConfig
	Artifacts ArtifactsConfig
}

type ServerConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLiteConfig struct {
	Path        string
	BusyTimeout int // milliseconds
}

type AuthConfig struct {
	PasswordHash  string // sha256 or bcrypt
	BcryptCost    int
	RememberFile  string
	AdminPassword string
	AdminEmail    string
}

type ArtifactsConfig struct {
	Dir string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		SQLite: SQLiteConfig{
			Path:        getEnv("SQLITE_PATH", "bms.db"),
			BusyTimeout: getEnvInt("SQLITE_BUSY_TIMEOUT", 5000),
		},
		Auth: AuthConfig{
			PasswordHash:  strings.ToLower(getEnv("AUTH_PASSWORD_HASH", "sha256")),
			BcryptCost:    getEnvInt("AUTH_BCRYPT_COST", 10),
			RememberFile:  getEnv("AUTH_REMEMBER_FILE", "credentials.txt"),
			AdminPassword: getEnv("AUTH_ADMIN_PASSWORD", "admin123"),
			AdminEmail:    getEnv("AUTH_ADMIN_EMAIL", "admin@example.com"),
		},
		Artifacts: ArtifactsConfig{
			Dir: getEnv("ARTIFACTS_DIR", "."),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
