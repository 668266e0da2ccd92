package config

import (
	"os"
	"strings"
)

// Config is the whole configuration surface, loaded once at startup.
// There is no hot reload.
type Config struct {
	AppEnv string

	TelegramToken string
	WebhookURL    string
	ListenPort    string

	// FIREBASE_SERVICE_ACCOUNT carries the service-account JSON verbatim.
	FirebaseCredentials string
	FirebaseDBURL       string

	// SQLitePath is the local store backend, used when Firebase is not
	// configured.
	SQLitePath string

	// Categories overrides the default registry, comma-separated. Empty
	// means use the built-in list.
	Categories []string
}

func LoadEnv() *Config {
	return &Config{
		AppEnv:              getEnv("APP_ENV", "production"),
		TelegramToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:          getEnv("WEBHOOK_URL", ""),
		ListenPort:          getEnv("PORT", "3000"),
		FirebaseCredentials: getEnv("FIREBASE_SERVICE_ACCOUNT", ""),
		FirebaseDBURL:       getEnv("FIREBASE_DB_URL", ""),
		SQLitePath:          getEnv("SQLITE_PATH", "./topupbot.db"),
		Categories:          getEnvSlice("CATEGORIES", nil),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
