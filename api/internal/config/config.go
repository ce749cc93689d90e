package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	GeminiAPIKey   string
	GeminiModel    string
	GeminiTTSModel string

	// APIKey guards the inbound HTTP endpoints (X-API-Key header).
	// Empty disables the check, for local runs.
	APIKey string

	TelegramBotToken string
	WebhookURL       string

	// DatabaseURL enables the detection cache when set.
	DatabaseURL string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey:   mustEnv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTTSModel: getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),

		APIKey: getEnv("VOXGUARD_API_KEY", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}
