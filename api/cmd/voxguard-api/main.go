package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"voxguard/api/internal/config"
	"voxguard/api/internal/handle"
	"voxguard/api/internal/httpserver"
	"voxguard/api/internal/store"
	"voxguard/api/internal/voice/gemini"
)

func main() {
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	engine := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTTSModel)

	h := handle.New(engine, engine.Name(), cfg.GeminiModel)
	h.APIKey = cfg.APIKey

	// optional detection cache
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		log.Printf("detection cache enabled")
		h.Repo = store.NewDetectRepo(db)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/voice/detect", h.Detect)
	mux.HandleFunc("/v1/voice/transcribe", h.Transcribe)
	mux.HandleFunc("/v1/voice/synthesize", h.Synthesize)
	mux.HandleFunc("/v1/voice/chat", h.Chat)

	addr := ":" + cfg.Port
	log.Printf("voxguard-api starting (model=%s tts=%s)", cfg.GeminiModel, cfg.GeminiTTSModel)
	log.Fatal(httpserver.StartHTTP(addr, mux))
}
