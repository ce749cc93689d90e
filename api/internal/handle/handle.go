package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"voxguard/api/internal/store"
	"voxguard/api/internal/voice"
)

// defaultDeadline bounds every remote call. Overridable per request via the
// X-Request-Timeout header or timeoutSec query param.
const defaultDeadline = 120 * time.Second

// DetectCache is the persistence surface Detect needs. *store.DetectRepo
// implements it.
type DetectCache interface {
	FindByHash(ctx context.Context, audioHash, engine, model string, maxAge time.Duration) (*store.DetectionRow, error)
	Upsert(ctx context.Context, audioHash, engine, model string, res voice.DetectionResult) error
}

type Handle struct {
	Engine     voice.Engine
	EngineName string
	Model      string

	// Repo is the optional detection cache; nil disables it.
	Repo DetectCache

	// APIKey, when non-empty, must match the X-API-Key request header.
	APIKey string
}

func New(engine voice.Engine, engineName, model string) *Handle {
	return &Handle{Engine: engine, EngineName: engineName, Model: model}
}

type errorBody struct {
	Status voice.Status `json:"status"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatusError(w http.ResponseWriter, code int) {
	writeJSON(w, code, errorBody{Status: voice.StatusError})
}

// accept rejects anything that is not an authorized POST; returns false
// after replying.
func (h *Handle) accept(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return false
	}
	if h.APIKey != "" && r.Header.Get("X-API-Key") != h.APIKey {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
		return false
	}
	return true
}

func requestCtx(r *http.Request) (context.Context, context.CancelFunc) {
	deadline := defaultDeadline
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	return context.WithTimeout(r.Context(), deadline)
}
