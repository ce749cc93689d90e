package handle

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/store"
	"voxguard/api/internal/util"
	"voxguard/api/internal/voice"
)

// cacheMaxAge: a clip's verdict doesn't change, but model upgrades should
// eventually show through.
const cacheMaxAge = 30 * 24 * time.Hour

// Detect handles POST /v1/voice/detect: combined language detection,
// authenticity classification and transcription of one audio clip.
func (h *Handle) Detect(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r) {
		return
	}
	var req voice.DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.AudioBase64) == "" {
		http.Error(w, "audioBase64 is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestCtx(r)
	defer cancel()

	// cache by content hash: same clip, same model, same verdict
	var hash string
	if h.Repo != nil {
		if clip, _, err := audio.DecodeBase64MaybeDataURL(req.AudioBase64); err == nil {
			hash = util.SHA256Hex(clip)
			row, err := h.Repo.FindByHash(ctx, hash, h.EngineName, h.Model, cacheMaxAge)
			if err == nil {
				writeJSON(w, http.StatusOK, row.Result)
				return
			}
			if err != store.ErrNotFound {
				log.Printf("detect cache lookup: %v", err)
			}
		}
	}

	out, err := h.Engine.DetectVoice(ctx, req)
	if err != nil {
		log.Printf("detect: %v", err)
		writeStatusError(w, http.StatusBadGateway)
		return
	}

	if h.Repo != nil && hash != "" {
		if err := h.Repo.Upsert(ctx, hash, h.EngineName, h.Model, out); err != nil {
			log.Printf("detect cache upsert: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, out)
}
