package handle

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"voxguard/api/internal/voice"
)

type transcribeResponse struct {
	Status voice.Status `json:"status"`
	Text   string       `json:"text"`
}

// Transcribe handles POST /v1/voice/transcribe: transcript only, no
// classification.
func (h *Handle) Transcribe(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r) {
		return
	}
	var req voice.TranscribeRequest
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

	text, err := h.Engine.Transcribe(ctx, req)
	if err != nil {
		log.Printf("transcribe: %v", err)
		writeStatusError(w, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, transcribeResponse{Status: voice.StatusSuccess, Text: text})
}
