package handle

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"voxguard/api/internal/voice"
)

type chatRequest struct {
	Message string       `json:"message"`
	History []voice.Turn `json:"history"`
}

type chatResponse struct {
	Status voice.Status `json:"status"`
	Reply  string       `json:"reply"`
}

// Chat handles POST /v1/voice/chat: one user message plus the full prior
// turn sequence, one assistant reply back. The endpoint is stateless; the
// caller owns the history.
func (h *Handle) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r) {
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestCtx(r)
	defer cancel()

	reply, err := h.Engine.Chat(ctx, req.Message, req.History)
	if err != nil {
		log.Printf("chat: %v", err)
		writeStatusError(w, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Status: voice.StatusSuccess, Reply: reply})
}
