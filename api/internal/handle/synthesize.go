package handle

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/voice"
)

type synthesizeResponse struct {
	Status voice.Status `json:"status"`
	// AudioBase64 is a complete WAV file, not the model's raw PCM stream.
	AudioBase64 string `json:"audioBase64"`
	Format      string `json:"format"`
	SampleRate  int    `json:"sampleRate"`
}

// Synthesize handles POST /v1/voice/synthesize: text in, spoken audio out.
func (h *Handle) Synthesize(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r) {
		return
	}
	var req voice.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := requestCtx(r)
	defer cancel()

	res, err := h.Engine.Synthesize(ctx, req)
	if err != nil {
		log.Printf("synthesize: %v", err)
		writeStatusError(w, http.StatusBadGateway)
		return
	}
	wav, err := audio.WrapPCM(res.PCM, res.SampleRate)
	if err != nil {
		log.Printf("synthesize wrap: %v", err)
		writeStatusError(w, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, synthesizeResponse{
		Status:      voice.StatusSuccess,
		AudioBase64: base64.StdEncoding.EncodeToString(wav),
		Format:      "wav",
		SampleRate:  res.SampleRate,
	})
}
