package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/util"
	"voxguard/api/internal/voice"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TTSSampleRate is the fixed output rate of the synthesis model: 24kHz
// PCM16 mono, headerless.
const TTSSampleRate = 24000

const maxAttempts = 3

type Engine struct {
	APIKey   string
	Model    string
	TTSModel string
}

func New(apiKey, model, ttsModel string) *Engine {
	return &Engine{
		APIKey:   strings.TrimSpace(apiKey),
		Model:    strings.TrimSpace(model),
		TTSModel: strings.TrimSpace(ttsModel),
	}
}

func (e *Engine) Name() string { return "gemini" }

// --------------------------- DETECT ---------------------------

const detectSystem = `You are a forensic voice-authenticity analyst. You receive one audio clip
in English, Tamil, Hindi, Malayalam or Telugu.
Tasks, all mandatory:
1) Detect the spoken language (one of the five above).
2) Classify the voice as AI_GENERATED or HUMAN, judging prosody, breath
   noise, spectral artifacts and phase continuity.
3) Transcribe the audio fully in its original script.
4) Explain the verdict in two or three plain sentences.
Output STRICTLY this JSON, nothing else:
{"status":"success","language":"...","classification":"AI_GENERATED|HUMAN","confidenceScore":0.0,"explanation":"...","transcription":"..."}
confidenceScore is your confidence in the classification, in [0,1].
If the clip is unusable, output {"status":"error"}.`

func (e *Engine) DetectVoice(ctx context.Context, in voice.DetectRequest) (voice.DetectionResult, error) {
	if e.APIKey == "" {
		return voice.DetectionResult{}, errors.New("GEMINI_API_KEY is empty")
	}
	if strings.TrimSpace(in.AudioBase64) == "" {
		return voice.DetectionResult{}, errors.New("gemini detect: empty audio payload")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return voice.DetectionResult{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(detectSystem)},
	}

	clip, mimeHint, err := audio.DecodeBase64MaybeDataURL(in.AudioBase64)
	if err != nil {
		return voice.DetectionResult{}, fmt.Errorf("gemini detect: bad base64: %w", err)
	}
	mime := pickMIME(in.AudioFormat, mimeHint, clip)

	parts := []genai.Part{
		genai.Text("Analyze this recording. Reply with the JSON only."),
		genai.Blob{MIMEType: mime, Data: clip},
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(retryDelay(attempt))
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return voice.DetectionResult{}, fmt.Errorf("gemini detect: empty response")
		}
		txt = util.StripCodeFences(txt)

		var out voice.DetectionResult
		if err := json.Unmarshal([]byte(txt), &out); err != nil {
			return voice.DetectionResult{}, fmt.Errorf("gemini detect: bad JSON: %w", err)
		}
		if out.Status != voice.StatusSuccess {
			return voice.DetectionResult{}, fmt.Errorf("gemini detect: remote status %q", out.Status)
		}
		if out.Classification != voice.AIGenerated && out.Classification != voice.Human {
			return voice.DetectionResult{}, fmt.Errorf("gemini detect: unknown classification %q", out.Classification)
		}
		if !out.Language.Valid() {
			return voice.DetectionResult{}, fmt.Errorf("gemini detect: unknown language %q", out.Language)
		}
		out.ConfidenceScore = voice.Clamp01(out.ConfidenceScore)
		return out, nil
	}
	return voice.DetectionResult{}, lastErr
}

// --------------------------- TRANSCRIBE ---------------------------

const transcribeSystem = `Transcribe the audio exactly, in its original script. The clip is in
English, Tamil, Hindi, Malayalam or Telugu. Output the transcript text only:
no labels, no commentary, no code fences.`

func (e *Engine) Transcribe(ctx context.Context, in voice.TranscribeRequest) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	if strings.TrimSpace(in.AudioBase64) == "" {
		return "", errors.New("gemini transcribe: empty audio payload")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{Temperature: ptrFloat32(0)}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(transcribeSystem)},
	}

	clip, mimeHint, err := audio.DecodeBase64MaybeDataURL(in.AudioBase64)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: bad base64: %w", err)
	}
	mime := pickMIME(in.AudioFormat, mimeHint, clip)

	parts := []genai.Part{
		genai.Text("Transcribe this recording."),
		genai.Blob{MIMEType: mime, Data: clip},
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(retryDelay(attempt))
			continue
		}
		txt := strings.TrimSpace(firstText(resp))
		if txt == "" {
			return "", fmt.Errorf("gemini transcribe: empty response")
		}
		return util.StripCodeFences(txt), nil
	}
	return "", lastErr
}

// --------------------------- SYNTHESIZE ---------------------------

func (e *Engine) Synthesize(ctx context.Context, in voice.SynthesizeRequest) (voice.SpeechResult, error) {
	if e.APIKey == "" {
		return voice.SpeechResult{}, errors.New("GEMINI_API_KEY is empty")
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return voice.SpeechResult{}, errors.New("gemini synthesize: empty text")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return voice.SpeechResult{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.TTSModel)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(text))
		if err != nil {
			lastErr = err
			time.Sleep(retryDelay(attempt))
			continue
		}
		pcm := firstBlob(resp)
		if len(pcm) == 0 {
			return voice.SpeechResult{}, fmt.Errorf("gemini synthesize: no audio in response")
		}
		return voice.SpeechResult{PCM: pcm, SampleRate: TTSSampleRate}, nil
	}
	return voice.SpeechResult{}, lastErr
}

// --------------------------- CHAT ---------------------------

const chatSystem = `You are VoxGuard AI, an assistant specialized in AI voice detection,
deepfake audio, voice cloning scams and related cybersecurity topics.
Answer concisely and practically. Stay on topic.`

// Chat sends one user message with the full prior turn sequence as context.
// The history slice is never mutated; appending both new turns is the
// caller's job.
func (e *Engine) Chat(ctx context.Context, message string, history []voice.Turn) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("gemini chat: empty message")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(chatSystem)},
	}

	cs := m.StartChat()
	cs.History = make([]*genai.Content, 0, len(history))
	for _, t := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  t.Role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := cs.SendMessage(ctx, genai.Text(message))
		if err != nil {
			lastErr = err
			time.Sleep(retryDelay(attempt))
			continue
		}
		return strings.TrimSpace(firstText(resp)), nil
	}
	return "", lastErr
}

// --------------------------- helpers ---------------------------

// retryDelay backs off linearly between attempts; zero after the last one,
// so a final failure returns without sleeping.
func retryDelay(attempt int) time.Duration {
	if attempt >= maxAttempts {
		return 0
	}
	return time.Duration(attempt) * 300 * time.Millisecond
}

func pickMIME(declared, hint string, data []byte) string {
	if f, err := audio.ParseFormat(declared); err == nil {
		return f.MIMEType()
	}
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	return audio.SniffFormat(data).MIMEType()
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func firstBlob(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if b, ok := p.(genai.Blob); ok && len(b.Data) > 0 {
				return b.Data
			}
		}
	}
	return nil
}

func ptrFloat32(v float32) *float32 { return &v }
