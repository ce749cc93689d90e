package voice

import "context"

// Language is the closed set of locales the service detects and transcribes.
type Language string

const (
	LangEnglish   Language = "English"
	LangTamil     Language = "Tamil"
	LangHindi     Language = "Hindi"
	LangMalayalam Language = "Malayalam"
	LangTelugu    Language = "Telugu"
)

// LanguageLabels — native-script display names.
var LanguageLabels = map[Language]string{
	LangEnglish:   "English",
	LangTamil:     "தமிழ் (Tamil)",
	LangHindi:     "हिंदी (Hindi)",
	LangMalayalam: "മലയാളം (Malayalam)",
	LangTelugu:    "తెలుగు (Telugu)",
}

func (l Language) Valid() bool {
	_, ok := LanguageLabels[l]
	return ok
}

// Classification is produced only by the remote classifier, never locally.
type Classification string

const (
	AIGenerated Classification = "AI_GENERATED"
	Human       Classification = "HUMAN"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// DetectRequest is the wire shape of a detect call. Language is a documented
// hint the service accepts; this client leaves it empty and lets the service
// self-detect.
type DetectRequest struct {
	AudioBase64 string `json:"audioBase64"`
	AudioFormat string `json:"audioFormat"` // "mp3" | "wav" | "m4a"
	Language    string `json:"language,omitempty"`
}

// DetectionResult is one completed analysis. When Status is "error" the
// remaining fields carry no data and must not be rendered.
type DetectionResult struct {
	Status          Status         `json:"status"`
	Language        Language       `json:"language"`
	Classification  Classification `json:"classification"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Explanation     string         `json:"explanation"`
	Transcription   string         `json:"transcription"`
}

type TranscribeRequest struct {
	AudioBase64 string `json:"audioBase64"`
	AudioFormat string `json:"audioFormat"`
}

type SynthesizeRequest struct {
	Text string `json:"text"`
}

// SpeechResult is raw PCM16 mono audio straight from the synthesis model.
// It is not a container file; wrap it (audio.WrapPCM) before handing it to
// anything that expects one.
type SpeechResult struct {
	PCM        []byte
	SampleRate int
}

// Turn roles. The assistant role serializes as "model" — the role name the
// remote service uses.
const (
	RoleUser      = "user"
	RoleAssistant = "model"
)

// Turn is one message in a conversation, append-only once recorded.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Engine is a remote voice-analysis backend. All four operations are
// single-shot and idempotent; timeout policy belongs to the caller's ctx.
type Engine interface {
	DetectVoice(ctx context.Context, in DetectRequest) (DetectionResult, error)
	Transcribe(ctx context.Context, in TranscribeRequest) (string, error)
	Synthesize(ctx context.Context, in SynthesizeRequest) (SpeechResult, error)
	Chat(ctx context.Context, message string, history []Turn) (string, error)
}

// Clamp01 bounds a confidence score before display. The service promises
// [0,1] but the promise is theirs, not ours.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
