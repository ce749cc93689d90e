package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"voxguard/api/internal/session"
	"voxguard/api/internal/voice"
)

func TestAudioAttachment(t *testing.T) {
	fileID, name := audioAttachment(&tgbotapi.Message{Voice: &tgbotapi.Voice{FileID: "v1"}})
	assert.Equal(t, "v1", fileID)
	assert.Equal(t, "voice note", name)

	fileID, name = audioAttachment(&tgbotapi.Message{Audio: &tgbotapi.Audio{FileID: "a1", FileName: "song.mp3"}})
	assert.Equal(t, "a1", fileID)
	assert.Equal(t, "song.mp3", name)

	fileID, _ = audioAttachment(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "d1", MimeType: "audio/mpeg"}})
	assert.Equal(t, "d1", fileID)

	fileID, _ = audioAttachment(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "d2", MimeType: "application/pdf"}})
	assert.Empty(t, fileID)

	fileID, _ = audioAttachment(&tgbotapi.Message{Text: "hi"})
	assert.Empty(t, fileID)
}

func TestFormatVerdict(t *testing.T) {
	res := voice.DetectionResult{
		Status:          voice.StatusSuccess,
		Language:        voice.LangTelugu,
		Classification:  voice.AIGenerated,
		ConfidenceScore: 0.982,
		Explanation:     "Frame-boundary artifacts.",
		Transcription:   "నమస్కారం",
	}
	out := formatVerdict(session.DetectionSnapshot{Phase: session.PhaseResult, Result: &res})

	assert.Contains(t, out, "🔴 Synthetic AI Voice (98.2% confidence)")
	assert.Contains(t, out, "తెలుగు (Telugu)")
	assert.Contains(t, out, "నమస్కారం")
	assert.Contains(t, out, "Frame-boundary artifacts.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	long := strings.Repeat("x", 50)
	assert.Equal(t, strings.Repeat("x", 10)+"…", truncate(long, 10))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// the emoji prefix misaligns the 3-byte Telugu runes, so a byte-wise
	// cut at maxReplyLen would land mid-rune
	long := "📝 " + strings.Repeat("న", 2000)
	out := truncate(long, maxReplyLen)

	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.LessOrEqual(t, len(out), maxReplyLen+len("…"))

	// boundary cuts stay exact
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("న", 10), 3)))
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("న", 10), 4)))
}

func TestActiveToolRouting(t *testing.T) {
	r := &Router{}
	assert.Equal(t, session.ToolDetector, r.app(1).Active())

	r.app(1).SetActive(session.ToolTools)
	assert.Equal(t, session.ToolTools, r.app(1).Active())
	assert.Equal(t, session.ToolDetector, r.app(2).Active())

	r.app(1).SetActive(session.ToolDetector)
	assert.Equal(t, session.ToolDetector, r.app(1).Active())
}
