package telegram

import (
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voxguard/api/internal/session"
	"voxguard/api/internal/voice"
)

// Router wires Telegram updates into the per-chat sessions: voice and audio
// messages go through a detection session, plain text through a
// conversation session. Sessions are independent per chat and per tool.
type Router struct {
	Bot    *tgbotapi.BotAPI
	Engine voice.Engine
	Token  string // bot token, needed to build file download URLs

	HTTPClient *http.Client

	detections  sync.Map // chatID -> *session.Detection
	transcripts sync.Map // chatID -> *session.Transcription
	speeches    sync.Map // chatID -> *session.Speech
	chats       sync.Map // chatID -> *session.Chat

	// apps holds the per-chat active tool: it decides where the next
	// audio message is routed (detector by default, tools after
	// /transcribe).
	apps sync.Map // chatID -> *session.App
}

func (r *Router) app(chatID int64) *session.App {
	if v, ok := r.apps.Load(chatID); ok {
		return v.(*session.App)
	}
	v, _ := r.apps.LoadOrStore(chatID, session.NewApp())
	return v.(*session.App)
}

func (r *Router) httpc() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (r *Router) detection(chatID int64) *session.Detection {
	if v, ok := r.detections.Load(chatID); ok {
		return v.(*session.Detection)
	}
	v, _ := r.detections.LoadOrStore(chatID, session.NewDetection(r.Engine))
	return v.(*session.Detection)
}

func (r *Router) transcription(chatID int64) *session.Transcription {
	if v, ok := r.transcripts.Load(chatID); ok {
		return v.(*session.Transcription)
	}
	v, _ := r.transcripts.LoadOrStore(chatID, session.NewTranscription(r.Engine))
	return v.(*session.Transcription)
}

func (r *Router) speech(chatID int64) *session.Speech {
	if v, ok := r.speeches.Load(chatID); ok {
		return v.(*session.Speech)
	}
	v, _ := r.speeches.LoadOrStore(chatID, session.NewSpeech(r.Engine))
	return v.(*session.Speech)
}

func (r *Router) chat(chatID int64) *session.Chat {
	if v, ok := r.chats.Load(chatID); ok {
		return v.(*session.Chat)
	}
	v, _ := r.chats.LoadOrStore(chatID, session.NewChat(r.Engine))
	return v.(*session.Chat)
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}

	if fileID, name := audioAttachment(upd.Message); fileID != "" {
		r.handleAudio(cid, fileID, name)
		return
	}

	if upd.Message.Text != "" {
		r.handleChat(cid, upd.Message.Text)
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Send a voice note or audio file (MP3/WAV/M4A) and I'll tell you whether the voice is human or AI-generated, with a transcript.\nAnything else you type goes to the VoxGuard assistant.\nCommands: /transcribe, /say <text>, /health, /reset")
	case "health":
		r.send(cid, "✅ OK")
	case "transcribe":
		r.app(cid).SetActive(session.ToolTools)
		r.send(cid, "Send the clip you want transcribed (no authenticity check).")
	case "say":
		r.handleSay(cid, strings.TrimSpace(upd.Message.CommandArguments()))
	case "reset":
		r.detection(cid).Reset()
		r.chats.Delete(cid)
		r.app(cid).SetActive(session.ToolDetector)
		r.send(cid, "Session cleared.")
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) send(chatID int64, text string) {
	_, _ = r.Bot.Send(tgbotapi.NewMessage(chatID, text))
}

// audioAttachment picks the audio payload out of a message, if any.
func audioAttachment(m *tgbotapi.Message) (fileID, name string) {
	if m.Voice != nil {
		return m.Voice.FileID, "voice note"
	}
	if m.Audio != nil {
		n := m.Audio.FileName
		if n == "" {
			n = "audio"
		}
		return m.Audio.FileID, n
	}
	if m.Document != nil && isAudioMIME(m.Document.MimeType) {
		return m.Document.FileID, m.Document.FileName
	}
	return "", ""
}

func isAudioMIME(mime string) bool {
	switch mime {
	case "audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav", "audio/mp4", "audio/m4a", "audio/x-m4a":
		return true
	}
	return false
}
