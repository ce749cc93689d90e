package telegram

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/report"
	"voxguard/api/internal/session"
	"voxguard/api/internal/voice"
)

const maxReplyLen = 3900

func (r *Router) handleAudio(chatID int64, fileID, name string) {
	app := r.app(chatID)
	transcribeOnly := app.Active() == session.ToolTools
	app.SetActive(session.ToolDetector)

	if transcribeOnly {
		r.send(chatID, "Got the recording, transcribing…")
	} else {
		r.send(chatID, "Got the recording, running forensic analysis…")
	}

	tf, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		r.send(chatID, "Couldn't fetch that file: "+err.Error())
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Token, tf.FilePath)
	clip, err := r.download(url)
	if err != nil {
		r.send(chatID, "Couldn't download the recording: "+err.Error())
		return
	}

	if transcribeOnly {
		r.runTranscription(chatID, clip)
		return
	}

	sess := r.detection(chatID)
	sess.SelectFile(name, clip, audio.SniffFormat(clip))
	sess.Analyze(context.Background())

	snap := sess.Snapshot()
	switch snap.Phase {
	case session.PhaseResult:
		r.send(chatID, formatVerdict(snap))
	case session.PhaseError:
		r.send(chatID, "Analysis failed. Please try again with another recording.")
	default:
		// another file arrived mid-flight and superseded this attempt
	}
}

func (r *Router) runTranscription(chatID int64, clip []byte) {
	sess := r.transcription(chatID)
	sess.SubmitFile(context.Background(), clip, audio.SniffFormat(clip))

	snap := sess.Snapshot()
	if snap.Phase != session.PhaseTranscribed {
		r.send(chatID, "Transcription failed. Please try again with another recording.")
		return
	}
	r.send(chatID, truncate("📝 "+snap.Text, maxReplyLen))
}

func (r *Router) handleSay(chatID int64, text string) {
	if text == "" {
		r.send(chatID, "Usage: /say <text to synthesize>")
		return
	}
	r.send(chatID, "Synthesizing…")

	sess := r.speech(chatID)
	sess.Synthesize(context.Background(), text)

	snap := sess.Snapshot()
	if snap.Phase != session.PhaseReady {
		r.send(chatID, "Speech generation failed. Please try again later.")
		return
	}
	msg := tgbotapi.NewAudio(chatID, tgbotapi.FileBytes{Name: "speech.wav", Bytes: snap.WAV})
	if _, err := r.Bot.Send(msg); err != nil {
		r.send(chatID, "Couldn't deliver the audio: "+err.Error())
	}
}

func (r *Router) handleChat(chatID int64, text string) {
	sess := r.chat(chatID)
	before := len(sess.Turns())
	sess.Send(context.Background(), text)

	turns := sess.Turns()
	if len(turns) == before {
		// rejected: empty input or a reply already composing
		return
	}
	last := turns[len(turns)-1]
	r.send(chatID, truncate(last.Text, maxReplyLen))
}

func formatVerdict(snap session.DetectionSnapshot) string {
	rep := report.Project(*snap.Result)

	icon := "🟢"
	if snap.Result.Classification == voice.AIGenerated {
		icon = "🔴"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s confidence)\n", icon, rep.Verdict, rep.PercentFine)
	fmt.Fprintf(&b, "Language: %s\n\n", rep.LanguageLabel)
	fmt.Fprintf(&b, "📝 Transcript:\n%s\n\n", rep.Transcription)
	fmt.Fprintf(&b, "🔍 %s", rep.Explanation)
	return truncate(b.String(), maxReplyLen)
}

func (r *Router) download(url string) ([]byte, error) {
	resp, err := r.httpc().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// truncate cuts s to at most n bytes on a rune boundary. Telegram rejects
// messages carrying invalid UTF-8, so a byte-wise cut must never split a
// multibyte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
