package session

import (
	"context"
	"strings"
	"sync"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/voice"
)

const (
	PhaseTranscribing Phase = "transcribing"
	PhaseTranscribed  Phase = "transcribed"
	PhaseSynthesizing Phase = "synthesizing"
	PhaseReady        Phase = "ready"
	PhaseFailed       Phase = "failed"
)

// Transcription is the ad-hoc transcription tool. Unlike Detection it has
// no separate confirm step: submitting a file starts the request at once.
type Transcription struct {
	engine voice.Engine

	mu      sync.Mutex
	phase   Phase
	text    string
	errMsg  string
	attempt uint64
}

type TranscriptionSnapshot struct {
	Phase Phase
	Text  string
	Err   string
}

func NewTranscription(engine voice.Engine) *Transcription {
	return &Transcription{engine: engine, phase: PhaseIdle}
}

// SubmitFile encodes and transcribes the clip immediately. No-op while a
// request is in flight.
func (t *Transcription) SubmitFile(ctx context.Context, data []byte, format audio.Format) {
	t.mu.Lock()
	if t.phase == PhaseTranscribing {
		t.mu.Unlock()
		return
	}
	t.attempt++
	attempt := t.attempt
	t.phase = PhaseTranscribing
	t.text = ""
	t.errMsg = ""
	t.mu.Unlock()

	text, err := t.run(ctx, data, format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.attempt != attempt {
		return
	}
	if err != nil {
		t.phase = PhaseFailed
		t.errMsg = err.Error()
		return
	}
	t.phase = PhaseTranscribed
	t.text = text
}

func (t *Transcription) run(ctx context.Context, data []byte, format audio.Format) (string, error) {
	enc, err := audio.Encode(data)
	if err != nil {
		return "", err
	}
	return t.engine.Transcribe(ctx, voice.TranscribeRequest{
		AudioBase64: enc,
		AudioFormat: string(format),
	})
}

func (t *Transcription) Snapshot() TranscriptionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TranscriptionSnapshot{Phase: t.phase, Text: t.text, Err: t.errMsg}
}

// Speech is the text-to-speech tool. Triggered by explicit intent, guarded
// against empty input and re-entry. The Ready payload is already wrapped in
// a WAV container.
type Speech struct {
	engine voice.Engine

	mu      sync.Mutex
	phase   Phase
	wav     []byte
	errMsg  string
	attempt uint64
}

type SpeechSnapshot struct {
	Phase Phase
	WAV   []byte
	Err   string
}

func NewSpeech(engine voice.Engine) *Speech {
	return &Speech{engine: engine, phase: PhaseIdle}
}

func (s *Speech) Synthesize(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" || s.phase == PhaseSynthesizing {
		s.mu.Unlock()
		return
	}
	s.attempt++
	attempt := s.attempt
	s.phase = PhaseSynthesizing
	s.wav = nil
	s.errMsg = ""
	s.mu.Unlock()

	wav, err := s.run(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt != attempt {
		return
	}
	if err != nil {
		s.phase = PhaseFailed
		s.errMsg = err.Error()
		return
	}
	s.phase = PhaseReady
	s.wav = wav
}

func (s *Speech) run(ctx context.Context, text string) ([]byte, error) {
	res, err := s.engine.Synthesize(ctx, voice.SynthesizeRequest{Text: text})
	if err != nil {
		return nil, err
	}
	return audio.WrapPCM(res.PCM, res.SampleRate)
}

func (s *Speech) Snapshot() SpeechSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SpeechSnapshot{Phase: s.phase, Err: s.errMsg}
	if s.wav != nil {
		snap.WAV = append([]byte(nil), s.wav...)
	}
	return snap
}
