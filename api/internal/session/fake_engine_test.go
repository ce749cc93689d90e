package session

import (
	"context"
	"sync"

	"voxguard/api/internal/voice"
)

// fakeEngine scripts voice.Engine for session tests. Setting entered/release
// lets a test hold a call in flight to exercise the busy guards.
type fakeEngine struct {
	mu sync.Mutex

	detectRes voice.DetectionResult
	detectErr error

	transcript    string
	transcribeErr error

	speech   voice.SpeechResult
	synthErr error

	chatReply   string
	chatErr     error
	lastHistory []voice.Turn

	detectCalls     int
	transcribeCalls int
	synthCalls      int
	chatCalls       int

	entered chan struct{} // closed once a call has started
	release chan struct{} // call blocks until this closes
}

func newBlockingEngine() *fakeEngine {
	return &fakeEngine{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (f *fakeEngine) gate() {
	f.mu.Lock()
	entered := f.entered
	release := f.release
	f.mu.Unlock()
	if entered != nil {
		close(entered)
		f.mu.Lock()
		f.entered = nil
		f.mu.Unlock()
	}
	if release != nil {
		<-release
	}
}

func (f *fakeEngine) DetectVoice(ctx context.Context, in voice.DetectRequest) (voice.DetectionResult, error) {
	f.mu.Lock()
	f.detectCalls++
	f.mu.Unlock()
	f.gate()
	return f.detectRes, f.detectErr
}

func (f *fakeEngine) Transcribe(ctx context.Context, in voice.TranscribeRequest) (string, error) {
	f.mu.Lock()
	f.transcribeCalls++
	f.mu.Unlock()
	f.gate()
	return f.transcript, f.transcribeErr
}

func (f *fakeEngine) Synthesize(ctx context.Context, in voice.SynthesizeRequest) (voice.SpeechResult, error) {
	f.mu.Lock()
	f.synthCalls++
	f.mu.Unlock()
	f.gate()
	return f.speech, f.synthErr
}

func (f *fakeEngine) Chat(ctx context.Context, message string, history []voice.Turn) (string, error) {
	f.mu.Lock()
	f.chatCalls++
	f.lastHistory = append([]voice.Turn(nil), history...)
	f.mu.Unlock()
	f.gate()
	return f.chatReply, f.chatErr
}

func (f *fakeEngine) calls() (detect, transcribe, synth, chat int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detectCalls, f.transcribeCalls, f.synthCalls, f.chatCalls
}
