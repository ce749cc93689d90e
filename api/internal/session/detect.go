package session

import (
	"context"
	"sync"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/voice"
)

// Phase of a tool session. One in-flight request per session, no queueing.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseFileSelected Phase = "file_selected"
	PhaseAnalyzing    Phase = "analyzing"
	PhaseResult       Phase = "result"
	PhaseError        Phase = "error"
)

// AudioFile is one user-selected clip held by a session.
type AudioFile struct {
	Name   string
	Data   []byte
	Format audio.Format
}

// Detection drives one detection attempt: idle → file selected → analyzing
// → result | error. Settled states persist until the next file selection or
// an explicit re-analyze. The presentation layer only reads Snapshot and
// dispatches SelectFile/Analyze/Reset.
type Detection struct {
	engine voice.Engine

	mu      sync.Mutex
	phase   Phase
	file    *AudioFile
	result  *voice.DetectionResult
	errMsg  string
	attempt uint64
}

// DetectionSnapshot is the read-only view the presentation layer renders.
// Result is nil unless Phase is PhaseResult.
type DetectionSnapshot struct {
	Phase    Phase
	FileName string
	Result   *voice.DetectionResult
	Err      string
}

func NewDetection(engine voice.Engine) *Detection {
	return &Detection{engine: engine, phase: PhaseIdle}
}

// SelectFile is a hard reset: any previous result or error is discarded and
// a completion from a superseded attempt can no longer land.
func (d *Detection) SelectFile(name string, data []byte, format audio.Format) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempt++
	d.phase = PhaseFileSelected
	d.file = &AudioFile{Name: name, Data: data, Format: format}
	d.result = nil
	d.errMsg = ""
}

// Analyze runs one classification attempt to completion. Guarded no-op when
// no file is selected or a request is already in flight; callers wanting a
// non-blocking submit run it in their own goroutine.
func (d *Detection) Analyze(ctx context.Context) {
	d.mu.Lock()
	if d.file == nil || d.phase == PhaseAnalyzing {
		d.mu.Unlock()
		return
	}
	file := d.file
	attempt := d.attempt
	d.phase = PhaseAnalyzing
	d.result = nil
	d.errMsg = ""
	d.mu.Unlock()

	res, err := d.run(ctx, file)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.attempt != attempt {
		// a newer file was selected while this request was in flight
		return
	}
	if err != nil {
		d.phase = PhaseError
		d.errMsg = err.Error()
		return
	}
	d.phase = PhaseResult
	d.result = &res
}

func (d *Detection) run(ctx context.Context, file *AudioFile) (voice.DetectionResult, error) {
	enc, err := audio.Encode(file.Data)
	if err != nil {
		return voice.DetectionResult{}, err
	}
	return d.engine.DetectVoice(ctx, voice.DetectRequest{
		AudioBase64: enc,
		AudioFormat: string(file.Format),
	})
}

func (d *Detection) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempt++
	d.phase = PhaseIdle
	d.file = nil
	d.result = nil
	d.errMsg = ""
}

func (d *Detection) Snapshot() DetectionSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := DetectionSnapshot{Phase: d.phase, Err: d.errMsg}
	if d.file != nil {
		s.FileName = d.file.Name
	}
	if d.result != nil {
		r := *d.result
		s.Result = &r
	}
	return s
}
