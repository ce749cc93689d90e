package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxguard/api/internal/audio"
	"voxguard/api/internal/voice"
)

var testResult = voice.DetectionResult{
	Status:          voice.StatusSuccess,
	Language:        voice.LangHindi,
	Classification:  voice.AIGenerated,
	ConfidenceScore: 0.982,
	Explanation:     "Uniform prosody and missing breath noise.",
	Transcription:   "नमस्ते",
}

func TestDetectionSuccess(t *testing.T) {
	eng := &fakeEngine{detectRes: testResult}
	d := NewDetection(eng)

	require.Equal(t, PhaseIdle, d.Snapshot().Phase)

	d.SelectFile("clip.mp3", []byte("ID3mp3data"), audio.FormatMP3)
	snap := d.Snapshot()
	require.Equal(t, PhaseFileSelected, snap.Phase)
	assert.Equal(t, "clip.mp3", snap.FileName)
	assert.Nil(t, snap.Result)

	d.Analyze(context.Background())
	snap = d.Snapshot()
	require.Equal(t, PhaseResult, snap.Phase)
	require.NotNil(t, snap.Result)
	assert.Equal(t, voice.AIGenerated, snap.Result.Classification)
	assert.InDelta(t, 0.982, snap.Result.ConfidenceScore, 1e-9)
	assert.Empty(t, snap.Err)
}

func TestDetectionAnalyzeWithoutFileIsNoop(t *testing.T) {
	eng := &fakeEngine{detectRes: testResult}
	d := NewDetection(eng)

	d.Analyze(context.Background())

	assert.Equal(t, PhaseIdle, d.Snapshot().Phase)
	detect, _, _, _ := eng.calls()
	assert.Zero(t, detect)
}

func TestDetectionReentryWhileAnalyzingIsNoop(t *testing.T) {
	eng := newBlockingEngine()
	eng.detectRes = testResult
	d := NewDetection(eng)
	d.SelectFile("clip.wav", []byte("RIFFxxxxWAVEdata"), audio.FormatWAV)

	done := make(chan struct{})
	go func() {
		d.Analyze(context.Background())
		close(done)
	}()
	<-eng.entered

	require.Equal(t, PhaseAnalyzing, d.Snapshot().Phase)
	d.Analyze(context.Background()) // must not dispatch a second request

	close(eng.release)
	<-done

	require.Equal(t, PhaseResult, d.Snapshot().Phase)
	detect, _, _, _ := eng.calls()
	assert.Equal(t, 1, detect)
}

func TestDetectionNewFileClearsResult(t *testing.T) {
	eng := &fakeEngine{detectRes: testResult}
	d := NewDetection(eng)

	d.SelectFile("a.mp3", []byte("ID3aaa"), audio.FormatMP3)
	d.Analyze(context.Background())
	require.Equal(t, PhaseResult, d.Snapshot().Phase)

	d.SelectFile("b.mp3", []byte("ID3bbb"), audio.FormatMP3)
	snap := d.Snapshot()
	assert.Equal(t, PhaseFileSelected, snap.Phase)
	assert.Equal(t, "b.mp3", snap.FileName)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Err)
}

func TestDetectionStaleCompletionIsDiscarded(t *testing.T) {
	eng := newBlockingEngine()
	eng.detectRes = testResult
	d := NewDetection(eng)
	d.SelectFile("old.mp3", []byte("ID3old"), audio.FormatMP3)

	done := make(chan struct{})
	go func() {
		d.Analyze(context.Background())
		close(done)
	}()
	<-eng.entered

	// a newer selection supersedes the attempt still in flight
	d.SelectFile("new.mp3", []byte("ID3new"), audio.FormatMP3)

	close(eng.release)
	<-done

	snap := d.Snapshot()
	assert.Equal(t, PhaseFileSelected, snap.Phase)
	assert.Equal(t, "new.mp3", snap.FileName)
	assert.Nil(t, snap.Result)
}

func TestDetectionEngineFailure(t *testing.T) {
	eng := &fakeEngine{detectErr: assert.AnError}
	d := NewDetection(eng)

	d.SelectFile("clip.m4a", []byte{0, 0, 0, 0x20, 'f', 't', 'y', 'p'}, audio.FormatM4A)
	d.Analyze(context.Background())

	snap := d.Snapshot()
	assert.Equal(t, PhaseError, snap.Phase)
	assert.Nil(t, snap.Result)
	assert.NotEmpty(t, snap.Err)
}

func TestDetectionEmptyFileFailsBeforeDispatch(t *testing.T) {
	eng := &fakeEngine{detectRes: testResult}
	d := NewDetection(eng)

	d.SelectFile("empty.mp3", nil, audio.FormatMP3)
	d.Analyze(context.Background())

	snap := d.Snapshot()
	assert.Equal(t, PhaseError, snap.Phase)
	detect, _, _, _ := eng.calls()
	assert.Zero(t, detect)
}

func TestDetectionReset(t *testing.T) {
	eng := &fakeEngine{detectRes: testResult}
	d := NewDetection(eng)

	d.SelectFile("a.mp3", []byte("ID3aaa"), audio.FormatMP3)
	d.Analyze(context.Background())
	d.Reset()

	snap := d.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.FileName)
	assert.Nil(t, snap.Result)
}
