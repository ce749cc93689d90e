package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voxguard/api/internal/voice"
)

func TestProjectAIGenerated(t *testing.T) {
	r := Project(voice.DetectionResult{
		Status:          voice.StatusSuccess,
		Language:        voice.LangHindi,
		Classification:  voice.AIGenerated,
		ConfidenceScore: 0.982,
		Explanation:     "Spectral artifacts at frame boundaries.",
		Transcription:   "नमस्ते",
	})

	assert.InDelta(t, 98.2, r.Slices[0], 1e-9)
	assert.InDelta(t, 1.8, r.Slices[1], 1e-9)
	assert.Equal(t, "98.2%", r.PercentFine)
	assert.Equal(t, "98%", r.PercentCoarse)
	assert.Equal(t, "Synthetic AI Voice", r.Verdict)
	assert.Equal(t, "#ef4444", r.Band.Primary)
	assert.Equal(t, "#1e293b", r.Band.Track)
	assert.Equal(t, "हिंदी (Hindi)", r.LanguageLabel)
	assert.Equal(t, "नमस्ते", r.Transcription)
}

func TestProjectHuman(t *testing.T) {
	r := Project(voice.DetectionResult{
		Status:          voice.StatusSuccess,
		Language:        voice.LangEnglish,
		Classification:  voice.Human,
		ConfidenceScore: 0.75,
	})

	assert.Equal(t, "Authentic Human Voice", r.Verdict)
	assert.Equal(t, "#22c55e", r.Band.Primary)
	assert.InDelta(t, 75.0, r.Slices[0], 1e-9)
	assert.InDelta(t, 25.0, r.Slices[1], 1e-9)
	assert.Equal(t, "75.0%", r.PercentFine)
	assert.Equal(t, "75%", r.PercentCoarse)
}

// Both strings come from the same stored float, so an out-of-range score is
// clamped once and everything downstream agrees.
func TestProjectClampsScore(t *testing.T) {
	r := Project(voice.DetectionResult{
		Classification:  voice.Human,
		ConfidenceScore: 1.3,
	})
	assert.InDelta(t, 100.0, r.Slices[0], 1e-9)
	assert.InDelta(t, 0.0, r.Slices[1], 1e-9)
	assert.Equal(t, "100.0%", r.PercentFine)

	r = Project(voice.DetectionResult{
		Classification:  voice.AIGenerated,
		ConfidenceScore: -0.2,
	})
	assert.InDelta(t, 0.0, r.Slices[0], 1e-9)
	assert.InDelta(t, 100.0, r.Slices[1], 1e-9)
	assert.Equal(t, "0.0%", r.PercentFine)
	assert.Equal(t, "0%", r.PercentCoarse)
}
