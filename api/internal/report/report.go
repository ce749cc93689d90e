// Package report derives display-ready values from a settled detection
// result. Everything here is a pure transformation; both percentage strings
// come from the same stored float so they can never disagree.
package report

import (
	"fmt"

	"voxguard/api/internal/voice"
)

// Band is the two-color palette for the confidence chart: the scored slice
// and the remainder track.
type Band struct {
	Primary string
	Track   string
}

var (
	bandAI    = Band{Primary: "#ef4444", Track: "#1e293b"}
	bandHuman = Band{Primary: "#22c55e", Track: "#1e293b"}
)

// Report is the chart- and display-ready projection of one DetectionResult.
type Report struct {
	Verdict       string
	Language      voice.Language
	LanguageLabel string

	// Slices is the proportion pair for the pie chart, in percent:
	// confidence and remaining uncertainty (floored at zero).
	Slices [2]float64
	Band   Band

	// PercentFine is the one-decimal form ("98.2%"); PercentCoarse the
	// integer form ("98%").
	PercentFine   string
	PercentCoarse string

	Explanation   string
	Transcription string
}

// Project builds the report. Only call it with a successful result; error
// results carry no renderable data.
func Project(res voice.DetectionResult) Report {
	score := voice.Clamp01(res.ConfidenceScore)
	conf := score * 100
	rest := (1 - score) * 100
	if rest < 0 {
		rest = 0
	}

	r := Report{
		Language:      res.Language,
		LanguageLabel: voice.LanguageLabels[res.Language],
		Slices:        [2]float64{conf, rest},
		PercentFine:   fmt.Sprintf("%.1f%%", conf),
		PercentCoarse: fmt.Sprintf("%.0f%%", conf),
		Explanation:   res.Explanation,
		Transcription: res.Transcription,
	}
	if res.Classification == voice.AIGenerated {
		r.Verdict = "Synthetic AI Voice"
		r.Band = bandAI
	} else {
		r.Verdict = "Authentic Human Voice"
		r.Band = bandHuman
	}
	return r
}
