package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Format is the declared container of an uploaded clip.
type Format string

const (
	FormatMP3     Format = "mp3"
	FormatWAV     Format = "wav"
	FormatM4A     Format = "m4a"
	FormatUnknown Format = ""
)

var ErrEmptyAudio = errors.New("audio: empty input")

// Encode turns raw audio bytes into the transport-safe base64 payload.
// It is a pure byte-to-text transform: no resampling, no validation of the
// audio structure beyond rejecting empty input.
func Encode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", ErrEmptyAudio
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// EncodeFile reads and encodes a clip from disk. A read failure is reported
// as-is; no partial output is ever produced.
func EncodeFile(path string) (string, Format, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", FormatUnknown, fmt.Errorf("audio: read %s: %w", path, err)
	}
	enc, err := Encode(b)
	if err != nil {
		return "", FormatUnknown, err
	}
	return enc, SniffFormat(b), nil
}

// SniffFormat detects the container by magic bytes.
func SniffFormat(b []byte) Format {
	// MP3: ID3 tag or bare MPEG frame sync (FF Ex/FF Fx)
	if len(b) >= 3 && b[0] == 'I' && b[1] == 'D' && b[2] == '3' {
		return FormatMP3
	}
	if len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0 {
		return FormatMP3
	}
	// WAV: RIFF....WAVE
	if len(b) >= 12 &&
		b[0] == 'R' && b[1] == 'I' && b[2] == 'F' && b[3] == 'F' &&
		b[8] == 'W' && b[9] == 'A' && b[10] == 'V' && b[11] == 'E' {
		return FormatWAV
	}
	// M4A: ....ftyp box at offset 4
	if len(b) >= 12 && b[4] == 'f' && b[5] == 't' && b[6] == 'y' && b[7] == 'p' {
		return FormatM4A
	}
	return FormatUnknown
}

// MIMEType maps a format to the MIME string the remote service expects.
func (f Format) MIMEType() string {
	switch f {
	case FormatMP3:
		return "audio/mpeg"
	case FormatWAV:
		return "audio/wav"
	case FormatM4A:
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat normalizes a declared format string ("mp3" | "wav" | "m4a").
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMP3:
		return FormatMP3, nil
	case FormatWAV:
		return FormatWAV, nil
	case FormatM4A:
		return FormatM4A, nil
	default:
		return FormatUnknown, fmt.Errorf("audio: unsupported format %q", s)
	}
}

// DecodeBase64MaybeDataURL decodes a base64 payload. Data URIs
// ("data:<mime>;base64,<payload>") are accepted and the MIME hint returned.
func DecodeBase64MaybeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	var hintMIME string
	if strings.HasPrefix(s, "data:") {
		if idx := strings.IndexByte(s, ','); idx > 0 {
			meta := s[len("data:"):idx]
			if semi := strings.IndexByte(meta, ';'); semi >= 0 {
				hintMIME = meta[:semi]
			} else {
				hintMIME = meta
			}
			s = s[idx+1:]
		}
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, hintMIME, nil
	} else if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, hintMIME, nil
	} else {
		return nil, "", err
	}
}
