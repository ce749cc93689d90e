package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// The synthesis model emits headerless 24kHz PCM16 mono. That byte stream is
// not playable by anything that expects a container, so the service wraps it
// in a minimal RIFF/WAVE header before handing it out.

type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

const wavHeaderSize = 44

// WrapPCM wraps raw little-endian PCM16 mono bytes in a WAV container.
func WrapPCM(raw []byte, sampleRate int) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyAudio
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("audio: odd PCM16 byte count %d", len(raw))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive, got %d", sampleRate)
	}

	const (
		numChannels   = uint16(1)
		bitsPerSample = uint16(16)
	)
	dataSize := uint32(len(raw))

	hdr := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   numChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(raw)))
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, fmt.Errorf("audio: write WAV header: %w", err)
	}
	buf.Write(raw)
	return buf.Bytes(), nil
}

// ValidateWAV checks the container markers without decoding the payload.
func ValidateWAV(data []byte) error {
	if len(data) < wavHeaderSize {
		return fmt.Errorf("audio: WAV data too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return fmt.Errorf("audio: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return fmt.Errorf("audio: missing WAVE format")
	}
	if string(data[12:16]) != "fmt " {
		return fmt.Errorf("audio: missing fmt chunk")
	}
	if string(data[36:40]) != "data" {
		return fmt.Errorf("audio: missing data chunk")
	}
	return nil
}

// WAVDuration reports the clip length in seconds for a PCM16 mono WAV.
func WAVDuration(data []byte) (float64, error) {
	if err := ValidateWAV(data); err != nil {
		return 0, err
	}
	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate == 0 {
		return 0, fmt.Errorf("audio: invalid sample rate 0")
	}
	dataSize := binary.LittleEndian.Uint32(data[40:44])
	return float64(dataSize/2) / float64(sampleRate), nil
}
