package gemini

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 300*time.Millisecond, retryDelay(1))
	assert.Equal(t, 600*time.Millisecond, retryDelay(2))
	// no sleep after the last attempt
	assert.Zero(t, retryDelay(maxAttempts))
	assert.Zero(t, retryDelay(maxAttempts+1))
}

func TestPickMIME(t *testing.T) {
	assert.Equal(t, "audio/mpeg", pickMIME("mp3", "", nil))
	assert.Equal(t, "audio/mp4", pickMIME("m4a", "audio/wav", nil))

	// declared format wins; hint next; sniffing last
	assert.Equal(t, "audio/mp4", pickMIME("", "audio/mp4", nil))
	assert.Equal(t, "audio/mpeg", pickMIME("", "", []byte("ID3rest")))
	assert.Equal(t, "application/octet-stream", pickMIME("", "", []byte("????")))
}
