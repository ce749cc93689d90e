package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxguard/api/internal/voice"
)

func TestChatSeededWithGreeting(t *testing.T) {
	c := NewChat(&fakeEngine{})

	turns := c.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, voice.RoleAssistant, turns[0].Role)
	assert.Equal(t, Greeting, turns[0].Text)
	assert.False(t, c.Composing())
}

func TestChatExchange(t *testing.T) {
	eng := &fakeEngine{chatReply: "Listen for flat prosody and missing breaths."}
	c := NewChat(eng)

	c.Send(context.Background(), "How do I spot a cloned voice?")

	turns := c.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, voice.RoleAssistant, turns[0].Role)
	assert.Equal(t, voice.RoleUser, turns[1].Role)
	assert.Equal(t, "How do I spot a cloned voice?", turns[1].Text)
	assert.Equal(t, voice.RoleAssistant, turns[2].Role)
	assert.Equal(t, eng.chatReply, turns[2].Text)

	// the history sent upstream is the state before the user turn
	require.Len(t, eng.lastHistory, 1)
	assert.Equal(t, Greeting, eng.lastHistory[0].Text)
	assert.False(t, c.Composing())
}

func TestChatEmptyInputIsNoop(t *testing.T) {
	eng := &fakeEngine{chatReply: "hi"}
	c := NewChat(eng)

	c.Send(context.Background(), "")
	c.Send(context.Background(), "   \n\t")

	assert.Len(t, c.Turns(), 1)
	_, _, _, chat := eng.calls()
	assert.Zero(t, chat)
}

func TestChatRejectsWhileComposing(t *testing.T) {
	eng := newBlockingEngine()
	eng.chatReply = "done"
	c := NewChat(eng)

	done := make(chan struct{})
	go func() {
		c.Send(context.Background(), "first")
		close(done)
	}()
	<-eng.entered

	require.True(t, c.Composing())
	lenBefore := len(c.Turns())
	c.Send(context.Background(), "second") // rejected, not queued
	assert.Len(t, c.Turns(), lenBefore)

	close(eng.release)
	<-done

	turns := c.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "done", turns[2].Text)
	_, _, _, chat := eng.calls()
	assert.Equal(t, 1, chat)
}

func TestChatFailureAppendsFallback(t *testing.T) {
	c := NewChat(&fakeEngine{chatErr: assert.AnError})

	c.Send(context.Background(), "hello?")

	turns := c.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, voice.RoleAssistant, turns[2].Role)
	assert.Equal(t, FallbackReply, turns[2].Text)
	assert.False(t, c.Composing())
}

func TestChatEmptyReplyGetsPlaceholder(t *testing.T) {
	c := NewChat(&fakeEngine{chatReply: "  "})

	c.Send(context.Background(), "hello?")

	turns := c.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, EmptyReply, turns[2].Text)
}

func TestChatTurnsReturnsCopy(t *testing.T) {
	c := NewChat(&fakeEngine{chatReply: "x"})

	turns := c.Turns()
	turns[0].Text = "mutated"

	assert.Equal(t, Greeting, c.Turns()[0].Text)
}
