package session

import (
	"context"
	"strings"
	"sync"

	"voxguard/api/internal/voice"
)

// Fixed conversation strings. The fallback keeps the turn sequence intact
// when the backend fails instead of leaving the chat silently stalled.
const (
	Greeting      = "Hello! I'm VoxGuard AI. How can I help you today with AI voice detection or cybersecurity?"
	FallbackReply = "An error occurred. Please try again later."
	EmptyReply    = "I'm sorry, I couldn't process that."
)

// Chat holds the ordered turn list for one conversation. Turns are
// append-only; the full history is resent with every user message.
type Chat struct {
	engine voice.Engine

	mu        sync.Mutex
	turns     []voice.Turn
	composing bool
}

func NewChat(engine voice.Engine) *Chat {
	return &Chat{
		engine: engine,
		turns:  []voice.Turn{{Role: voice.RoleAssistant, Text: Greeting}},
	}
}

// Send submits one user message. Empty or whitespace-only input, and input
// while a reply is still composing, are no-ops. The user turn is appended
// before the network call; exactly one further append happens when the call
// settles, success or failure.
func (c *Chat) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.composing {
		c.mu.Unlock()
		return
	}
	history := append([]voice.Turn(nil), c.turns...)
	c.turns = append(c.turns, voice.Turn{Role: voice.RoleUser, Text: text})
	c.composing = true
	c.mu.Unlock()

	reply, err := c.engine.Chat(ctx, text, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.composing = false
	switch {
	case err != nil:
		c.turns = append(c.turns, voice.Turn{Role: voice.RoleAssistant, Text: FallbackReply})
	case strings.TrimSpace(reply) == "":
		c.turns = append(c.turns, voice.Turn{Role: voice.RoleAssistant, Text: EmptyReply})
	default:
		c.turns = append(c.turns, voice.Turn{Role: voice.RoleAssistant, Text: reply})
	}
}

// Turns returns a copy of the conversation so far.
func (c *Chat) Turns() []voice.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]voice.Turn(nil), c.turns...)
}

// Composing reports whether a reply is in flight.
func (c *Chat) Composing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composing
}
