package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGroqClient_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_WHISPER_MODEL", "")
	t.Setenv("GROQ_CHAT_MODEL", "")

	c := NewGroqClient()
	assert.Equal(t, defaultWhisperModel, c.whisperModel)
	assert.Equal(t, defaultChatModel, c.chatModel)
}

func TestNewGroqClient_ModelOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_WHISPER_MODEL", "whisper-custom")
	t.Setenv("GROQ_CHAT_MODEL", "chat-custom")

	c := NewGroqClient()
	assert.Equal(t, "whisper-custom", c.whisperModel)
	assert.Equal(t, "chat-custom", c.chatModel)
}
