package ai

import (
	"bytes"
	"context"
	"log"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL      = "https://api.groq.com/openai/v1"
	defaultWhisperModel = "whisper-large-v3"
	defaultChatModel    = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// GroqClient talks to Groq through its OpenAI-compatible API:
// one client for both transcription and chat.
type GroqClient struct {
	client       *openai.Client
	whisperModel string
	chatModel    string
}

func NewGroqClient() *GroqClient {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Fatal("GROQ_API_KEY not set")
	}

	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	whisperModel := os.Getenv("GROQ_WHISPER_MODEL")
	if whisperModel == "" {
		whisperModel = defaultWhisperModel
	}

	chatModel := os.Getenv("GROQ_CHAT_MODEL")
	if chatModel == "" {
		chatModel = defaultChatModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &GroqClient{
		client:       openai.NewClientWithConfig(cfg),
		whisperModel: whisperModel,
		chatModel:    chatModel,
	}
}

func (c *GroqClient) Transcribe(ctx context.Context, filename string, data []byte, language string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		FilePath: filename,
		Reader:   bytes.NewReader(data),
		Language: language,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (c *GroqClient) GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
		// omitempty would drop a literal 0
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   100,
		TopP:        1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
