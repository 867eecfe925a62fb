package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type Transcriber interface {
	// Transcribe sends the uploaded bytes to the speech-to-text model.
	// filename is only used for the multipart part name.
	Transcribe(ctx context.Context, filename string, data []byte, language string) (string, error)
}

type CompletionClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

type Summarizer interface {
	// Summarize condenses a transcript into a short natural_text.
	// It never fails outward: provider errors degrade to an apology string.
	Summarize(ctx context.Context, transcription, promptKey string) string
}
