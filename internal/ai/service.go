package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"suara/internal/error_notificator"
	"suara/internal/prompts"

	openai "github.com/sashabaranov/go-openai"
)

// apologyText is what the user hears when the chat model is down.
const apologyText = "I am sorry, I could not process the sound."

type summaryService struct {
	client   CompletionClient
	prompts  prompts.Service
	notifier error_notificator.Notificator
}

func NewSummaryService(
	client CompletionClient,
	promptSvc prompts.Service,
	notifier error_notificator.Notificator,
) Summarizer {
	return &summaryService{
		client:   client,
		prompts:  promptSvc,
		notifier: notifier,
	}
}

// rough diagnostics for the ops chat
func analyzeGroqError(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "status code: 401"):
		return "invalid Groq API key"
	case strings.Contains(msg, "status code: 403"):
		return "Groq access denied"
	case strings.Contains(msg, "status code: 404"):
		return "model not found"
	case strings.Contains(msg, "status code: 429"):
		return "Groq rate limit exceeded"
	case strings.Contains(msg, "status code: 400") && strings.Contains(msg, "model"):
		return "bad model id"
	case strings.Contains(msg, "status code: 400"):
		return "malformed Groq request"
	case strings.Contains(msg, "status code: 500"):
		return "Groq internal error"
	}
	return "unknown Groq error: " + err.Error()
}

func (s *summaryService) notifyGroqError(ctx context.Context, err error) {
	diag := analyzeGroqError(err)
	s.notifier.Notify(ctx, err,
		fmt.Sprintf("Groq chat failure\n%v\n\n%s", err, diag))
}

func (s *summaryService) Summarize(ctx context.Context, transcription, promptKey string) string {
	start := time.Now()
	log.Printf("[ai] >>> START summarize prompt=%q len=%d", promptKey, len(transcription))

	// 1) prompt: base system text + the transcript baked in
	p := s.prompts.GetOrDefault(promptKey)
	systemPrompt := fmt.Sprintf("%s\n\nTeks transkrip pengguna: \"%s\"", p.System, transcription)

	// 2) chat completion
	ctxChat, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	reply, err := s.client.GetCompletion(ctxChat, []openai.ChatCompletionMessage{
		{Role: "system", Content: systemPrompt},
	})
	log.Printf("[ai][%.1fs] summarize done err=%v", time.Since(start).Seconds(), err)

	if err != nil {
		s.notifyGroqError(ctx, err)
		return apologyText
	}

	return parseNaturalText(strings.TrimSpace(reply))
}

// parseNaturalText expects {"natural_text": "..."} but the model does not
// always obey, so raw replies pass through as-is.
func parseNaturalText(reply string) string {
	var parsed struct {
		NaturalText *string `json:"natural_text"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		log.Printf("[ai] reply was not valid JSON, returning raw text: %q", reply)
		return reply
	}
	if parsed.NaturalText == nil {
		return "Could not process text."
	}
	return *parsed.NaturalText
}
