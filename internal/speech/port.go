package speech

import "context"

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error) // returns the generated audio file path
}

type Service interface {
	// Synthesize picks the engine: personalized only when asked for AND trained.
	Synthesize(ctx context.Context, text string, personalized bool) (string, error)
	PersonalizedAvailable() bool
}
