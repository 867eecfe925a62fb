package speaker

import "context"

type Encoder interface {
	// Embed returns the voice embedding for an audio file.
	Embed(ctx context.Context, path string) ([]float64, error)
	Close() error
}

type Verifier interface {
	// Verify compares a sample against the enrolled reference.
	Verify(ctx context.Context, samplePath string) (Result, error)
}

type Result struct {
	Similarity float64
	Accepted   bool
}
