package speaker

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Threshold splits same-speaker from different-speaker similarity scores.
const Threshold = 0.70

type verifier struct {
	encoder   Encoder
	reference []float64
}

// NewVerifier clips the reference recording to an enrollment segment,
// embeds it once and caches the embedding for the process lifetime.
func NewVerifier(ctx context.Context, encoder Encoder, referencePath string) (Verifier, error) {
	enroll := filepath.Join(os.TempDir(), fmt.Sprintf("enrollment_%d.wav", time.Now().UnixNano()))
	if err := PrepareEnrollment(ctx, referencePath, enroll); err != nil {
		return nil, err
	}
	defer os.Remove(enroll)

	ref, err := encoder.Embed(ctx, enroll)
	if err != nil {
		return nil, fmt.Errorf("embed reference: %w", err)
	}

	log.Printf("[speaker] reference enrolled, embedding %dD", len(ref))
	return &verifier{encoder: encoder, reference: ref}, nil
}

func (v *verifier) Verify(ctx context.Context, samplePath string) (Result, error) {
	emb, err := v.encoder.Embed(ctx, samplePath)
	if err != nil {
		return Result{}, err
	}

	sim := CosineSimilarity(v.reference, emb)
	log.Printf("[speaker] similarity=%.4f threshold=%.2f", sim, Threshold)

	return Result{Similarity: sim, Accepted: sim > Threshold}, nil
}

// CosineSimilarity is 0 for empty, zero or mismatched vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}

	return floats.Dot(a, b) / (na * nb)
}

// Confidence is the console band for a similarity score.
func Confidence(similarity float64) string {
	switch {
	case similarity > 0.75:
		return "SANGAT TINGGI"
	case similarity > 0.65:
		return "TINGGI"
	case similarity > 0.55:
		return "SEDANG"
	default:
		return "RENDAH"
	}
}

// Interpretation is the human-readable reading of a similarity score.
func Interpretation(similarity float64) string {
	switch {
	case similarity > 0.80:
		return "Hampir pasti orang yang sama"
	case similarity > 0.70:
		return "Kemungkinan besar orang yang sama"
	case similarity > 0.60:
		return "Ada kemiripan, tapi tidak konklusif"
	case similarity > 0.50:
		return "Kemiripan rendah"
	default:
		return "Kemungkinan besar orang yang berbeda"
	}
}
