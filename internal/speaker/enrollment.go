package speaker

import (
	"context"
	"fmt"

	"suara/internal/speech"
)

// MaxEnrollmentSeconds caps the enrollment segment cut from the reference.
const MaxEnrollmentSeconds = 12.0

// PrepareEnrollment cuts the leading segment of the reference recording
// into a 16kHz mono WAV the encoder can consume.
func PrepareEnrollment(ctx context.Context, src, dst string) error {
	duration, err := speech.AudioDuration(src)
	if err != nil {
		return fmt.Errorf("probe reference: %w", err)
	}

	seconds := duration
	if seconds > MaxEnrollmentSeconds {
		seconds = MaxEnrollmentSeconds
	}

	if err := speech.Clip(ctx, src, dst, seconds); err != nil {
		return fmt.Errorf("clip reference: %w", err)
	}
	return nil
}
