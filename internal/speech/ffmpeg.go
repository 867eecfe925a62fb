package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

func AudioDuration(path string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

// Clip cuts the first `seconds` of src into a 16kHz mono PCM WAV,
// the format the speaker encoder wants.
func Clip(ctx context.Context, src, dst string, seconds float64) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-loglevel", "error",
		"-i", src,
		"-t", fmt.Sprintf("%.3f", seconds),
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dst,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg clip: %w: %s", err, string(out))
	}
	return nil
}

// Record captures `seconds` from the default microphone into a 16kHz mono WAV.
func Record(ctx context.Context, dst string, seconds int) error {
	args := []string{"-y", "-loglevel", "error"}

	switch runtime.GOOS {
	case "darwin":
		args = append(args, "-f", "avfoundation", "-i", ":0")
	default:
		args = append(args, "-f", "alsa", "-i", "default")
	}

	args = append(args,
		"-t", strconv.Itoa(seconds),
		"-ar", "16000",
		"-ac", "1",
		dst,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg record: %w: %s", err, string(out))
	}
	return nil
}
