package speech

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const coquiTimeout = 2 * time.Minute

// CoquiTTS is the personalized voice: a Coqui-style `tts` binary with a
// locally trained model bundle, one WAV per call.
type CoquiTTS struct {
	bin        string
	modelPath  string
	configPath string
	outDir     string
}

func NewCoquiTTS(bin, modelDir, outDir string) *CoquiTTS {
	return &CoquiTTS{
		bin:        bin,
		modelPath:  filepath.Join(modelDir, "best_model.pth"),
		configPath: filepath.Join(modelDir, "config.json"),
		outDir:     outDir,
	}
}

// Available reports whether the trained bundle (config + weights) is on disk.
func (c *CoquiTTS) Available() bool {
	if _, err := os.Stat(c.modelPath); err != nil {
		return false
	}
	if _, err := os.Stat(c.configPath); err != nil {
		return false
	}
	return true
}

func (c *CoquiTTS) Synthesize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		log.Printf("[tts] empty text, nothing to synthesize")
		return "", nil
	}

	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(c.outDir, fmt.Sprintf("response_%s.wav", uuid.New().String()))

	ctx, cancel := context.WithTimeout(ctx, coquiTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin,
		"--text", text,
		"--model_path", c.modelPath,
		"--config_path", c.configPath,
		"--out_path", outPath,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("coqui tts: %w: %s", err, string(out))
	}

	log.Printf("[tts] personalized voice -> %s", outPath)
	return outPath, nil
}
