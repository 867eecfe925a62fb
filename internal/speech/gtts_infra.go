package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	htgotts "github.com/hegedustibor/htgo-tts"
)

const speechLanguage = "id"

// The translate endpoint rejects long q parameters, so text goes over in
// chunks of at most this many runes. The per-chunk MP3 bodies concatenate
// into one playable stream (every MP3 frame carries its own header).
const maxChunkRunes = 100

// GoogleTTS is the standard voice: Google Translate synthesis via htgo-tts,
// one MP3 per call under the responses folder.
type GoogleTTS struct {
	speech htgotts.Speech
}

func NewGoogleTTS(folder string) *GoogleTTS {
	if err := os.MkdirAll(folder, 0755); err != nil {
		log.Fatalf("failed to create responses dir: %v", err)
	}

	return &GoogleTTS{
		speech: htgotts.Speech{Folder: folder, Language: speechLanguage},
	}
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		log.Printf("[tts] empty text, nothing to synthesize")
		return "", nil
	}

	name := "response_" + uuid.New().String()

	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 1 {
		path, err := g.synthesizeChunk(chunks[0], name)
		if err != nil {
			return "", err
		}
		log.Printf("[tts] standard voice -> %s", path)
		return path, nil
	}

	path, err := g.synthesizeChunked(ctx, chunks, name)
	if err != nil {
		return "", err
	}
	log.Printf("[tts] standard voice -> %s (%d chunks)", path, len(chunks))
	return path, nil
}

// synthesizeChunk fetches one piece and rejects non-MP3 bodies: the client
// library saves whatever the endpoint answers, error pages included.
func (g *GoogleTTS) synthesizeChunk(text, name string) (string, error) {
	path, err := g.speech.CreateSpeechFile(text, name)
	if err != nil {
		return "", fmt.Errorf("google tts: %w", err)
	}
	if err := validateMP3(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("google tts: %w", err)
	}
	return path, nil
}

func (g *GoogleTTS) synthesizeChunked(ctx context.Context, chunks []string, name string) (string, error) {
	outPath := filepath.Join(g.speech.Folder, name+".mp3")
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			os.Remove(outPath)
			return "", err
		}

		partPath, err := g.synthesizeChunk(chunk, fmt.Sprintf("%s_part_%d", name, i))
		if err != nil {
			os.Remove(outPath)
			return "", err
		}

		part, err := os.Open(partPath)
		if err == nil {
			_, err = io.Copy(out, part)
			part.Close()
		}
		os.Remove(partPath)
		if err != nil {
			os.Remove(outPath)
			return "", err
		}
	}

	return outPath, nil
}

// validateMP3 sniffs the leading bytes: an ID3 tag or an MPEG frame sync.
func validateMP3(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, 3)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("synthesized audio truncated")
	}
	if bytes.HasPrefix(header, []byte("ID3")) {
		return nil
	}
	if header[0] == 0xFF && header[1]&0xE0 == 0xE0 {
		return nil
	}
	return fmt.Errorf("synthesized audio is not mp3")
}

// splitText packs whitespace-separated words into chunks of at most max
// runes; a single word longer than max is hard-split.
func splitText(text string, max int) []string {
	var chunks []string
	var cur []rune

	for _, word := range strings.Fields(text) {
		r := []rune(word)

		for len(r) > max {
			if len(cur) > 0 {
				chunks = append(chunks, string(cur))
				cur = nil
			}
			chunks = append(chunks, string(r[:max]))
			r = r[max:]
		}
		if len(r) == 0 {
			continue
		}

		switch {
		case len(cur) == 0:
			cur = append(cur, r...)
		case len(cur)+1+len(r) <= max:
			cur = append(cur, ' ')
			cur = append(cur, r...)
		default:
			chunks = append(chunks, string(cur))
			cur = append([]rune{}, r...)
		}
	}

	if len(cur) > 0 {
		chunks = append(chunks, string(cur))
	}
	return chunks
}
