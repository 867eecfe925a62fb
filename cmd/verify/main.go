package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"suara/internal/speaker"
	"suara/internal/speech"

	"github.com/joho/godotenv"
)

const divider = "============================================================"

// The reference recording is the enrolled speaker reading this narration;
// reading the same text back gives the most stable similarity scores.
const narration = `Di tanah kuno Eldoria, di mana langit berkilau dan hutan berbisik rahasia kepada angin,
hiduplah seekor naga bernama Zephyros. [sarcastically] Bukan tipe yang "membakar semuanya"…
[giggles] tapi dia lembut, bijaksana, dengan mata seperti bintang tua. [whispers]
Bahkan burung-burung pun terdiam saat dia lewat.`

func main() {
	_ = godotenv.Load()

	reference := flag.String("reference", "audio_saya.mp3", "recording of the enrolled speaker")
	flag.Parse()

	fmt.Println("SISTEM VERIFIKASI SUARA")
	fmt.Println(divider)

	ctx := context.Background()

	// --- enrollment dari audio referensi ---

	fmt.Printf("\nMemuat audio enrollment dari %q...\n", *reference)

	duration, err := speech.AudioDuration(*reference)
	if err != nil {
		log.Fatalf("file referensi %q tidak bisa dibaca: %v", *reference, err)
	}
	fmt.Printf("   Durasi: %.2f detik\n", duration)
	if duration < 10 {
		fmt.Println("   PERINGATAN: audio pendek, minimal 10 detik direkomendasikan.")
	}

	tmpDir, err := os.MkdirTemp("", "verify-*")
	if err != nil {
		log.Fatalf("gagal membuat direktori kerja: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	enrollPath := filepath.Join(tmpDir, "enrollment.wav")
	if err := speaker.PrepareEnrollment(ctx, *reference, enrollPath); err != nil {
		log.Fatalf("gagal menyiapkan enrollment: %v", err)
	}
	fmt.Println("   Enrollment siap.")

	// --- rekam sampel verifikasi ---

	fmt.Println("\n" + divider)
	fmt.Println("TAHAP VERIFIKASI - REKAM SUARA ANDA")
	fmt.Println(divider)

	fmt.Println("\nNarasi referensi, bacakan teks ini saat merekam:")
	fmt.Println(narration)

	in := bufio.NewReader(os.Stdin)

	fmt.Println("\nBerapa detik Anda ingin merekam? (default: 10 detik)")
	fmt.Print("Durasi (detik): ")
	seconds := readSeconds(in)

	fmt.Printf("\nBersiap merekam selama %d detik.\n", seconds)
	fmt.Print("Tekan ENTER untuk mulai merekam...")
	_, _ = in.ReadString('\n')

	recordPath := filepath.Join(tmpDir, "verification.wav")

	fmt.Printf("\nREKAMAN DIMULAI! (Durasi: %d detik)\n", seconds)
	fmt.Println("   Silakan berbicara sekarang...")

	if err := recordWithProgress(ctx, recordPath, seconds); err != nil {
		log.Fatalf("gagal merekam dari mikrofon: %v", err)
	}
	fmt.Println("Rekaman selesai!")

	// --- model + embeddings ---

	fmt.Println("\nMemuat model Resemblyzer...")

	worker, err := speaker.StartEncoderWorker(
		getenv("ENCODER_PYTHON", "python3"),
		getenv("ENCODER_SCRIPT", "scripts/encoder_worker.py"),
	)
	if err != nil {
		log.Fatalf("gagal memuat model: %v", err)
	}
	defer worker.Close()
	fmt.Println("Model siap.")

	fmt.Println("\nMengekstrak voice embeddings...")

	enrollEmbed, err := worker.Embed(ctx, enrollPath)
	if err != nil {
		log.Fatalf("gagal ekstraksi embedding enrollment: %v", err)
	}
	verifyEmbed, err := worker.Embed(ctx, recordPath)
	if err != nil {
		log.Fatalf("gagal ekstraksi embedding verifikasi: %v", err)
	}
	fmt.Printf("   Dimensi embedding: %dD\n", len(enrollEmbed))

	// --- hasil ---

	similarity := speaker.CosineSimilarity(enrollEmbed, verifyEmbed)
	isMe := similarity > speaker.Threshold

	fmt.Println("\n" + divider)
	fmt.Println("HASIL VERIFIKASI SUARA")
	fmt.Println(divider)
	fmt.Printf("Skor Kesamaan (Cosine Similarity): %.4f\n", similarity)
	fmt.Printf("Threshold: %.2f\n", speaker.Threshold)
	fmt.Printf("Confidence Level: %.2f%%\n", similarity*100)
	fmt.Printf("Tingkat Keyakinan: %s\n", speaker.Confidence(similarity))

	if isMe {
		fmt.Println("\nPrediksi: PEMBICARA YANG SAMA")
		fmt.Println("Suara Anda cocok dengan audio pendaftaran.")
	} else {
		fmt.Println("\nPrediksi: PEMBICARA BERBEDA")
		fmt.Println("Suara Anda tidak cocok dengan audio pendaftaran.")
	}

	fmt.Printf("\nInterpretasi: %s\n", speaker.Interpretation(similarity))
	fmt.Println(divider)
}

func readSeconds(in *bufio.Reader) int {
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return 10
	}

	seconds, err := strconv.Atoi(line)
	if err != nil {
		log.Fatalf("durasi tidak valid: %q", line)
	}

	switch {
	case seconds < 3:
		fmt.Println("Durasi terlalu pendek. Minimal 3 detik, menggunakan 5 detik.")
		return 5
	case seconds > 30:
		fmt.Println("Durasi terlalu panjang. Maksimal 30 detik.")
		return 30
	}

	return seconds
}

// recordWithProgress runs ffmpeg in the background and draws a time-based
// progress bar, since ffmpeg itself is silenced.
func recordWithProgress(ctx context.Context, path string, seconds int) error {
	done := make(chan error, 1)
	go func() {
		done <- speech.Record(ctx, path, seconds)
	}()

	start := time.Now()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if err != nil {
				fmt.Println()
				return err
			}
			drawProgress(1)
			fmt.Println()
			return nil
		case <-ticker.C:
			p := time.Since(start).Seconds() / float64(seconds)
			if p > 1 {
				p = 1
			}
			drawProgress(p)
		}
	}
}

func drawProgress(p float64) {
	bars := int(p * 20)
	fmt.Printf("\r   Progress: [%s%s] %3.0f%%",
		strings.Repeat("█", bars),
		strings.Repeat("░", 20-bars),
		p*100,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
