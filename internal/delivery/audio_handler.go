package delivery

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"suara/internal/ai"
	"suara/internal/error_notificator"
	"suara/internal/responses"
	"suara/internal/speaker"
	"suara/internal/speech"

	"github.com/Vovarama1992/go-utils/logger"
)

const transcriptionLanguage = "id"

type AudioHandler struct {
	transcriber   ai.Transcriber
	summarizer    ai.Summarizer
	speechService speech.Service
	verifier      speaker.Verifier // nil when verification is unavailable
	store         *responses.Store
	notifier      error_notificator.Notificator
	log           *logger.ZapLogger
}

func NewAudioHandler(
	transcriber ai.Transcriber,
	summarizer ai.Summarizer,
	speechService speech.Service,
	verifier speaker.Verifier,
	store *responses.Store,
	notifier error_notificator.Notificator,
	log *logger.ZapLogger,
) *AudioHandler {
	return &AudioHandler{
		transcriber:   transcriber,
		summarizer:    summarizer,
		speechService: speechService,
		verifier:      verifier,
		store:         store,
		notifier:      notifier,
		log:           log,
	}
}

func (h *AudioHandler) ProcessAudio(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	modelSelection := r.FormValue("model_selection")
	promptSelection := r.FormValue("prompt_selection")

	file, header, err := r.FormFile("audio_file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing audio_file", Error: err})
		http.Error(w, "missing audio_file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "an error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("[voice] start file=%s size=%d model=%q prompt=%q",
		header.Filename, len(data), modelSelection, promptSelection)

	// the verification model wants a real file path, not a buffer
	tmpPath, err := saveTemp(data, filepath.Ext(header.Filename))
	if err != nil {
		http.Error(w, "an error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmpPath)

	personalized := modelSelection == "personalized"
	if personalized && (h.verifier == nil || !h.speechService.PersonalizedAvailable()) {
		log.Printf("[voice] personalized voice unavailable, falling back to standard")
		personalized = false
	}

	if personalized {
		res, err := h.verifier.Verify(r.Context(), tmpPath)
		if err != nil {
			h.log.Log(logger.LogEntry{Level: "error", Message: "verification error", Error: err})
			http.Error(w, "an error occurred: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !res.Accepted {
			log.Printf("[voice] verification rejected similarity=%.4f", res.Similarity)
			http.Error(w, "speaker verification failed", http.StatusForbidden)
			return
		}
		log.Printf("[voice] verification passed similarity=%.4f", res.Similarity)
	}

	if dur, err := speech.AudioDuration(tmpPath); err == nil {
		log.Printf("[voice] upload duration %.1fs", dur)
	}

	// speech -> text
	transcription, err := h.transcriber.Transcribe(r.Context(), header.Filename, data, transcriptionLanguage)
	if err != nil {
		log.Printf("[voice] transcribe fail: %v", err)
		h.notifier.Notify(r.Context(), err, "Groq transcription failure")
		http.Error(w, "an error occurred: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("[voice] transcribed: %q", transcription)

	// text -> short natural_text (never fails outward)
	naturalText := h.summarizer.Summarize(r.Context(), transcription, promptSelection)
	log.Printf("[voice] summary: %q", naturalText)

	// synthesis failures leave a slot empty, retrieval answers 404 later
	summaryPath, err := h.speechService.Synthesize(r.Context(), naturalText, personalized)
	if err != nil {
		log.Printf("[voice] summary synthesis fail: %v", err)
		summaryPath = ""
	}

	transcriptionPath, err := h.speechService.Synthesize(r.Context(), transcription, false)
	if err != nil {
		log.Printf("[voice] transcription synthesis fail: %v", err)
		transcriptionPath = ""
	}

	h.store.SetLatest(summaryPath, transcriptionPath)

	log.Printf("[voice][%.1fs] done", time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"initial_transcription": transcription,
		"natural_text":          naturalText,
	})
}

func (h *AudioHandler) GetResponseAudio(w http.ResponseWriter, r *http.Request) {
	h.serveLatest(w, r, h.store.LatestSummary(), "response", "audio file not found")
}

func (h *AudioHandler) GetTranscriptionAudio(w http.ResponseWriter, r *http.Request) {
	h.serveLatest(w, r, h.store.LatestTranscription(), "transcription", "transcription audio file not found")
}

func (h *AudioHandler) serveLatest(w http.ResponseWriter, r *http.Request, path, downloadName, notFound string) {
	if path == "" {
		http.Error(w, notFound, http.StatusNotFound)
		return
	}
	if _, err := os.Stat(path); err != nil {
		http.Error(w, notFound, http.StatusNotFound)
		return
	}

	contentType := "audio/mpeg"
	ext := ".mp3"
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		contentType = "audio/wav"
		ext = ".wav"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName+ext))
	http.ServeFile(w, r, path)
}

func saveTemp(data []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
