package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"suara/internal/ai"
	"suara/internal/delivery"
	"suara/internal/error_notificator"
	"suara/internal/prompts"
	"suara/internal/responses"
	"suara/internal/speaker"
	"suara/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV
	// =========================================================================

	_ = godotenv.Load()

	port := getenv("PORT", "8001")
	responsesDir := getenv("RESPONSES_DIR", "responses")

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var alertInfra error_notificator.Notificator = error_notificator.Nop{}
	if tg := error_notificator.NewTelegramInfra(); tg != nil {
		alertInfra = tg
	} else {
		log.Printf("[main] telegram alerts not configured")
	}
	errService := error_notificator.NewService(alertInfra)

	// =========================================================================
	// CLIENTS (GROQ / TTS)
	// =========================================================================

	groqClient := ai.NewGroqClient()

	standardTTS := speech.NewGoogleTTS(responsesDir)

	var personalizedTTS speech.Synthesizer
	coqui := speech.NewCoquiTTS(
		getenv("TTS_BIN", "tts"),
		getenv("TTS_MODEL_DIR", "model"),
		responsesDir,
	)
	if coqui.Available() {
		personalizedTTS = coqui
	} else {
		log.Printf("[main] trained voice bundle not found, personalized voice disabled")
	}

	// =========================================================================
	// SPEAKER VERIFICATION
	// =========================================================================

	var verifier speaker.Verifier

	referenceVoice := getenv("REFERENCE_VOICE", "audio_saya.mp3")
	encoderScript := getenv("ENCODER_SCRIPT", "scripts/encoder_worker.py")

	if fileExists(referenceVoice) && fileExists(encoderScript) {
		worker, err := speaker.StartEncoderWorker(getenv("ENCODER_PYTHON", "python3"), encoderScript)
		if err != nil {
			log.Printf("[main] encoder worker failed, verification disabled: %v", err)
		} else {
			defer worker.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			v, err := speaker.NewVerifier(ctx, worker, referenceVoice)
			cancel()
			if err != nil {
				log.Printf("[main] reference enrollment failed, verification disabled: %v", err)
			} else {
				verifier = v
			}
		}
	} else {
		log.Printf("[main] reference voice or encoder script missing, verification disabled")
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	promptService := prompts.NewService(prompts.NewRepo())
	summaryService := ai.NewSummaryService(groqClient, promptService, errService)
	speechService := speech.NewService(standardTTS, personalizedTTS)
	store := responses.NewStore()

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// HANDLERS
	audioHandler := delivery.NewAudioHandler(
		groqClient,
		summaryService,
		speechService,
		verifier,
		store,
		errService,
		zl,
	)
	promptHandler := prompts.NewHandler(promptService)

	// ROUTES
	delivery.RegisterRoutes(r, audioHandler, promptHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "suara",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
