package delivery

import (
	"suara/internal/prompts"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hAudio *AudioHandler,
	hPrompts *prompts.Handler,
) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- audio pipeline ---
		pr.Post("/process_audio", hAudio.ProcessAudio)
		pr.Get("/get_response_audio", hAudio.GetResponseAudio)
		pr.Get("/get_transcription_audio", hAudio.GetTranscriptionAudio)

		// --- prompts ---
		pr.Get("/prompts", hPrompts.List)
	})
}
