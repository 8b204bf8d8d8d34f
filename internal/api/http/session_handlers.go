package http

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/session"
)

// CreateSessionHandler opens a new authoring session: a fresh store with a
// defaulted quiz, one default section already active, and the channel
// bootstrap running in the background.
func CreateSessionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The catalog bootstrap outlives the request; only cancellation is
		// stripped, request-scoped values stay for logging.
		id, st, boot, err := reg.Create(context.WithoutCancel(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		go func() {
			if err := <-boot; err != nil {
				log.Printf("session %s: channel bootstrap failed: %v", id, err)
			}
		}()
		writeJSON(w, http.StatusCreated, map[string]any{
			"session_id": id,
			"quiz":       st.Quiz(),
		})
	}
}

func EndSessionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !reg.End(chi.URLParam(r, "sessionID")) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
