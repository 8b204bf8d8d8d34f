package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/session"
)

// MountSessions wires the full authoring operation surface under /sessions.
func MountSessions(r chi.Router, reg *session.Registry) {
	r.Post("/sessions", CreateSessionHandler(reg))
	r.Route("/sessions/{sessionID}", func(sr chi.Router) {
		sr.Delete("/", EndSessionHandler(reg))

		sr.Get("/quiz", GetQuizHandler(reg))
		sr.Patch("/quiz", UpdateQuizHandler(reg))

		sr.Post("/sections", AddSectionHandler(reg))
		sr.Patch("/sections/{sectionID}", UpdateSectionHandler(reg))
		sr.Delete("/sections/{sectionID}", RemoveSectionHandler(reg))

		sr.Put("/active-section", SetActiveSectionHandler(reg))
		sr.Get("/active-section", GetActiveSectionHandler(reg))

		sr.Put("/selection/{questionID}", AddToSelectionHandler(reg))
		sr.Delete("/selection/{questionID}", RemoveFromSelectionHandler(reg))
		sr.Put("/questions", ReplaceQuestionsHandler(reg))

		sr.Get("/channels", GetChannelsHandler(reg))
		sr.Get("/views", GetViewsHandler(reg))
	})
}
