package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/session"
)

// withStore resolves the session store for the request or replies 404.
func withStore(reg *session.Registry, next func(w http.ResponseWriter, r *http.Request, st *quiz.Store)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := reg.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		next(w, r, st)
	}
}

func GetQuizHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		writeJSON(w, http.StatusOK, st.Quiz())
	})
}

func UpdateQuizHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		var partial map[string]any
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		q, err := st.UpdateQuiz(partial)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	})
}

func AddSectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		sec, err := st.AddSection()
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sec)
	})
}

func UpdateSectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		var updates map[string]any
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sec, err := st.UpdateSection(chi.URLParam(r, "sectionID"), updates)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sec)
	})
}

func RemoveSectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		if err := st.RemoveSection(chi.URLParam(r, "sectionID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func SetActiveSectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		var body struct {
			SectionID string `json:"section_id"`
		}
		// section_id is optional; an empty body means "fall back".
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sec, ok := st.SetActiveSection(body.SectionID)
		writeJSON(w, http.StatusOK, activePayload(sec, ok))
	})
}

func GetActiveSectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		sec, ok := st.ActiveSection()
		writeJSON(w, http.StatusOK, activePayload(sec, ok))
	})
}

func activePayload(sec quiz.Section, ok bool) map[string]any {
	if !ok {
		return map[string]any{"active": false}
	}
	return map[string]any{"active": true, "section": sec}
}

func AddToSelectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		st.AddQuestionToSelection(chi.URLParam(r, "questionID"))
		writeJSON(w, http.StatusOK, map[string]any{"selected": st.SelectedQuestions()})
	})
}

func RemoveFromSelectionHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		st.RemoveQuestionFromSelection(chi.URLParam(r, "questionID"))
		writeJSON(w, http.StatusOK, map[string]any{"selected": st.SelectedQuestions()})
	})
}

func ReplaceQuestionsHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		var qs []quiz.QuestionRef
		if err := json.NewDecoder(r.Body).Decode(&qs); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sec, err := st.ReplaceSelectedQuestions(qs)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sec)
	})
}

func GetChannelsHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		writeJSON(w, http.StatusOK, st.Channels())
	})
}

// GetViewsHandler returns every derived projection in one payload, the way
// the authoring UI consumes them.
func GetViewsHandler(reg *session.Registry) http.HandlerFunc {
	return withStore(reg, func(w http.ResponseWriter, r *http.Request, st *quiz.Store) {
		sec, ok := st.ActiveSection()
		writeJSON(w, http.StatusOK, map[string]any{
			"all_sections":         st.AllSections(),
			"active_section":       activePayload(sec, ok),
			"active_exercise_pool": st.ActiveExercisePool(),
			"active_questions":     st.ActiveQuestions(),
			"selected_questions":   st.SelectedQuestions(),
			"replacement_pool":     st.ReplacementPool(),
			"channels":             st.Channels(),
		})
	})
}
