package quiz

import (
	"sort"

	"github.com/quizforge/quizforge/internal/schema"
)

// WorkingSet is the duplicate-free set of question ids the user has marked
// for a pending action in the active section. It is ephemeral UI-side state,
// never part of the quiz aggregate.
type WorkingSet struct {
	ids map[string]struct{}
}

func NewWorkingSet() *WorkingSet {
	return &WorkingSet{ids: map[string]struct{}{}}
}

// Add is idempotent: after it returns, the id appears exactly once.
func (w *WorkingSet) Add(questionID string) {
	w.ids[questionID] = struct{}{}
}

// Remove is a no-op when the id is absent.
func (w *WorkingSet) Remove(questionID string) {
	delete(w.ids, questionID)
}

func (w *WorkingSet) Clear() {
	w.ids = map[string]struct{}{}
}

// IDs returns the members sorted. The set itself guarantees no order; sorting
// just makes the view deterministic.
func (w *WorkingSet) IDs() []string {
	out := make([]string, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AddQuestionToSelection marks a question id in the working set.
func (s *Store) AddQuestionToSelection(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Add(questionID)
}

// RemoveQuestionFromSelection unmarks a question id; absent ids are a no-op.
func (s *Store) RemoveQuestionFromSelection(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Remove(questionID)
}

// ReplaceSelectedQuestions replaces the active section's questions with
// newQuestions and clears the working set. Validation happens before any
// state changes, so on failure neither the section nor the selection moves.
// Rejected inputs: questions failing the schema, duplicate question ids, and
// questions whose exercise is not in the active pool.
func (s *Store) ReplaceSelectedQuestions(newQuestions []QuestionRef) (Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	if s.activeID != "" {
		idx = s.sectionIndexLocked(s.activeID)
	}
	if idx < 0 {
		return Section{}, &NotFoundError{Kind: "active section"}
	}
	if newQuestions == nil {
		newQuestions = []QuestionRef{}
	}

	active := s.quiz.Sections[idx]
	pool := make(map[string]struct{}, len(active.ExercisePool))
	for _, ex := range active.ExercisePool {
		pool[ex.ExerciseID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(newQuestions))
	for _, q := range newQuestions {
		if err := s.validator.Validate(q, schema.Question); err != nil {
			return Section{}, &ValidationError{Schema: string(schema.Question), Err: err}
		}
		if _, dup := seen[q.QuestionID]; dup {
			return Section{}, &ValidationError{Schema: string(schema.Question), Reason: "duplicate question id " + q.QuestionID}
		}
		seen[q.QuestionID] = struct{}{}
		if _, ok := pool[q.ExerciseID]; !ok {
			return Section{}, &ValidationError{Schema: string(schema.Question), Reason: "exercise " + q.ExerciseID + " not in active pool"}
		}
	}

	// updateSectionLocked clears the working set once the active section's
	// questions are replaced, which keeps this atomic from the caller's view.
	return s.updateSectionLocked(s.activeID, map[string]any{"questions": newQuestions})
}
