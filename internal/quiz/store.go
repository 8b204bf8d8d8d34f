package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/idgen"
	"github.com/quizforge/quizforge/internal/schema"
)

// Store is the aggregate root for one authoring session. It owns the
// canonical Quiz value, the active-section pointer, the selection working
// set, and the channel cache. Every whole-aggregate write passes through the
// schema validator before it replaces the canonical value, so no code path
// can install an invalid Quiz.
type Store struct {
	mu        sync.RWMutex
	validator schema.Validator
	ids       idgen.Source
	directory catalog.Directory

	quiz      Quiz
	activeID  string // "" means no active section
	selection *WorkingSet
	channels  []Channel
}

func NewStore(v schema.Validator, ids idgen.Source, dir catalog.Directory) *Store {
	return &Store{
		validator: v,
		ids:       ids,
		directory: dir,
		selection: NewWorkingSet(),
	}
}

// InitializeQuiz resets the canonical quiz to a schema-defaulted empty value,
// creates one default section, points the active pointer at it, and kicks off
// the channel bootstrap. The returned channel reports the bootstrap outcome;
// nobody is required to read it (it is buffered).
func (s *Store) InitializeQuiz(ctx context.Context) (<-chan error, error) {
	s.mu.Lock()
	var q Quiz
	if err := s.validator.WithDefaults(map[string]any{}, schema.Quiz, &q); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("default quiz: %w", err)
	}
	if q.Sections == nil {
		q.Sections = []Section{}
	}
	s.quiz = q
	s.activeID = ""
	s.selection.Clear()
	sec, err := s.addSectionLocked()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.activeID = sec.SectionID
	s.mu.Unlock()
	return s.bootstrapChannels(ctx), nil
}

// UpdateQuiz shallow-merges partial over the canonical quiz, validates the
// result, and atomically replaces the canonical value. A ValidationError
// leaves the quiz byte-for-byte unchanged.
func (s *Store) UpdateQuiz(partial map[string]any) (Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prevID := s.activeID
	var prevQuestions []QuestionRef
	if idx := s.sectionIndexLocked(prevID); idx >= 0 {
		prevQuestions = s.quiz.Sections[idx].Questions
	}
	q, err := s.updateQuizLocked(partial)
	if err != nil {
		return Quiz{}, err
	}
	// A wholesale sections rewrite can drop the active section; re-resolve so
	// the pointer never dangles. When the active section survives but its
	// questions were replaced, the working set is stale and is dropped.
	if _, rewrote := partial["sections"]; rewrote {
		s.setActiveSectionLocked(s.activeID)
		if s.activeID == prevID {
			if idx := s.sectionIndexLocked(s.activeID); idx >= 0 &&
				!reflect.DeepEqual(prevQuestions, s.quiz.Sections[idx].Questions) {
				s.selection.Clear()
			}
		}
	}
	return q, nil
}

// updateQuizLocked is the sole gate through which whole-aggregate writes
// pass; section CRUD routes its rebuilt sections sequence through here.
func (s *Store) updateQuizLocked(partial map[string]any) (Quiz, error) {
	cur, err := toJSONMap(s.quiz)
	if err != nil {
		return Quiz{}, fmt.Errorf("encode quiz: %w", err)
	}
	for k, v := range partial {
		cur[k] = v
	}
	if err := s.validator.Validate(cur, schema.Quiz); err != nil {
		return Quiz{}, &ValidationError{Schema: string(schema.Quiz), Err: err}
	}
	var next Quiz
	if err := fromJSONMap(cur, &next); err != nil {
		return Quiz{}, &ValidationError{Schema: string(schema.Quiz), Reason: "not decodable", Err: err}
	}
	s.quiz = next
	return next.clone(), nil
}

// SetActiveSection points the active pointer at sectionID if it resolves.
// A missing or empty id falls back to the first section, or to none when the
// quiz has no sections, so the UI is never left without a section to show
// while one exists. Changing the pointer drops the selection working set,
// which is scoped to the active section.
func (s *Store) SetActiveSection(sectionID string) (Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setActiveSectionLocked(sectionID)
}

func (s *Store) setActiveSectionLocked(sectionID string) (Section, bool) {
	prev := s.activeID
	idx := -1
	if sectionID != "" {
		idx = s.sectionIndexLocked(sectionID)
	}
	switch {
	case idx >= 0:
		s.activeID = sectionID
	case len(s.quiz.Sections) > 0:
		s.activeID = s.quiz.Sections[0].SectionID
	default:
		s.activeID = ""
	}
	if s.activeID != prev {
		s.selection.Clear()
	}
	if s.activeID == "" {
		return Section{}, false
	}
	return s.quiz.Sections[s.sectionIndexLocked(s.activeID)].clone(), true
}

// bootstrapChannels fetches the channel catalog and replaces the cache on
// success. On failure the previous cache stays; overlapping bootstraps are
// last-writer-wins.
func (s *Store) bootstrapChannels(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		raw, err := s.directory.FetchChannels(ctx, catalog.Filter{HasExercises: true, Available: true})
		if err != nil {
			done <- err
			return
		}
		chs := make([]Channel, 0, len(raw))
		for _, rc := range raw {
			chs = append(chs, Channel{
				ID:           rc.Root,
				Title:        rc.Name,
				Kind:         KindChannel,
				IsLeaf:       false,
				NumExercises: rc.NumExercises,
			})
		}
		s.mu.Lock()
		s.channels = chs
		s.mu.Unlock()
		done <- nil
	}()
	return done
}

func (s *Store) sectionIndexLocked(sectionID string) int {
	for i := range s.quiz.Sections {
		if s.quiz.Sections[i].SectionID == sectionID {
			return i
		}
	}
	return -1
}

func toJSONMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromJSONMap(m map[string]any, out any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
