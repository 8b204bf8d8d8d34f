package quiz

import "github.com/quizforge/quizforge/internal/schema"

// Section CRUD. Every operation rebuilds the sections sequence and routes it
// through the validated quiz replacement; untouched sections keep their
// relative order, and no implicit sorting is ever applied.

// AddSection appends a schema-defaulted section with a fresh unique id and
// returns it.
func (s *Store) AddSection() (Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addSectionLocked()
}

func (s *Store) addSectionLocked() (Section, error) {
	var sec Section
	seed := map[string]any{"section_id": s.ids.NextID()}
	if err := s.validator.WithDefaults(seed, schema.Section, &sec); err != nil {
		return Section{}, &ValidationError{Schema: string(schema.Section), Err: err}
	}
	// Defaulted lists must stay non-nil so they re-encode as lists, not null.
	if sec.ExercisePool == nil {
		sec.ExercisePool = []ExerciseRef{}
	}
	if sec.Questions == nil {
		sec.Questions = []QuestionRef{}
	}
	next := make([]Section, 0, len(s.quiz.Sections)+1)
	next = append(next, s.quiz.Sections...)
	next = append(next, sec)
	if _, err := s.updateQuizLocked(map[string]any{"sections": next}); err != nil {
		return Section{}, err
	}
	return sec.clone(), nil
}

// UpdateSection shallow-merges updates over the section with the given id,
// keeping its position. Returns NotFoundError when no section matches.
// Replacing the active section's questions drops the selection working set.
func (s *Store) UpdateSection(sectionID string, updates map[string]any) (Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSectionLocked(sectionID, updates)
}

func (s *Store) updateSectionLocked(sectionID string, updates map[string]any) (Section, error) {
	idx := s.sectionIndexLocked(sectionID)
	if idx < 0 {
		return Section{}, &NotFoundError{Kind: "section", ID: sectionID}
	}
	// section_id must stay unique within the quiz.
	if raw, ok := updates["section_id"]; ok {
		if nid, isStr := raw.(string); isStr && nid != sectionID && s.sectionIndexLocked(nid) >= 0 {
			return Section{}, &ValidationError{Schema: string(schema.Section), Reason: "section_id " + nid + " already in use"}
		}
	}
	merged, err := toJSONMap(s.quiz.Sections[idx])
	if err != nil {
		return Section{}, &ValidationError{Schema: string(schema.Section), Reason: "not encodable", Err: err}
	}
	for k, v := range updates {
		merged[k] = v
	}
	next := make([]any, len(s.quiz.Sections))
	for i := range s.quiz.Sections {
		next[i] = s.quiz.Sections[i]
	}
	next[idx] = merged
	if _, err := s.updateQuizLocked(map[string]any{"sections": next}); err != nil {
		return Section{}, err
	}
	if sectionID == s.activeID {
		// Renaming the active section must not leave the pointer dangling;
		// it follows the new id.
		if nid := s.quiz.Sections[idx].SectionID; nid != sectionID {
			s.activeID = nid
		}
		if _, replaced := updates["questions"]; replaced {
			s.selection.Clear()
		}
	}
	return s.quiz.Sections[idx].clone(), nil
}

// RemoveSection deletes the section with the given id. Returns NotFoundError
// when nothing matched (detected by comparing lengths). Removing the active
// section reconciles the pointer immediately: it falls back to the first
// remaining section, or to none.
func (s *Store) RemoveSection(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]Section, 0, len(s.quiz.Sections))
	for _, sec := range s.quiz.Sections {
		if sec.SectionID != sectionID {
			next = append(next, sec)
		}
	}
	if len(next) == len(s.quiz.Sections) {
		return &NotFoundError{Kind: "section", ID: sectionID}
	}
	if _, err := s.updateQuizLocked(map[string]any{"sections": next}); err != nil {
		return err
	}
	if s.activeID == sectionID {
		s.setActiveSectionLocked("")
	}
	return nil
}
