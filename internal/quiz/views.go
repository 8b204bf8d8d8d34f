package quiz

// Derived views. All are pure projections of the canonical quiz, the active
// pointer, the working set, and the channel cache — recomputed on every read,
// never cached.

// Quiz returns a copy of the canonical aggregate.
func (s *Store) Quiz() Quiz {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiz.clone()
}

func (s *Store) AllSections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Section, len(s.quiz.Sections))
	for i := range s.quiz.Sections {
		out[i] = s.quiz.Sections[i].clone()
	}
	return out
}

// ActiveSection resolves the active pointer; ok is false when no section is
// active.
func (s *Store) ActiveSection() (Section, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.activeSectionLocked()
	if !ok {
		return Section{}, false
	}
	return sec.clone(), true
}

func (s *Store) activeSectionLocked() (Section, bool) {
	if s.activeID == "" {
		return Section{}, false
	}
	idx := s.sectionIndexLocked(s.activeID)
	if idx < 0 {
		return Section{}, false
	}
	return s.quiz.Sections[idx], true
}

func (s *Store) ActiveExercisePool() []ExerciseRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.activeSectionLocked()
	if !ok {
		return []ExerciseRef{}
	}
	return append([]ExerciseRef{}, sec.ExercisePool...)
}

func (s *Store) ActiveQuestions() []QuestionRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.activeSectionLocked()
	if !ok {
		return []QuestionRef{}
	}
	return append([]QuestionRef{}, sec.Questions...)
}

// SelectedQuestions returns the current working-set members.
func (s *Store) SelectedQuestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.IDs()
}

// ReplacementPool is the active pool minus the exercises already committed to
// the active questions, in pool order. The UI leans on this to never offer an
// already-used question as a swap-in candidate.
func (s *Store) ReplacementPool() []ExerciseRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.activeSectionLocked()
	if !ok {
		return []ExerciseRef{}
	}
	used := make(map[string]struct{}, len(sec.Questions))
	for _, q := range sec.Questions {
		used[q.ExerciseID] = struct{}{}
	}
	out := []ExerciseRef{}
	for _, ex := range sec.ExercisePool {
		if _, ok := used[ex.ExerciseID]; !ok {
			out = append(out, ex)
		}
	}
	return out
}

// Channels returns the cached channel list from the last successful
// bootstrap.
func (s *Store) Channels() []Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Channel{}, s.channels...)
}
