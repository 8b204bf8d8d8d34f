package quiz

// ExerciseRef is a pool entry: one candidate exercise a section's questions
// may be drawn from.
type ExerciseRef struct {
	ExerciseID     string `json:"exercise_id"`
	Title          string `json:"title,omitempty"`
	NumAssessments int    `json:"num_assessments,omitempty"`
}

// QuestionRef identifies a single assessment item sourced from an exercise.
// It carries enough to render and grade the item without a further fetch.
type QuestionRef struct {
	QuestionID        string `json:"question_id"`
	ExerciseID        string `json:"exercise_id"`
	Title             string `json:"title,omitempty"`
	CounterInExercise int    `json:"counter_in_exercise,omitempty"`
}

type Section struct {
	SectionID             string        `json:"section_id"`
	SectionTitle          string        `json:"section_title"`
	Description           string        `json:"description"`
	ExercisePool          []ExerciseRef `json:"exercise_pool"`
	Questions             []QuestionRef `json:"questions"`
	LearnersSeeFixedOrder bool          `json:"learners_see_fixed_order"`
}

// Quiz is the aggregate root. Section order is display/answer order and is
// preserved by every edit that doesn't explicitly reorder.
type Quiz struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
	Seed     int       `json:"seed"`
}

// KindChannel is the node kind every cached catalog entry is mapped to.
const KindChannel = "channel"

// Channel is a cached catalog entry, populated once per session bootstrap.
type Channel struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Kind         string `json:"kind"`
	IsLeaf       bool   `json:"is_leaf"`
	NumExercises int    `json:"num_exercises,omitempty"`
}

func (s Section) clone() Section {
	out := s
	out.ExercisePool = append([]ExerciseRef{}, s.ExercisePool...)
	out.Questions = append([]QuestionRef{}, s.Questions...)
	return out
}

func (q Quiz) clone() Quiz {
	out := q
	out.Sections = make([]Section, len(q.Sections))
	for i := range q.Sections {
		out.Sections[i] = q.Sections[i].clone()
	}
	return out
}
