package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/quiz"
)

func TestViews_EmptyWhenNoActiveSection(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	require.NoError(t, st.RemoveSection(st.AllSections()[0].SectionID))

	assert.Empty(t, st.ActiveExercisePool())
	assert.Empty(t, st.ActiveQuestions())
	assert.Empty(t, st.ReplacementPool())
}

func TestReplacementPool_SetDifferenceInPoolOrder(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1", "ex2", "ex3", "ex4")

	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{
		{QuestionID: "q1", ExerciseID: "ex2"},
		{QuestionID: "q2", ExerciseID: "ex4"},
	})
	require.NoError(t, err)

	pool := st.ReplacementPool()
	require.Len(t, pool, 2)
	assert.Equal(t, "ex1", pool[0].ExerciseID)
	assert.Equal(t, "ex3", pool[1].ExerciseID)
}

func TestReplacementPool_FullPoolWhenNoQuestions(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1", "ex2")

	pool := st.ReplacementPool()
	require.Len(t, pool, 2)
	assert.Equal(t, "ex1", pool[0].ExerciseID)
	assert.Equal(t, "ex2", pool[1].ExerciseID)
}

func TestReplacementPool_TracksPoolChanges(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1", "ex2")
	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{
		{QuestionID: "q1", ExerciseID: "ex1"},
	})
	require.NoError(t, err)
	require.Len(t, st.ReplacementPool(), 1)

	// Growing the pool must be reflected immediately.
	seedPool(t, st, "ex1", "ex2", "ex3")
	pool := st.ReplacementPool()
	require.Len(t, pool, 2)
	assert.Equal(t, "ex2", pool[0].ExerciseID)
	assert.Equal(t, "ex3", pool[1].ExerciseID)
}

func TestViews_ReturnCopies(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1")

	pool := st.ActiveExercisePool()
	pool[0].ExerciseID = "mutated"
	assert.Equal(t, "ex1", st.ActiveExercisePool()[0].ExerciseID)

	sections := st.AllSections()
	sections[0].SectionTitle = "mutated"
	assert.Equal(t, "", st.AllSections()[0].SectionTitle)
}
