package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/quiz"
)

func poolOf(ids ...string) []quiz.ExerciseRef {
	out := make([]quiz.ExerciseRef, 0, len(ids))
	for _, id := range ids {
		out = append(out, quiz.ExerciseRef{ExerciseID: id, Title: "ex " + id, NumAssessments: 5})
	}
	return out
}

// seedPool installs an exercise pool on the active section.
func seedPool(t *testing.T, st *quiz.Store, ids ...string) {
	t.Helper()
	active, ok := st.ActiveSection()
	require.True(t, ok)
	_, err := st.UpdateSection(active.SectionID, map[string]any{"exercise_pool": poolOf(ids...)})
	require.NoError(t, err)
}

func TestSelection_AddIsIdempotent(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)

	st.AddQuestionToSelection("q1")
	st.AddQuestionToSelection("q1")
	st.AddQuestionToSelection("q2")

	assert.Equal(t, []string{"q1", "q2"}, st.SelectedQuestions())
}

func TestSelection_RemoveAbsentIsNoop(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)

	st.AddQuestionToSelection("q1")
	st.RemoveQuestionFromSelection("q9")
	assert.Equal(t, []string{"q1"}, st.SelectedQuestions())

	st.RemoveQuestionFromSelection("q1")
	assert.Empty(t, st.SelectedQuestions())
}

func TestReplaceSelectedQuestions_ReplacesAndClears(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1", "ex2")
	st.AddQuestionToSelection("old-q")

	newQs := []quiz.QuestionRef{
		{QuestionID: "q1", ExerciseID: "ex1", Title: "one"},
		{QuestionID: "q2", ExerciseID: "ex2", Title: "two"},
	}
	sec, err := st.ReplaceSelectedQuestions(newQs)
	require.NoError(t, err)

	assert.Equal(t, newQs[0].QuestionID, sec.Questions[0].QuestionID)
	got := st.ActiveQuestions()
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].QuestionID)
	assert.Equal(t, "q2", got[1].QuestionID)
	assert.Empty(t, st.SelectedQuestions(), "working set must be cleared")
}

func TestReplaceSelectedQuestions_EmptyListClearsQuestions(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1")
	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{{QuestionID: "q1", ExerciseID: "ex1"}})
	require.NoError(t, err)

	_, err = st.ReplaceSelectedQuestions(nil)
	require.NoError(t, err)
	assert.Empty(t, st.ActiveQuestions())
}

func TestReplaceSelectedQuestions_SchemaInvalidLeavesStateAlone(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1")
	st.AddQuestionToSelection("keep")
	before := st.ActiveQuestions()

	// Missing question_id fails the schema.
	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{{ExerciseID: "ex1"}})
	var ve *quiz.ValidationError
	require.ErrorAs(t, err, &ve)

	assert.Equal(t, before, st.ActiveQuestions())
	assert.Equal(t, []string{"keep"}, st.SelectedQuestions(), "selection survives a rejected replace")
}

func TestReplaceSelectedQuestions_DuplicateIDsRejected(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1")

	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{
		{QuestionID: "q1", ExerciseID: "ex1"},
		{QuestionID: "q1", ExerciseID: "ex1"},
	})
	var ve *quiz.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, st.ActiveQuestions())
}

func TestReplaceSelectedQuestions_ExerciseOutsidePoolRejected(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1")

	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{
		{QuestionID: "q1", ExerciseID: "rogue"},
	})
	var ve *quiz.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestReplaceSelectedQuestions_NoActiveSection(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	require.NoError(t, st.RemoveSection(st.AllSections()[0].SectionID))

	_, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{{QuestionID: "q1", ExerciseID: "ex1"}})
	var nf *quiz.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestReplaceSelectedQuestions_AfterActiveRename(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	active, ok := st.ActiveSection()
	require.True(t, ok)
	_, err := st.UpdateSection(active.SectionID, map[string]any{"section_id": "renamed"})
	require.NoError(t, err)
	seedPool(t, st, "ex1")

	sec, err := st.ReplaceSelectedQuestions([]quiz.QuestionRef{
		{QuestionID: "q1", ExerciseID: "ex1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", sec.SectionID)
	require.Len(t, st.ActiveQuestions(), 1)
}

func TestUpdateSection_ReplacingActiveQuestionsClearsSelection(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	seedPool(t, st, "ex1")
	active, _ := st.ActiveSection()
	st.AddQuestionToSelection("q-old")

	_, err := st.UpdateSection(active.SectionID, map[string]any{
		"questions": []quiz.QuestionRef{{QuestionID: "q1", ExerciseID: "ex1"}},
	})
	require.NoError(t, err)
	assert.Empty(t, st.SelectedQuestions())
}

func TestUpdateSection_InactiveQuestionsKeepSelection(t *testing.T) {
	st := newTestStore(t, nil)
	initStore(t, st)
	s2, err := st.AddSection()
	require.NoError(t, err)
	st.AddQuestionToSelection("q1")

	_, err = st.UpdateSection(s2.SectionID, map[string]any{
		"questions": []quiz.QuestionRef{{QuestionID: "qx", ExerciseID: "ex1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, st.SelectedQuestions())
}
