package core

import (
	"testing"

	"github.com/cohort-tools/cohort/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector(store *mockStore, minAttempts int) *UnderperformanceDetector {
	return NewUnderperformanceDetector(NewCohortAnalyzer(store), store, minAttempts)
}

func TestDetectFlagsBelowMean(t *testing.T) {
	store := newMockStore()
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 9000},
		"s2": {"Q1": 3000},
	})
	store.seed("quiz-1", schema.Formative, map[string]map[string]int{
		"s2": {"Q1": 4000},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 1)

	flag := flags[0]
	assert.Equal(t, "s2", flag.StudentID)
	assert.Equal(t, "midterm", flag.SummativeAssessmentID)
	assert.Equal(t, 3000.0, flag.StudentScore)
	assert.Equal(t, 6000.0, flag.CohortMean)
	assert.Equal(t, 3000.0, flag.Deficit)
	assert.Equal(t, 1, flag.FormativeAttempts)
	assert.Equal(t, "quiz-1", flag.WeakestFormativeID)
	require.NotNil(t, flag.WeakestFormativeScore)
	assert.Equal(t, 4000.0, *flag.WeakestFormativeScore)
}

// TestDetectAtOrAboveMeanNotFlagged checks the strict below-mean rule:
// scoring exactly the cohort mean is not a deficit.
func TestDetectAtOrAboveMeanNotFlagged(t *testing.T) {
	store := newMockStore()
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 5000},
		"s2": {"Q1": 5000},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	assert.Empty(t, flags)
}

func TestDetectWeakestFormative(t *testing.T) {
	store := newMockStore()
	store.seed("final", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 8000},
		"s2": {"Q1": 2000},
	})
	store.seed("quiz-1", schema.Formative, map[string]map[string]int{
		"s2": {"Q1": 7000},
	})
	store.seed("quiz-2", schema.Formative, map[string]map[string]int{
		"s2": {"Q1": 3000},
	})
	store.seed("quiz-3", schema.Formative, map[string]map[string]int{
		"s2": {"Q1": 6000},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, 3, flags[0].FormativeAttempts)
	assert.Equal(t, "quiz-2", flags[0].WeakestFormativeID)
	assert.Equal(t, 3000.0, *flags[0].WeakestFormativeScore)
}

// TestDetectNoFormativeHistory verifies a student with zero formative
// records is still flagged, with empty formative fields.
func TestDetectNoFormativeHistory(t *testing.T) {
	store := newMockStore()
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 8000},
		"s2": {"Q1": 2000},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, 0, flags[0].FormativeAttempts)
	assert.Empty(t, flags[0].WeakestFormativeID)
	assert.Nil(t, flags[0].WeakestFormativeScore)
}

func TestDetectMinAttemptsFilter(t *testing.T) {
	store := newMockStore()
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 9000},
		"s2": {"Q1": 3000}, // one formative attempt
		"s3": {"Q1": 2000}, // none
	})
	store.seed("quiz-1", schema.Formative, map[string]map[string]int{
		"s2": {"Q1": 5000},
	})

	flags, err := newDetector(store, 1).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "s2", flags[0].StudentID)

	// Zero disables the filter entirely
	flags, err = newDetector(store, 0).Detect()
	require.NoError(t, err)
	assert.Len(t, flags, 2)
}

// TestDetectZeroScoreFormativeNotAnAttempt checks that a formative record
// with score zero still counts toward the weakest signal but not toward the
// attempt count.
func TestDetectZeroScoreFormativeNotAnAttempt(t *testing.T) {
	store := newMockStore()
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 9000},
		"s2": {"Q1": 3000},
	})
	store.seed("quiz-1", schema.Formative, map[string]map[string]int{
		"s2": {"Q1": 0},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, 0, flags[0].FormativeAttempts)
	assert.Equal(t, "quiz-1", flags[0].WeakestFormativeID)
}

func TestDetectOrdering(t *testing.T) {
	store := newMockStore()
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 9000},
		"s2": {"Q1": 1000},
		"s3": {"Q1": 4000},
		"s4": {"Q1": 4000},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 3)

	// Largest deficit first, tied deficits ordered by student id
	assert.Equal(t, "s2", flags[0].StudentID)
	assert.Equal(t, "s3", flags[1].StudentID)
	assert.Equal(t, "s4", flags[2].StudentID)
	assert.Equal(t, flags[1].Deficit, flags[2].Deficit)
}

func TestDetectSkipsEmptySummative(t *testing.T) {
	store := newMockStore()
	store.seed("cancelled", schema.Summative, nil)
	store.seed("midterm", schema.Summative, map[string]map[string]int{
		"s1": {"Q1": 6000},
		"s2": {"Q1": 2000},
	})

	flags, err := newDetector(store, 0).Detect()
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, "midterm", flags[0].SummativeAssessmentID)
}
