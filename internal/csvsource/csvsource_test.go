package csvsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() Source {
	return Source{
		Path:         "test.csv",
		AssessmentID: "midterm",
		Kind:         schema.Summative,
	}
}

func TestParseLongFormat(t *testing.T) {
	csv := strings.Join([]string{
		"Student ID,Question ID,Attempt,Score,Max Score",
		"s1,Q1,1,40,50",
		"s1,Q2,1,30,50",
		"s2,Q1,1,25,50",
	}, "\n")

	rows, err := parse(strings.NewReader(csv), testSource())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "s1", rows[0].StudentID)
	assert.Equal(t, "Q1", rows[0].QuestionID)
	assert.Equal(t, "midterm", rows[0].AssessmentID)
	assert.Equal(t, schema.Summative, rows[0].Kind)
	assert.Equal(t, 1, rows[0].AttemptNumber)
	assert.Equal(t, "40", rows[0].RawScore)
	assert.Equal(t, 50.0, rows[0].MaxScore)
}

// TestParseWideFormat exercises "Q n /max" headers, one raw row per question
// cell.
func TestParseWideFormat(t *testing.T) {
	csv := strings.Join([]string{
		"Research ID,Q 1 /100,Q 2 /50",
		"s1,80,40",
		"s2,-,30",
	}, "\n")

	rows, err := parse(strings.NewReader(csv), testSource())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Q1", rows[0].QuestionID)
	assert.Equal(t, 100.0, rows[0].MaxScore)
	assert.Equal(t, "80", rows[0].RawScore)
	assert.Equal(t, "Q2", rows[1].QuestionID)
	assert.Equal(t, 50.0, rows[1].MaxScore)

	// Placeholder cells arrive as empty raw scores for the cleaner
	assert.Equal(t, "s2", rows[2].StudentID)
	assert.Equal(t, "", rows[2].RawScore)
	assert.Equal(t, "30", rows[3].RawScore)
}

// TestParseWideFormatRetakes numbers repeated rows as attempts 1..n in file
// order when no attempt column exists.
func TestParseWideFormatRetakes(t *testing.T) {
	csv := strings.Join([]string{
		"Student ID,Q1/100",
		"s1,60",
		"s1,80",
		"s2,70",
	}, "\n")

	rows, err := parse(strings.NewReader(csv), testSource())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].AttemptNumber)
	assert.Equal(t, 2, rows[1].AttemptNumber)
	assert.Equal(t, 1, rows[2].AttemptNumber) // counter is per student
}

// TestParseLongFormatImplicitAttempts numbers repeats per (student, question)
// when the export has no attempt column.
func TestParseLongFormatImplicitAttempts(t *testing.T) {
	csv := strings.Join([]string{
		"Student ID,Question ID,Score,Max Score",
		"s1,Q1,20,50",
		"s1,Q2,30,50",
		"s1,Q1,40,50",
	}, "\n")

	rows, err := parse(strings.NewReader(csv), testSource())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, rows[0].AttemptNumber)
	assert.Equal(t, 1, rows[1].AttemptNumber) // different question, fresh counter
	assert.Equal(t, 2, rows[2].AttemptNumber)
}

func TestParseColumnOverrides(t *testing.T) {
	src := testSource()
	src.Columns = map[string]string{
		ColStudent:  "Teilnehmer",
		ColQuestion: "Aufgabe",
		ColScore:    "Punkte",
		ColMaxScore: "Maximal",
	}
	csv := strings.Join([]string{
		"Teilnehmer,Aufgabe,Punkte,Maximal",
		"s1,Q1,7,10",
	}, "\n")

	rows, err := parse(strings.NewReader(csv), src)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "s1", rows[0].StudentID)
	assert.Equal(t, "7", rows[0].RawScore)
}

func TestParseUnparseableAttempt(t *testing.T) {
	csv := strings.Join([]string{
		"Student ID,Question ID,Attempt,Score,Max Score",
		"s1,Q1,second,40,50",
	}, "\n")

	rows, err := parse(strings.NewReader(csv), testSource())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].AttemptNumber) // invalid, left for the cleaner
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "no student column", csv: "Foo,Bar\n1,2\n"},
		{name: "no question columns", csv: "Student ID,Notes\ns1,fine\n"},
		{name: "empty file", csv: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(strings.NewReader(tt.csv), testSource())
			assert.Error(t, err)
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	src := testSource()
	src.Path = filepath.Join(t.TempDir(), "nope.csv")
	_, err := ParseFile(src)
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.csv")
	content := "Student ID,Question ID,Score,Max Score\ns1,Q1,5,10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src := testSource()
	src.Path = path
	rows, err := ParseFile(src)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestResolveSource(t *testing.T) {
	cfg := &contract.Config{
		DefaultKind: schema.Summative,
		Sources: []contract.SourceSpec{
			{
				File:       "quiz-1.csv",
				Assessment: "weekly-quiz-1",
				Kind:       string(schema.Formative),
				Columns:    map[string]string{ColStudent: "Research ID"},
			},
		},
	}

	t.Run("matched spec overrides defaults", func(t *testing.T) {
		src := ResolveSource(cfg, "/data/quiz-1.csv")
		assert.Equal(t, "weekly-quiz-1", src.AssessmentID)
		assert.Equal(t, schema.Formative, src.Kind)
		assert.Equal(t, "Research ID", src.Columns[ColStudent])
	})

	t.Run("unmatched file falls back to filename and default kind", func(t *testing.T) {
		src := ResolveSource(cfg, "/data/midterm.csv")
		assert.Equal(t, "midterm", src.AssessmentID)
		assert.Equal(t, schema.Summative, src.Kind)
		assert.Nil(t, src.Columns)
	})
}
