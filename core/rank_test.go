package core

import (
	"testing"

	"github.com/cohort-tools/cohort/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankFlags(t *testing.T) {
	flags := []schema.UnderperformanceFlag{
		{StudentID: "s1", SummativeAssessmentID: "final", Deficit: 500},
		{StudentID: "s3", SummativeAssessmentID: "midterm", Deficit: 3000},
		{StudentID: "s2", SummativeAssessmentID: "midterm", Deficit: 500},
		{StudentID: "s1", SummativeAssessmentID: "midterm", Deficit: 500},
	}

	rankFlags(flags)

	assert.Equal(t, "s3", flags[0].StudentID)
	// Ties: student id, then assessment id
	assert.Equal(t, "final", flags[1].SummativeAssessmentID)
	assert.Equal(t, "s1", flags[1].StudentID)
	assert.Equal(t, "midterm", flags[2].SummativeAssessmentID)
	assert.Equal(t, "s1", flags[2].StudentID)
	assert.Equal(t, "s2", flags[3].StudentID)
}

func TestLimitFlags(t *testing.T) {
	flags := []schema.UnderperformanceFlag{
		{StudentID: "s1"}, {StudentID: "s2"}, {StudentID: "s3"},
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "truncates", limit: 2, want: 2},
		{name: "limit above length", limit: 10, want: 3},
		{name: "zero keeps all", limit: 0, want: 3},
		{name: "negative keeps all", limit: -1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, limitFlags(flags, tt.limit), tt.want)
		})
	}
}

func TestQuestionLess(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "numeric suffix", a: "Q2", b: "Q10", want: true},
		{name: "numeric suffix reversed", a: "Q10", b: "Q2", want: false},
		{name: "equal", a: "Q3", b: "Q3", want: false},
		{name: "different prefixes fall back to strings", a: "A9", b: "B1", want: true},
		{name: "no suffix falls back to strings", a: "essay", b: "q1", want: true},
		{name: "mixed suffix presence", a: "Q1", b: "Qx", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, questionLess(tt.a, tt.b))
		})
	}
}

func TestSortIngestResults(t *testing.T) {
	results := []schema.FileIngestResult{
		{Path: "c.csv"},
		{Path: "a.csv"},
		{Path: "b.csv"},
	}

	sortIngestResults(results)

	assert.Equal(t, "a.csv", results[0].Path)
	assert.Equal(t, "b.csv", results[1].Path)
	assert.Equal(t, "c.csv", results[2].Path)
}
