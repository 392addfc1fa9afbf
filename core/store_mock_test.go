package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"
)

// mockStore is an in-memory AssessmentStore for analyzer and detector tests.
type mockStore struct {
	assessments map[string]schema.AssessmentKind
	rows        map[string][]schema.NormalizedScore
	writeErr    error
}

var _ contract.AssessmentStore = &mockStore{} // Compile-time check

func newMockStore() *mockStore {
	return &mockStore{
		assessments: make(map[string]schema.AssessmentKind),
		rows:        make(map[string][]schema.NormalizedScore),
	}
}

func (m *mockStore) Write(assessmentID string, kind schema.AssessmentKind, rows []schema.NormalizedScore) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.assessments[assessmentID] = kind
	m.rows[assessmentID] = append([]schema.NormalizedScore(nil), rows...)
	return nil
}

func (m *mockStore) Read(assessmentID string) ([]schema.NormalizedScore, error) {
	if _, ok := m.assessments[assessmentID]; !ok {
		return nil, fmt.Errorf("assessment %s: %w", assessmentID, schema.ErrNotFound)
	}
	return m.rows[assessmentID], nil
}

func (m *mockStore) List() ([]schema.AssessmentInfo, error) {
	ids := make([]string, 0, len(m.assessments))
	for id := range m.assessments {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	infos := make([]schema.AssessmentInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, schema.AssessmentInfo{
			AssessmentID: id,
			Kind:         m.assessments[id],
			RowCount:     len(m.rows[id]),
			IngestedAt:   time.Now(),
		})
	}
	return infos, nil
}

func (m *mockStore) GetStatus() (schema.StoreStatus, error) {
	return schema.StoreStatus{Backend: "mock", Connected: true, TotalAssessments: len(m.assessments)}, nil
}

func (m *mockStore) Clear() error {
	m.assessments = make(map[string]schema.AssessmentKind)
	m.rows = make(map[string][]schema.NormalizedScore)
	return nil
}

func (m *mockStore) Close() error { return nil }

// seed writes rows for an assessment, panicking on error to keep tests terse.
func (m *mockStore) seed(assessmentID string, kind schema.AssessmentKind, scores map[string]map[string]int) {
	var rows []schema.NormalizedScore
	students := make([]string, 0, len(scores))
	for s := range scores {
		students = append(students, s)
	}
	sort.Strings(students)
	for _, student := range students {
		questions := make([]string, 0, len(scores[student]))
		for q := range scores[student] {
			questions = append(questions, q)
		}
		sort.Strings(questions)
		for _, question := range questions {
			rows = append(rows, schema.NormalizedScore{
				StudentID:    student,
				QuestionID:   question,
				AssessmentID: assessmentID,
				Kind:         kind,
				Score:        scores[student][question],
			})
		}
	}
	if err := m.Write(assessmentID, kind, rows); err != nil {
		panic(err)
	}
}
