// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/cohort-tools/cohort/schema"

// AssessmentStore defines persistence for normalized scores, one logical
// table per assessment under a shared column set. This allows the analysis
// logic to be tested without a real database.
type AssessmentStore interface {
	// Write replaces the stored rows for an assessment wholesale. An empty
	// row slice is permitted and leaves the assessment discoverable.
	Write(assessmentID string, kind schema.AssessmentKind, rows []schema.NormalizedScore) error

	// Read returns all rows for an assessment. Reading an id that was never
	// written fails with schema.ErrNotFound.
	Read(assessmentID string) ([]schema.NormalizedScore, error)

	// List returns every stored assessment, ordered by id.
	List() ([]schema.AssessmentInfo, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Clear removes all stored assessments and scores.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
