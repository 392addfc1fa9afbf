package gradestore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cohort-tools/cohort/schema"
)

// Write replaces the stored rows for an assessment wholesale inside one
// transaction. Re-ingesting the same file is idempotent: stale rows from a
// prior ingest never survive. An empty row slice still registers the
// assessment so Read can tell "empty" from "never ingested".
func (gs *GradeStoreImpl) Write(assessmentID string, kind schema.AssessmentKind, rows []schema.NormalizedScore) error {
	tx, err := gs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quotedScores := quoteTableName(scoresTable, gs.backend)
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE assessment_id = %s`, quotedScores, gs.placeholder(1))
	if _, err := tx.Exec(deleteQuery, assessmentID); err != nil {
		return fmt.Errorf("failed to clear old rows for %s: %w", assessmentID, err)
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (assessment_id, student_id, question_id, kind, score) VALUES (%s, %s, %s, %s, %s)`,
		quotedScores, gs.placeholder(1), gs.placeholder(2), gs.placeholder(3), gs.placeholder(4), gs.placeholder(5))
	stmt, err := tx.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err := stmt.Exec(assessmentID, row.StudentID, row.QuestionID, string(kind), row.Score); err != nil {
			return fmt.Errorf("failed to insert score for student %s question %s: %w", row.StudentID, row.QuestionID, err)
		}
	}

	if err := gs.upsertAssessment(tx, assessmentID, kind, len(rows)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write for %s: %w", assessmentID, err)
	}
	return nil
}

// upsertAssessment inserts or replaces the registry row for an assessment.
func (gs *GradeStoreImpl) upsertAssessment(tx *sql.Tx, assessmentID string, kind schema.AssessmentKind, rowCount int) error {
	quotedTableName := quoteTableName(assessmentsTable, gs.backend)
	ingestedAt := formatTime(time.Now().UTC(), gs.backend)

	var query string
	switch gs.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (assessment_id, kind, row_count, ingested_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE kind = new.kind, row_count = new.row_count, ingested_at = new.ingested_at`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (assessment_id, kind, row_count, ingested_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (assessment_id) DO UPDATE SET kind = EXCLUDED.kind, row_count = EXCLUDED.row_count, ingested_at = EXCLUDED.ingested_at`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (assessment_id, kind, row_count, ingested_at) VALUES (?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := tx.Exec(query, assessmentID, string(kind), rowCount, ingestedAt); err != nil {
		return fmt.Errorf("failed to register assessment %s: %w", assessmentID, err)
	}
	return nil
}

// Read returns all rows for an assessment in a stable order. An id with no
// registry entry fails with schema.ErrNotFound.
func (gs *GradeStoreImpl) Read(assessmentID string) ([]schema.NormalizedScore, error) {
	kind, err := gs.assessmentKind(assessmentID)
	if err != nil {
		return nil, err
	}

	quotedTableName := quoteTableName(scoresTable, gs.backend)
	query := fmt.Sprintf(`SELECT student_id, question_id, score FROM %s WHERE assessment_id = %s ORDER BY student_id, question_id`,
		quotedTableName, gs.placeholder(1))

	rows, err := gs.db.Query(query, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores for %s: %w", assessmentID, err)
	}
	defer func() { _ = rows.Close() }()

	results := make([]schema.NormalizedScore, 0)
	for rows.Next() {
		score := schema.NormalizedScore{AssessmentID: assessmentID, Kind: kind}
		if err := rows.Scan(&score.StudentID, &score.QuestionID, &score.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		results = append(results, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scores for %s: %w", assessmentID, err)
	}
	return results, nil
}

// assessmentKind looks up the registry entry for an assessment.
func (gs *GradeStoreImpl) assessmentKind(assessmentID string) (schema.AssessmentKind, error) {
	quotedTableName := quoteTableName(assessmentsTable, gs.backend)
	query := fmt.Sprintf(`SELECT kind FROM %s WHERE assessment_id = %s`, quotedTableName, gs.placeholder(1))

	var kind string
	err := gs.db.QueryRow(query, assessmentID).Scan(&kind)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("assessment %s: %w", assessmentID, schema.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up assessment %s: %w", assessmentID, err)
	}
	return schema.AssessmentKind(kind), nil
}

// List returns every stored assessment, ordered by id.
func (gs *GradeStoreImpl) List() ([]schema.AssessmentInfo, error) {
	quotedTableName := quoteTableName(assessmentsTable, gs.backend)
	query := fmt.Sprintf(`SELECT assessment_id, kind, row_count, ingested_at FROM %s ORDER BY assessment_id`, quotedTableName)

	rows, err := gs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AssessmentInfo
	for rows.Next() {
		var info schema.AssessmentInfo
		var kind string

		switch gs.backend {
		case schema.SQLiteBackend:
			var ingestedAtStr string
			if err := rows.Scan(&info.AssessmentID, &kind, &info.RowCount, &ingestedAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan assessment: %w", err)
			}
			info.IngestedAt, err = parseTime(ingestedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse ingested_at: %w", err)
			}
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&info.AssessmentID, &kind, &info.RowCount, &info.IngestedAt); err != nil {
				return nil, fmt.Errorf("failed to scan assessment: %w", err)
			}
		}

		info.Kind = schema.AssessmentKind(kind)
		results = append(results, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the score store.
func (gs *GradeStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(gs.backend),
		Connected:  gs.db != nil,
		TableSizes: make(map[string]int64),
	}

	infos, err := gs.List()
	if err != nil {
		return status, err
	}
	status.TotalAssessments = len(infos)
	for _, info := range infos {
		if info.IngestedAt.After(status.LastIngestedAt) {
			status.LastIngestedAt = info.IngestedAt
		}
	}

	tables := []string{assessmentsTable, scoresTable}
	for _, table := range tables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, gs.backend))
		var count int64
		if err := gs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalScores = status.TableSizes[scoresTable]

	return status, nil
}

// Clear removes all stored assessments and scores.
func (gs *GradeStoreImpl) Clear() error {
	tables := []string{scoresTable, assessmentsTable}
	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, gs.backend))
		if _, err := gs.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (gs *GradeStoreImpl) Close() error {
	if gs.db != nil {
		return gs.db.Close()
	}
	return nil
}

// placeholder returns the n-th query placeholder for the backend.
func (gs *GradeStoreImpl) placeholder(n int) string {
	if gs.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
