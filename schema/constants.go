package schema

// Custom string types for type safety.
type (
	// AssessmentKind distinguishes graded from practice assessments.
	AssessmentKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the store.
	DatabaseBackend string

	// DropReason classifies why the cleaner rejected a raw row.
	DropReason string
)

// All assessment kinds supported.
const (
	Summative AssessmentKind = "summative" // graded, contributes to the final outcome
	Formative AssessmentKind = "formative" // practice, measures engagement
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// All drop reasons reported by the cleaner.
const (
	DropMissingID       DropReason = "missing_id"         // blank student, question or assessment id
	DropBadMaxScore     DropReason = "bad_max_score"      // max score absent, zero or negative
	DropMissingScore    DropReason = "missing_score"      // raw score absent or non-numeric
	DropScoreOutOfRange DropReason = "score_out_of_range" // raw score outside [0, max]
	DropBadAttempt      DropReason = "bad_attempt"        // attempt number below 1
)

// AllDropReasons lists drop reasons in reporting order.
var AllDropReasons = []DropReason{
	DropMissingID,
	DropBadMaxScore,
	DropMissingScore,
	DropScoreOutOfRange,
	DropBadAttempt,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidAssessmentKinds lists all valid assessment kinds.
var ValidAssessmentKinds = map[AssessmentKind]struct{}{
	Summative: {},
	Formative: {},
}
