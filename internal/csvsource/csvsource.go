// Package csvsource reads raw assessment CSV exports into RawRow streams.
//
// Exports come in two shapes. The wide shape has one row per attempt with a
// score column per question, headers like "Q 1 /100" declaring the question
// max. The long shape has one row per (attempt, question) with explicit
// question, score and max score columns. Header names vary per source and
// are mapped to canonical fields through a per-source column map; anything
// unmapped falls back to common defaults and the "Q n /max" pattern.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/cohort-tools/cohort/schema"
)

// Canonical column keys accepted in a source's columns map.
const (
	ColStudent  = "student"
	ColQuestion = "question"
	ColAttempt  = "attempt"
	ColScore    = "score"
	ColMaxScore = "max_score"
)

// Default header names tried when a source has no explicit mapping.
var defaultHeaders = map[string][]string{
	ColStudent:  {"research id", "student id", "student", "id"},
	ColQuestion: {"question id", "question"},
	ColAttempt:  {"attempt", "attempt number"},
	ColScore:    {"score", "raw score", "grade"},
	ColMaxScore: {"max score", "max"},
}

// questionHeaderRe matches wide-format question headers like "Q 1 /100" or
// "Q10/2000", capturing the question number and its declared max score.
var questionHeaderRe = regexp.MustCompile(`^[Qq]\s*(\d+)\s*/\s*(\d+(?:\.\d+)?)$`)

// Source describes one CSV file to ingest.
type Source struct {
	Path         string
	AssessmentID string
	Kind         schema.AssessmentKind
	Columns      map[string]string // canonical key -> header name overrides
}

// ResolveSource builds a Source for a file argument, merging any matching
// spec from the config file. The assessment id defaults to the base filename
// without extension.
func ResolveSource(cfg *contract.Config, path string) Source {
	src := Source{
		Path:         path,
		AssessmentID: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Kind:         cfg.DefaultKind,
	}
	spec, ok := cfg.SourceForFile(path)
	if !ok {
		return src
	}
	if spec.Assessment != "" {
		src.AssessmentID = spec.Assessment
	}
	if spec.Kind != "" {
		src.Kind = schema.AssessmentKind(spec.Kind)
	}
	src.Columns = spec.Columns
	return src
}

// ParseFile reads one CSV export into RawRow values. A row is emitted per
// (attempt, question) cell; no validation happens here beyond structure --
// the cleaner owns type coercion and rejection. Errors are file-level and
// fatal for this file only.
func ParseFile(src Source) ([]schema.RawRow, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src.Path, err)
	}
	defer func() { _ = f.Close() }()
	return parse(f, src)
}

// parse is split from ParseFile so tests can feed readers directly.
func parse(r io.Reader, src Source) ([]schema.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", src.Path, err)
	}
	layout, err := resolveLayout(header, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}

	var rows []schema.RawRow
	attempts := make(map[string]int) // occurrence counter when no attempt column
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.Path, err)
		}
		rows = append(rows, layout.expand(record, src, attempts)...)
	}
	return rows, nil
}

// layout holds resolved column indexes for one file. Long format uses
// question/score/maxScore; wide format uses the questions slice.
type layout struct {
	student   int
	attempt   int // -1 when absent
	question  int
	score     int
	maxScore  int
	questions []questionColumn
}

type questionColumn struct {
	index      int
	questionID string
	maxScore   float64
}

func (l *layout) wide() bool { return len(l.questions) > 0 }

// resolveLayout maps stripped header names onto canonical fields. The wide
// shape is the fallback when no explicit question column resolves.
func resolveLayout(header []string, src Source) (*layout, error) {
	stripped := make([]string, len(header))
	for i, h := range header {
		stripped[i] = strings.TrimSpace(h)
	}

	find := func(key string) int {
		if name, ok := src.Columns[key]; ok {
			for i, h := range stripped {
				if strings.EqualFold(h, name) {
					return i
				}
			}
			return -1
		}
		for _, name := range defaultHeaders[key] {
			for i, h := range stripped {
				if strings.EqualFold(h, name) {
					return i
				}
			}
		}
		return -1
	}

	l := &layout{
		student: find(ColStudent),
		attempt: find(ColAttempt),
	}
	if l.student < 0 {
		return nil, fmt.Errorf("no student id column found (headers: %v)", stripped)
	}

	l.question = find(ColQuestion)
	l.score = find(ColScore)
	l.maxScore = find(ColMaxScore)
	if l.question >= 0 && l.score >= 0 && l.maxScore >= 0 {
		return l, nil
	}

	for i, h := range stripped {
		m := questionHeaderRe.FindStringSubmatch(h)
		if m == nil {
			continue
		}
		maxScore, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		l.questions = append(l.questions, questionColumn{
			index:      i,
			questionID: "Q" + m[1],
			maxScore:   maxScore,
		})
	}
	if len(l.questions) == 0 {
		return nil, fmt.Errorf("no question columns found (headers: %v)", stripped)
	}
	return l, nil
}

// expand converts one CSV record into per-question raw rows.
func (l *layout) expand(record []string, src Source, attempts map[string]int) []schema.RawRow {
	cell := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		v := strings.TrimSpace(record[i])
		if v == "-" {
			// Placeholder for "not attempted" in several export tools.
			return ""
		}
		return v
	}

	studentID := cell(l.student)

	if l.wide() {
		attemptNo := l.attemptNumber(record, studentID, attempts)
		rows := make([]schema.RawRow, 0, len(l.questions))
		for _, q := range l.questions {
			rows = append(rows, schema.RawRow{
				StudentID:     studentID,
				QuestionID:    q.questionID,
				AssessmentID:  src.AssessmentID,
				Kind:          src.Kind,
				AttemptNumber: attemptNo,
				RawScore:      cell(q.index),
				MaxScore:      q.maxScore,
			})
		}
		return rows
	}

	maxScore, _ := strconv.ParseFloat(cell(l.maxScore), 64)
	questionID := cell(l.question)
	attemptKey := studentID + "\x00" + questionID
	attemptNo := l.attemptNumber(record, attemptKey, attempts)
	return []schema.RawRow{{
		StudentID:     studentID,
		QuestionID:    questionID,
		AssessmentID:  src.AssessmentID,
		Kind:          src.Kind,
		AttemptNumber: attemptNo,
		RawScore:      cell(l.score),
		MaxScore:      maxScore,
	}}
}

// attemptNumber reads the attempt column when present, otherwise numbers
// attempts 1..n in file order per key. Retakes exported as repeated rows
// keep their relative order that way.
func (l *layout) attemptNumber(record []string, key string, attempts map[string]int) int {
	if l.attempt >= 0 && l.attempt < len(record) {
		if n, err := strconv.Atoi(strings.TrimSpace(record[l.attempt])); err == nil {
			return n
		}
		return 0 // present but unparseable; cleaner rejects it
	}
	attempts[key]++
	return attempts[key]
}
