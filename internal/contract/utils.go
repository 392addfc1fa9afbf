package contract

import (
	"fmt"
	"os"

	"github.com/cohort-tools/cohort/schema"
	"github.com/fatih/color"
)

// Deficit severity label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Deficit severity thresholds on the unified [0, 10000] scale.
const (
	criticalDeficit = 3000
	highDeficit     = 2000
	moderateDeficit = 1000
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label indicating how far behind the
// cohort a flagged student is. This is the core logic used for CSV, JSON,
// and table printing.
func GetPlainLabel(deficit float64) string {
	switch {
	case deficit >= criticalDeficit:
		return CriticalValue
	case deficit >= highDeficit:
		return HighValue
	case deficit >= moderateDeficit:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(deficit float64) string {
	text := GetPlainLabel(deficit)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// FormatKind renders an assessment kind for table cells.
func FormatKind(kind schema.AssessmentKind) string {
	if kind == "" {
		return "unknown"
	}
	return string(kind)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
