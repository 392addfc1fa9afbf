package core

import (
	"sort"
	"strconv"

	"github.com/cohort-tools/cohort/schema"
)

// rankFlags orders flags by descending deficit so the largest gaps surface
// first, with student id as a deterministic tie-break.
func rankFlags(flags []schema.UnderperformanceFlag) {
	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Deficit != flags[j].Deficit {
			return flags[i].Deficit > flags[j].Deficit
		}
		if flags[i].StudentID != flags[j].StudentID {
			return flags[i].StudentID < flags[j].StudentID
		}
		return flags[i].SummativeAssessmentID < flags[j].SummativeAssessmentID
	})
}

// limitFlags truncates a ranked flag list to at most limit entries.
// A non-positive limit means no truncation.
func limitFlags(flags []schema.UnderperformanceFlag, limit int) []schema.UnderperformanceFlag {
	if limit > 0 && len(flags) > limit {
		return flags[:limit]
	}
	return flags
}

// sortIngestResults restores a stable path order after the worker pool
// delivers results in completion order.
func sortIngestResults(results []schema.FileIngestResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
}

// questionLess compares question ids numerically when both carry a trailing
// number with a shared prefix, so Q2 sorts before Q10. Anything else falls
// back to plain string order.
func questionLess(a, b string) bool {
	pa, na, oka := splitTrailingNumber(a)
	pb, nb, okb := splitTrailingNumber(b)
	if oka && okb && pa == pb {
		return na < nb
	}
	return a < b
}

func splitTrailingNumber(s string) (prefix string, n int, ok bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}
