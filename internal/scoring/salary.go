// Package scoring - salary.go scores compensation compatibility.
package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// neutralSalary is returned whenever there is not enough information to
// judge compatibility.
const neutralSalary = 0.5

// salaryRangePattern captures the first two integer runs in a salary
// range string (thousands separators stripped beforehand).
var salaryRangePattern = regexp.MustCompile(`(\d+).*?(\d+)`)

// nonDigitPattern strips everything but digits from a candidate's
// expected-salary text.
var nonDigitPattern = regexp.MustCompile(`[^\d]`)

// SalaryMatch scores a candidate's expected compensation against a job's
// posted range. Within the range scores 1.0; below it, expected/min;
// above it, max/expected. Missing or unparseable input scores 0.5.
//
// This signal is computed for every candidate but is NOT part of the
// default weighted aggregate; the ranking weights sum to 1.0 without it.
// It is surfaced on the match result for callers who want it.
func SalaryMatch(candidateExpected, jobSalaryRange string) float64 {
	if strings.TrimSpace(candidateExpected) == "" || strings.TrimSpace(jobSalaryRange) == "" {
		return neutralSalary
	}

	rangeText := strings.ReplaceAll(jobSalaryRange, ",", "")
	match := salaryRangePattern.FindStringSubmatch(rangeText)
	if match == nil {
		return neutralSalary
	}

	minSalary, errMin := strconv.Atoi(match[1])
	maxSalary, errMax := strconv.Atoi(match[2])
	if errMin != nil || errMax != nil || minSalary <= 0 || maxSalary < minSalary {
		return neutralSalary
	}

	digits := nonDigitPattern.ReplaceAllString(candidateExpected, "")
	expected, err := strconv.Atoi(digits)
	if err != nil {
		return neutralSalary
	}

	switch {
	case expected >= minSalary && expected <= maxSalary:
		return 1.0
	case expected < minSalary:
		return float64(expected) / float64(minSalary)
	default:
		return float64(maxSalary) / float64(expected)
	}
}
