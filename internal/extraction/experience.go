// Package extraction - experience.go estimates years of experience from text.
package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// experiencePatterns are tried in order; the first match wins. Later
// patterns are only consulted when earlier ones fail, so the ordering is
// part of the contract.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`experience\s*(?:of\s*)?\s*(\d+)\+?\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?professional`),
	regexp.MustCompile(`(\d+)\+?\s*yrs?\s*exp`),
}

// experienceRangePattern matches "X to Y years"; the result is the floor
// of the average of the two bounds.
var experienceRangePattern = regexp.MustCompile(`(\d+)\s*to\s*(\d+)\s*years?`)

// Years extracts a years-of-experience estimate from free text. Returns 0
// when no pattern matches.
func Years(text string) int {
	lowered := strings.ToLower(text)

	for _, pattern := range experiencePatterns {
		if match := pattern.FindStringSubmatch(lowered); match != nil {
			years, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			return years
		}
	}

	if match := experienceRangePattern.FindStringSubmatch(lowered); match != nil {
		low, errLow := strconv.Atoi(match[1])
		high, errHigh := strconv.Atoi(match[2])
		if errLow == nil && errHigh == nil {
			return (low + high) / 2
		}
	}

	return 0
}
