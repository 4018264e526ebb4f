// Package scoring implements the individual compatibility scorers the
// ranking engine aggregates. Every scorer degrades to a neutral or zero
// score on missing or malformed input; nothing in this package returns an
// error for bad data.
package scoring

import (
	"math"

	"github.com/marcus/talent-match/internal/types"
)

// Round2 rounds to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// SkillsMatch scores the overlap between candidate skills and required
// skills as |intersection| / |required|. Both inputs are normalized to
// lowercase sets first.
//
// An empty or missing input scores 0.0. A required list that normalizes
// to an empty set (for example, only blank tokens) scores 1.0: a job with
// no extractable requirement is satisfied by definition. Excess candidate
// skills never push the score above 1.0.
func SkillsMatch(candidateSkills, requiredSkills []string) float64 {
	if len(candidateSkills) == 0 || len(requiredSkills) == 0 {
		return 0.0
	}

	candidateSet := types.SkillSetOf(candidateSkills...)
	requiredSet := types.SkillSetOf(requiredSkills...)

	if requiredSet.Len() == 0 {
		return 1.0
	}

	matched := candidateSet.Intersect(requiredSet).Len()
	return float64(matched) / float64(requiredSet.Len())
}
