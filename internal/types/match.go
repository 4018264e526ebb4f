// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult is the scored outcome for one (job, candidate) pair.
// Percentages are on a 0-100 scale rounded to two decimals. The overall
// percentage is the weighted aggregate computed by the ranking engine and
// is never recomputed elsewhere. Semantic similarity contributes to the
// overall score but is not surfaced as its own percentage field, matching
// the shape the platform has always returned.
type MatchResult struct {
	CandidateID     string `json:"candidate_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPosition string `json:"current_position"`
	YearsExperience int    `json:"years_experience"`
	Location        string `json:"location"`

	MatchPercentage float64 `json:"match_percentage"`
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceMatch float64 `json:"experience_match"`
	LocationMatch   float64 `json:"location_match"`

	// SalaryMatch is an optional signal: it is computed for every
	// candidate but deliberately excluded from the weighted overall
	// percentage (the aggregation weights sum to 1.0 without it).
	SalaryMatch float64 `json:"salary_match"`

	MatchingSkills   []string `json:"matching_skills"`
	MissingSkills    []string `json:"missing_skills"`
	AdditionalSkills []string `json:"additional_skills"`
}

// MatchReport is the envelope returned by a ranking pass: the ordered,
// truncated match list plus how many candidates were eligible for scoring.
type MatchReport struct {
	JobTitle                string         `json:"job_title"`
	Company                 string         `json:"company,omitempty"`
	Matches                 []*MatchResult `json:"matches"`
	TotalCandidatesAnalyzed int            `json:"total_candidates_analyzed"`
}
