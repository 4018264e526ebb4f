package scoring

// ExperienceMatch scores a candidate's years of experience against a
// job's requirement. Meeting or exceeding the requirement scores 1.0;
// falling short scores proportionally. A job with no stated requirement
// accepts everyone.
func ExperienceMatch(candidateYears, requiredYears int) float64 {
	if requiredYears <= 0 {
		return 1.0
	}
	if candidateYears >= requiredYears {
		return 1.0
	}
	if candidateYears < 0 {
		return 0.0
	}
	return float64(candidateYears) / float64(requiredYears)
}
