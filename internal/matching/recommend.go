package matching

import (
	"context"

	"github.com/marcus/talent-match/internal/types"
)

// maxRecommendations caps the suggestion list.
const maxRecommendations = 5

// skillCluster pairs a set of trigger skills with the adjacent skills
// worth learning next. A candidate holding any trigger skill gets the
// suggestions they do not already have.
type skillCluster struct {
	triggers    []string
	suggestions []string
}

// skillClusters is a fixed market map. Ordering here decides suggestion
// order in the output, which keeps recommendations deterministic even
// though no particular order is promised to callers.
var skillClusters = []skillCluster{
	{
		triggers:    []string{"python", "java", "javascript"},
		suggestions: []string{"django", "flask", "react", "angular", "spring"},
	},
	{
		triggers:    []string{"python", "r", "sql"},
		suggestions: []string{"tensorflow", "pytorch", "pandas", "scikit-learn"},
	},
}

// Recommend proposes up to five skills adjacent to what the candidate
// already knows. A candidate whose skills match no cluster gets an empty
// list, never an error.
func (e *Engine) Recommend(ctx context.Context, candidate *types.CandidateProfile) []string {
	if candidate == nil {
		return []string{}
	}

	current := e.extractor.Skills(ctx, joinTexts(candidate.Skills, candidate.ProfileSummary))

	proposed := types.NewSkillSet()
	for _, cluster := range skillClusters {
		if !intersectsAny(current, cluster.triggers) {
			continue
		}
		for _, suggestion := range cluster.suggestions {
			if !current.Contains(suggestion) {
				proposed.Add(suggestion)
			}
		}
	}

	recommendations := proposed.Slice()
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func intersectsAny(skills *types.SkillSet, triggers []string) bool {
	for _, trigger := range triggers {
		if skills.Contains(trigger) {
			return true
		}
	}
	return false
}
