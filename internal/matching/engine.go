// Package matching ranks candidate profiles against a job posting and
// produces skill recommendations.
package matching

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/talent-match/internal/extraction"
	"github.com/marcus/talent-match/internal/nlp"
	"github.com/marcus/talent-match/internal/scoring"
	"github.com/marcus/talent-match/internal/types"
)

// Aggregation weights. They sum to 1.0; the salary signal is computed
// per candidate but carries no weight in the overall score.
const (
	skillsWeight     = 0.35
	semanticWeight   = 0.30
	experienceWeight = 0.20
	locationWeight   = 0.15
)

// DefaultTopN is the match-list cap applied when the caller passes a
// non-positive limit.
const DefaultTopN = 10

// defaultParallelism bounds concurrent per-candidate scoring.
const defaultParallelism = 8

// Engine runs ranking passes. It is safe for concurrent use as long as
// its collaborators are.
type Engine struct {
	extractor   *extraction.Extractor
	embedder    nlp.Embedder
	locations   *scoring.LocationScorer
	logger      *zap.Logger
	parallelism int
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism sets how many candidates are scored concurrently.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// NewEngine creates a ranking engine. embedder may be nil, in which case
// the semantic component scores zero for every candidate.
func NewEngine(extractor *extraction.Extractor, embedder nlp.Embedder, locations *scoring.LocationScorer, logger *zap.Logger, opts ...Option) *Engine {
	if extractor == nil {
		extractor = extraction.NewExtractor(nil, nil, logger)
	}
	if locations == nil {
		locations = scoring.NewLocationScorer(nil, 0, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		extractor:   extractor,
		embedder:    embedder,
		locations:   locations,
		logger:      logger,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank scores every named candidate against the job and returns the top
// topN matches in descending order of overall percentage. Ties keep
// input order. A candidate with an empty full name is skipped silently.
//
// External-capability failures (embedding, entity recognition, geocoding)
// degrade the affected component score for the affected candidates and
// never abort the pass.
func (e *Engine) Rank(ctx context.Context, job *types.JobPosting, candidates []*types.CandidateProfile, topN int) (*types.MatchReport, error) {
	if job == nil {
		return nil, ErrNilJob
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	eligible := make([]*types.CandidateProfile, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || strings.TrimSpace(candidate.FullName) == "" {
			continue
		}
		eligible = append(eligible, candidate)
	}

	requiredSkills := e.extractor.Skills(ctx, joinTexts(job.JobDescription, job.RequiredSkills, job.JobTitle))
	requiredYears := extraction.Years(joinTexts(job.JobDescription, job.ExperienceRequired))

	semanticScores := e.semanticScores(ctx, job, eligible)

	results := make([]*types.MatchResult, len(eligible))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.parallelism)
	for i, candidate := range eligible {
		group.Go(func() error {
			results[i] = e.scoreCandidate(groupCtx, job, candidate, requiredSkills, requiredYears, semanticScores[i])
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].MatchPercentage > results[b].MatchPercentage
	})
	if len(results) > topN {
		results = results[:topN]
	}

	return &types.MatchReport{
		JobTitle:                job.JobTitle,
		Company:                 job.CompanyName,
		Matches:                 results,
		TotalCandidatesAnalyzed: len(eligible),
	}, nil
}

// semanticScores embeds the job profile and every candidate profile in a
// single batch call and returns one cosine similarity per candidate. Any
// embedding failure zeroes the semantic component for the whole pass.
func (e *Engine) semanticScores(ctx context.Context, job *types.JobPosting, candidates []*types.CandidateProfile) []float64 {
	scores := make([]float64, len(candidates))
	if e.embedder == nil || len(candidates) == 0 {
		return scores
	}

	jobProfile := joinTexts(job.JobTitle, job.JobDescription, job.RequiredSkills)
	if strings.TrimSpace(jobProfile) == "" {
		return scores
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, jobProfile)
	for _, candidate := range candidates {
		texts = append(texts, candidateProfileText(candidate))
	}

	vectors, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		e.logger.Warn("batch embedding failed, semantic scores degraded to zero", zap.Error(err))
		return scores
	}

	jobVector := vectors[0]
	for i, candidate := range candidates {
		if strings.TrimSpace(candidateProfileText(candidate)) == "" {
			continue
		}
		scores[i] = scoring.Cosine(jobVector, vectors[i+1])
	}
	return scores
}

// scoreCandidate computes one MatchResult. It never fails; capability
// errors have already been degraded by the component scorers.
func (e *Engine) scoreCandidate(ctx context.Context, job *types.JobPosting, candidate *types.CandidateProfile, requiredSkills *types.SkillSet, requiredYears int, semanticScore float64) *types.MatchResult {
	candidateSkills := e.extractor.Skills(ctx, joinTexts(candidate.Skills, candidate.ProfileSummary, candidate.CurrentPosition))
	candidateYears := resolveCandidateYears(candidate)

	skillsScore := scoring.SkillsMatch(candidateSkills.Slice(), requiredSkills.Slice())
	experienceScore := scoring.ExperienceMatch(candidateYears, requiredYears)
	locationScore := e.locations.Score(ctx, candidate.Location, job.Location)
	salaryScore := scoring.SalaryMatch(candidate.ExpectedSalary, job.SalaryRange)

	overall := skillsScore*skillsWeight +
		semanticScore*semanticWeight +
		experienceScore*experienceWeight +
		locationScore*locationWeight

	return &types.MatchResult{
		CandidateID:      candidate.CandidateID,
		Name:             candidate.FullName,
		Email:            candidate.Email,
		CurrentPosition:  candidate.CurrentPosition,
		YearsExperience:  candidateYears,
		Location:         candidate.Location,
		MatchPercentage:  scoring.Round2(overall * 100),
		SkillsMatch:      scoring.Round2(skillsScore * 100),
		ExperienceMatch:  scoring.Round2(experienceScore * 100),
		LocationMatch:    scoring.Round2(locationScore * 100),
		SalaryMatch:      scoring.Round2(salaryScore * 100),
		MatchingSkills:   candidateSkills.Intersect(requiredSkills).Slice(),
		MissingSkills:    requiredSkills.Difference(candidateSkills).Slice(),
		AdditionalSkills: candidateSkills.Difference(requiredSkills).Slice(),
	}
}

func candidateProfileText(candidate *types.CandidateProfile) string {
	return joinTexts(candidate.CurrentPosition, candidate.Skills, candidate.ProfileSummary)
}

// resolveCandidateYears uses the years field directly when it holds a
// bare number ("3"), and otherwise pattern-extracts from the profile
// summary and the field together ("3 years of experience").
func resolveCandidateYears(candidate *types.CandidateProfile) int {
	if years, err := strconv.Atoi(strings.TrimSpace(candidate.YearsExperience)); err == nil && years >= 0 {
		return years
	}
	return extraction.Years(joinTexts(candidate.ProfileSummary, candidate.YearsExperience))
}

// joinTexts concatenates non-empty parts with single spaces.
func joinTexts(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
