// Package scoring - location.go scores geographic/remote compatibility.
package scoring

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcus/talent-match/internal/geo"
)

// Distance bands for geocoded locations, in kilometers.
const (
	sameCityKm  = 50
	commuteKm   = 100
	sameAreaKm  = 500
	neutralLoc  = 0.5
	partialLoc  = 0.7
	mismatchLoc = 0.3
)

// LocationScorer scores compatibility between a candidate's location and
// a job's location.
type LocationScorer struct {
	geocoder geo.Geocoder
	timeout  time.Duration
	logger   *zap.Logger
}

// NewLocationScorer creates a location scorer. The geocoder may be nil,
// in which case scoring always uses the string-comparison fallback.
// timeout bounds each geocoding call; zero means no bound.
func NewLocationScorer(geocoder geo.Geocoder, timeout time.Duration, logger *zap.Logger) *LocationScorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationScorer{geocoder: geocoder, timeout: timeout, logger: logger}
}

// Score returns a compatibility score in [0,1]:
//
//  1. either location missing: 0.5 (neutral)
//  2. either location mentions "remote": 1.0
//  3. both geocode: banded by great-circle distance
//     (<50km 1.0, <100km 0.8, <500km 0.5, else 0.2)
//  4. geocoding unavailable, failed, or timed out: string fallback
//     (exact match 1.0, shared token 0.7, otherwise 0.3)
//
// Geocoding failures never propagate past this method.
func (s *LocationScorer) Score(ctx context.Context, candidateLocation, jobLocation string) float64 {
	if strings.TrimSpace(candidateLocation) == "" || strings.TrimSpace(jobLocation) == "" {
		return neutralLoc
	}

	candidateLower := strings.ToLower(candidateLocation)
	jobLower := strings.ToLower(jobLocation)

	if strings.Contains(candidateLower, "remote") || strings.Contains(jobLower, "remote") {
		return 1.0
	}

	if s.geocoder != nil {
		if score, ok := s.geocodedScore(ctx, candidateLocation, jobLocation); ok {
			return score
		}
	}

	return stringFallback(candidateLower, jobLower)
}

// geocodedScore attempts the distance-band scoring path. ok is false when
// either location cannot be resolved and the caller should fall back.
func (s *LocationScorer) geocodedScore(ctx context.Context, candidateLocation, jobLocation string) (float64, bool) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	candidatePoint, err := s.geocoder.Geocode(ctx, candidateLocation)
	if err != nil {
		s.logger.Debug("geocoding failed", zap.String("location", candidateLocation), zap.Error(err))
		return 0, false
	}
	jobPoint, err := s.geocoder.Geocode(ctx, jobLocation)
	if err != nil {
		s.logger.Debug("geocoding failed", zap.String("location", jobLocation), zap.Error(err))
		return 0, false
	}
	if candidatePoint == nil || jobPoint == nil {
		return 0, false
	}

	distance := geo.DistanceKm(*candidatePoint, *jobPoint)
	switch {
	case distance < sameCityKm:
		return 1.0, true
	case distance < commuteKm:
		return 0.8, true
	case distance < sameAreaKm:
		return 0.5, true
	default:
		return 0.2, true
	}
}

func stringFallback(candidateLower, jobLower string) float64 {
	if candidateLower == jobLower {
		return 1.0
	}
	for _, token := range strings.Fields(candidateLower) {
		if strings.Contains(jobLower, token) {
			return partialLoc
		}
	}
	return mismatchLoc
}
