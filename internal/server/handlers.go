package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marcus/talent-match/internal/store"
	"github.com/marcus/talent-match/internal/types"
)

// recordTimestamp is the created-at layout used by the record store.
const recordTimestamp = "2006-01-02 15:04:05"

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the platform's error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "talent-match",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleListJobs returns all job postings.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"jobs":    jobs,
		"count":   len(jobs),
	})
}

// handleCreateJob stores a new job posting.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var job types.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(job.JobTitle) == "" {
		writeError(w, http.StatusBadRequest, "job_title is required")
		return
	}

	now := time.Now()
	job.JobID = store.NewJobID(now)
	job.CreatedAt = now.Format(recordTimestamp)
	job.Status = "active"

	if err := s.store.AddJob(r.Context(), &job); err != nil {
		s.logger.Error("failed to add job", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to add job")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"job_id":  job.JobID,
		"message": "Job posted successfully",
	})
}

// handleGetJob returns one job posting by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		s.logger.Error("failed to get job", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"job":     job,
	})
}

// handleListCandidates returns all candidates.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.store.ListCandidates(r.Context())
	if err != nil {
		s.logger.Error("failed to list candidates", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"candidates": candidates,
		"count":      len(candidates),
	})
}

// handleCreateCandidate stores a new candidate profile.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var candidate types.CandidateProfile
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(candidate.FullName) == "" {
		writeError(w, http.StatusBadRequest, "full_name is required")
		return
	}

	now := time.Now()
	candidate.CandidateID = store.NewCandidateID(now)
	candidate.CreatedAt = now.Format(recordTimestamp)
	candidate.Status = "active"

	if err := s.store.AddCandidate(r.Context(), &candidate); err != nil {
		s.logger.Error("failed to add candidate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to add candidate")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":      true,
		"candidate_id": candidate.CandidateID,
		"message":      "Candidate added successfully",
	})
}

// handleGetCandidate returns one candidate by ID.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.store.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		s.logger.Error("failed to get candidate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get candidate")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"candidate": candidate,
	})
}

// handleFindMatches ranks all stored candidates against a job posting
// supplied in the request body.
func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	var job types.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.rankAndRespond(w, r, &job)
}

// handleMatchesForJob ranks all stored candidates against a stored job.
func (s *Server) handleMatchesForJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		s.logger.Error("failed to get job", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	s.rankAndRespond(w, r, job)
}

func (s *Server) rankAndRespond(w http.ResponseWriter, r *http.Request, job *types.JobPosting) {
	candidates, err := s.store.ListCandidates(r.Context())
	if err != nil {
		s.logger.Error("failed to list candidates", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	topN := s.topN
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "top_n must be a positive integer")
			return
		}
		topN = parsed
	}

	report, err := s.engine.Rank(r.Context(), job, candidates, topN)
	if err != nil {
		s.logger.Error("ranking pass failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "matching failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":                   true,
		"job_title":                 report.JobTitle,
		"company":                   report.Company,
		"matches":                   report.Matches,
		"total_candidates_analyzed": report.TotalCandidatesAnalyzed,
	})
}

// handleRecommendations suggests skills for a stored candidate.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.store.GetCandidate(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		s.logger.Error("failed to get candidate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get candidate")
		return
	}

	recommendations := s.engine.Recommend(r.Context(), candidate)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"candidate_id":    candidate.CandidateID,
		"recommendations": recommendations,
	})
}
