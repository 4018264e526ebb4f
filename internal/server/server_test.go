package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/talent-match/internal/matching"
	"github.com/marcus/talent-match/internal/types"
)

// newTestServer builds a full server against the in-memory fake store.
// The ranking engine runs offline: taxonomy skill matching and string
// location comparison, no embedding provider.
func newTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing")
	t.Setenv("ENCRYPTION_KEY", testEncryptionKey)
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	st := newFakeStore()
	engine := matching.NewEngine(nil, nil, nil, nil)
	s, err := New(Config{Port: 0}, st, engine, nil)
	require.NoError(t, err)
	return s, st
}

func (s *Server) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:54321"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "talent-match", body["service"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil, map[string]string{
		"X-Request-ID": "req-12345",
	})
	assert.Equal(t, "req-12345", rec.Header().Get("X-Request-ID"))
}

func TestServer_JobLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/jobs", map[string]any{
		"job_title":       "Backend Engineer",
		"company_name":    "Acme",
		"job_description": "Build APIs in Go against PostgreSQL.",
		"required_skills": "go, postgresql",
		"location":        "Berlin",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody(t, rec)
	assert.Equal(t, true, created["success"])
	assert.Equal(t, "Job posted successfully", created["message"])
	jobID, ok := created["job_id"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^JOB_\d{14}$`, jobID)

	rec = s.do(t, http.MethodGet, "/jobs/"+jobID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody(t, rec)
	job := fetched["job"].(map[string]any)
	assert.Equal(t, "Backend Engineer", job["job_title"])
	assert.Equal(t, "active", job["status"])

	rec = s.do(t, http.MethodGet, "/jobs", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody(t, rec)
	assert.Equal(t, float64(1), listed["count"])
}

func TestServer_CreateJob_MissingTitle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/jobs", map[string]any{
		"company_name": "Acme",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "job_title is required", body["error"])
}

func TestServer_GetJob_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/jobs/JOB_missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CandidateLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/candidates", map[string]any{
		"full_name":        "Alice Weber",
		"skills":           "Go, PostgreSQL, Docker",
		"years_experience": "5",
		"location":         "Berlin",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody(t, rec)
	assert.Equal(t, "Candidate added successfully", created["message"])
	candidateID, ok := created["candidate_id"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^CAN_\d{14}$`, candidateID)

	rec = s.do(t, http.MethodGet, "/candidates/"+candidateID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/candidates", map[string]any{"skills": "Go"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "full_name is required", decodeBody(t, rec)["error"])
}

func TestServer_FindMatches(t *testing.T) {
	s, st := newTestServer(t)

	st.candidates = []*types.CandidateProfile{
		{
			CandidateID:     "CAN_1",
			FullName:        "Alice Weber",
			Skills:          "Python, Django, PostgreSQL",
			YearsExperience: "6",
			Location:        "Berlin",
		},
		{
			CandidateID:     "CAN_2",
			FullName:        "Bob Novak",
			Skills:          "Photoshop",
			YearsExperience: "1",
			Location:        "Berlin",
		},
	}

	rec := s.do(t, http.MethodPost, "/matches", map[string]any{
		"job_title":           "Python Developer",
		"company_name":        "Acme",
		"job_description":     "Python and Django services on PostgreSQL.",
		"required_skills":     "python, django, postgresql",
		"location":            "Berlin",
		"experience_required": "5+ years",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Python Developer", body["job_title"])
	assert.Equal(t, "Acme", body["company"])
	assert.Equal(t, float64(2), body["total_candidates_analyzed"])

	matches := body["matches"].([]any)
	require.Len(t, matches, 2)
	first := matches[0].(map[string]any)
	second := matches[1].(map[string]any)
	assert.Equal(t, "Alice Weber", first["name"])
	assert.Greater(t, first["match_percentage"].(float64), second["match_percentage"].(float64))
}

func TestServer_FindMatches_TopNValidation(t *testing.T) {
	s, _ := newTestServer(t)

	for _, raw := range []string{"0", "-3", "abc"} {
		rec := s.do(t, http.MethodPost, "/matches?top_n="+raw, map[string]any{
			"job_title": "Engineer",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "top_n=%s", raw)
		assert.Equal(t, "top_n must be a positive integer", decodeBody(t, rec)["error"])
	}
}

func TestServer_MatchesForStoredJob(t *testing.T) {
	s, st := newTestServer(t)

	st.jobs = []*types.JobPosting{{
		JobID: "JOB_1",
		JobRequirement: types.JobRequirement{
			JobTitle:       "Go Developer",
			RequiredSkills: "go, docker",
			Location:       "Remote",
		},
	}}
	st.candidates = []*types.CandidateProfile{{
		CandidateID:     "CAN_1",
		FullName:        "Alice Weber",
		Skills:          "Go, Docker",
		YearsExperience: "4",
		Location:        "Berlin",
	}}

	rec := s.do(t, http.MethodPost, "/jobs/JOB_1/matches", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Go Developer", body["job_title"])
	assert.Equal(t, float64(1), body["total_candidates_analyzed"])

	rec = s.do(t, http.MethodPost, "/jobs/JOB_missing/matches", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Recommendations(t *testing.T) {
	s, st := newTestServer(t)

	st.candidates = []*types.CandidateProfile{{
		CandidateID: "CAN_1",
		FullName:    "Alice Weber",
		Skills:      "Python",
	}}

	rec := s.do(t, http.MethodGet, "/candidates/CAN_1/recommendations", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "CAN_1", body["candidate_id"])
	recommendations := body["recommendations"].([]any)
	assert.NotEmpty(t, recommendations)

	rec = s.do(t, http.MethodGet, "/candidates/CAN_missing/recommendations", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodOptions, "/jobs", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestServer_AuthFlow(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/auth/register", map[string]any{
		"username": "jane_doe",
		"email":    "jane@example.com",
		"password": "s3cretpass",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	require.NotNil(t, registered.User)
	require.NotEmpty(t, registered.Token)
	assert.Equal(t, "jane@example.com", registered.User.Email)

	// Duplicate registration conflicts.
	rec = s.do(t, http.MethodPost, "/auth/register", map[string]any{
		"username": "jane_doe",
		"email":    "jane2@example.com",
		"password": "s3cretpass",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/login", map[string]any{
		"username": "jane_doe",
		"password": "s3cretpass",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	auth := map[string]string{"Authorization": "Bearer " + login.Token}

	rec = s.do(t, http.MethodGet, "/users/me", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody(t, rec)
	user := me["user"].(map[string]any)
	assert.Equal(t, "jane_doe", user["username"])

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/users/%s", registered.User.UserID), nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Accounts cannot read other accounts.
	rec = s.do(t, http.MethodGet, "/users/USR_other", nil, auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/users/link-profile", map[string]any{
		"candidate_id": "CAN_20250615103000",
	}, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	linked := decodeBody(t, rec)
	assert.Equal(t, "Profile linked successfully", linked["message"])

	rec = s.do(t, http.MethodGet, "/users/me", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	user = decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "CAN_20250615103000", user["candidate_profile_id"])
}

func TestServer_AuthFlow_Unauthorized(t *testing.T) {
	s, _ := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/users/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/users/me", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/login", map[string]any{
		"username": "nobody",
		"password": "whatever1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
