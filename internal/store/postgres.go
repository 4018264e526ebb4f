package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcus/talent-match/internal/types"
)

// PostgresStore persists records in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the schema
// exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			candidate_id        TEXT PRIMARY KEY,
			full_name           TEXT NOT NULL,
			email               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			location            TEXT NOT NULL DEFAULT '',
			current_position    TEXT NOT NULL DEFAULT '',
			years_experience    TEXT NOT NULL DEFAULT '',
			skills              TEXT NOT NULL DEFAULT '',
			education           TEXT NOT NULL DEFAULT '',
			languages           TEXT NOT NULL DEFAULT '',
			portfolio_url       TEXT NOT NULL DEFAULT '',
			linkedin_url        TEXT NOT NULL DEFAULT '',
			github_url          TEXT NOT NULL DEFAULT '',
			expected_salary     TEXT NOT NULL DEFAULT '',
			notice_period       TEXT NOT NULL DEFAULT '',
			work_authorization  TEXT NOT NULL DEFAULT '',
			willing_to_relocate TEXT NOT NULL DEFAULT '',
			preferred_locations TEXT NOT NULL DEFAULT '',
			achievements        TEXT NOT NULL DEFAULT '',
			profile_summary     TEXT NOT NULL DEFAULT '',
			created_at          TEXT NOT NULL DEFAULT '',
			status              TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			job_id                TEXT PRIMARY KEY,
			company_name          TEXT NOT NULL DEFAULT '',
			job_title             TEXT NOT NULL,
			department            TEXT NOT NULL DEFAULT '',
			location              TEXT NOT NULL DEFAULT '',
			employment_type       TEXT NOT NULL DEFAULT '',
			experience_required   TEXT NOT NULL DEFAULT '',
			salary_range          TEXT NOT NULL DEFAULT '',
			job_description       TEXT NOT NULL DEFAULT '',
			required_skills       TEXT NOT NULL DEFAULT '',
			preferred_skills      TEXT NOT NULL DEFAULT '',
			education_requirement TEXT NOT NULL DEFAULT '',
			benefits              TEXT NOT NULL DEFAULT '',
			application_deadline  TEXT NOT NULL DEFAULT '',
			contact_email         TEXT NOT NULL DEFAULT '',
			contact_phone         TEXT NOT NULL DEFAULT '',
			company_website       TEXT NOT NULL DEFAULT '',
			remote_work_option    TEXT NOT NULL DEFAULT '',
			visa_sponsorship      TEXT NOT NULL DEFAULT '',
			created_at            TEXT NOT NULL DEFAULT '',
			status                TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id              TEXT PRIMARY KEY,
			username             TEXT NOT NULL UNIQUE,
			email_encrypted      TEXT NOT NULL,
			password_hash        TEXT NOT NULL,
			created_at           TEXT NOT NULL DEFAULT '',
			last_login           TEXT NOT NULL DEFAULT '',
			is_active            BOOLEAN NOT NULL DEFAULT TRUE,
			candidate_profile_id TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// AddCandidate inserts one candidate record.
func (s *PostgresStore) AddCandidate(ctx context.Context, c *types.CandidateProfile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO candidates (
			candidate_id, full_name, email, phone, location, current_position,
			years_experience, skills, education, languages, portfolio_url,
			linkedin_url, github_url, expected_salary, notice_period,
			work_authorization, willing_to_relocate, preferred_locations,
			achievements, profile_summary, created_at, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		c.CandidateID, c.FullName, c.Email, c.Phone, c.Location, c.CurrentPosition,
		c.YearsExperience, c.Skills, c.Education, c.Languages, c.PortfolioURL,
		c.LinkedinURL, c.GithubURL, c.ExpectedSalary, c.NoticePeriod,
		c.WorkAuthorization, c.WillingToRelocate, c.PreferredLocations,
		c.Achievements, c.ProfileSummary, c.CreatedAt, c.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

const candidateColumns = `candidate_id, full_name, email, phone, location, current_position,
	years_experience, skills, education, languages, portfolio_url, linkedin_url,
	github_url, expected_salary, notice_period, work_authorization,
	willing_to_relocate, preferred_locations, achievements, profile_summary,
	created_at, status`

func scanCandidate(row pgx.Row) (*types.CandidateProfile, error) {
	var c types.CandidateProfile
	err := row.Scan(
		&c.CandidateID, &c.FullName, &c.Email, &c.Phone, &c.Location,
		&c.CurrentPosition, &c.YearsExperience, &c.Skills, &c.Education,
		&c.Languages, &c.PortfolioURL, &c.LinkedinURL, &c.GithubURL,
		&c.ExpectedSalary, &c.NoticePeriod, &c.WorkAuthorization,
		&c.WillingToRelocate, &c.PreferredLocations, &c.Achievements,
		&c.ProfileSummary, &c.CreatedAt, &c.Status,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCandidate fetches one candidate by ID.
func (s *PostgresStore) GetCandidate(ctx context.Context, candidateID string) (*types.CandidateProfile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE candidate_id = $1`, candidateID)
	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return candidate, nil
}

// ListCandidates returns all candidates in insertion order.
func (s *PostgresStore) ListCandidates(ctx context.Context) ([]*types.CandidateProfile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY candidate_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*types.CandidateProfile
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

// AddJob inserts one job posting.
func (s *PostgresStore) AddJob(ctx context.Context, j *types.JobPosting) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (
			job_id, company_name, job_title, department, location, employment_type,
			experience_required, salary_range, job_description, required_skills,
			preferred_skills, education_requirement, benefits, application_deadline,
			contact_email, contact_phone, company_website, remote_work_option,
			visa_sponsorship, created_at, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		j.JobID, j.CompanyName, j.JobTitle, j.Department, j.Location, j.EmploymentType,
		j.ExperienceRequired, j.SalaryRange, j.JobDescription, j.RequiredSkills,
		j.PreferredSkills, j.EducationRequirement, j.Benefits, j.ApplicationDeadline,
		j.ContactEmail, j.ContactPhone, j.CompanyWebsite, j.RemoteWorkOption,
		j.VisaSponsorship, j.CreatedAt, j.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

const jobColumns = `job_id, company_name, job_title, department, location, employment_type,
	experience_required, salary_range, job_description, required_skills,
	preferred_skills, education_requirement, benefits, application_deadline,
	contact_email, contact_phone, company_website, remote_work_option,
	visa_sponsorship, created_at, status`

func scanJob(row pgx.Row) (*types.JobPosting, error) {
	var j types.JobPosting
	err := row.Scan(
		&j.JobID, &j.CompanyName, &j.JobTitle, &j.Department, &j.Location,
		&j.EmploymentType, &j.ExperienceRequired, &j.SalaryRange,
		&j.JobDescription, &j.RequiredSkills, &j.PreferredSkills,
		&j.EducationRequirement, &j.Benefits, &j.ApplicationDeadline,
		&j.ContactEmail, &j.ContactPhone, &j.CompanyWebsite,
		&j.RemoteWorkOption, &j.VisaSponsorship, &j.CreatedAt, &j.Status,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJob fetches one job posting by ID.
func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*types.JobPosting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE job_id = $1`, jobID)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs returns all job postings in insertion order.
func (s *PostgresStore) ListJobs(ctx context.Context) ([]*types.JobPosting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY job_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*types.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

const userColumns = `user_id, username, email_encrypted, password_hash,
	created_at, last_login, is_active, candidate_profile_id`

func scanUser(row pgx.Row) (*UserRecord, error) {
	var u UserRecord
	err := row.Scan(
		&u.UserID, &u.Username, &u.EmailEncrypted, &u.PasswordHash,
		&u.CreatedAt, &u.LastLogin, &u.IsActive, &u.CandidateProfileID,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts one account record. A duplicate username maps to
// ErrUsernameTaken through the unique constraint.
func (s *PostgresStore) CreateUser(ctx context.Context, user *UserRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (
			user_id, username, email_encrypted, password_hash,
			created_at, last_login, is_active, candidate_profile_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		user.UserID, user.Username, user.EmailEncrypted, user.PasswordHash,
		user.CreatedAt, user.LastLogin, user.IsActive, user.CandidateProfileID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByUsername fetches one account by username.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID fetches one account by user ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (*UserRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsers returns all account records.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]*UserRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*UserRecord
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateLastLogin records a successful login time.
func (s *PostgresStore) UpdateLastLogin(ctx context.Context, userID, lastLogin string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET last_login = $1 WHERE user_id = $2`, lastLogin, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkProfile ties an account to a candidate profile.
func (s *PostgresStore) LinkProfile(ctx context.Context, userID, candidateID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET candidate_profile_id = $1 WHERE user_id = $2`, candidateID, userID)
	if err != nil {
		return fmt.Errorf("failed to link profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
