package store

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/marcus/talent-match/internal/types"
)

// Tab names inside the backing spreadsheet.
const (
	candidatesTab = "Candidates"
	jobsTab       = "Jobs"
	usersTab      = "Users"
)

// SheetsStore persists records in one Google spreadsheet with three
// tabs. Row layouts are fixed and positional; the column order is part
// of the platform's storage contract and must not be reordered.
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsStore connects to the Sheets API with a service-account key
// file. An empty credentialFile falls back to ambient credentials.
func NewSheetsStore(ctx context.Context, spreadsheetID, credentialFile string) (*SheetsStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialFile))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsStore{service: service, spreadsheetID: spreadsheetID}, nil
}

// Close satisfies Store; the Sheets client holds no resources to release.
func (s *SheetsStore) Close() {}

// AddCandidate appends one candidate row.
func (s *SheetsStore) AddCandidate(ctx context.Context, candidate *types.CandidateProfile) error {
	return s.appendRow(ctx, candidatesTab, candidateToRow(candidate))
}

// GetCandidate finds a candidate by ID.
func (s *SheetsStore) GetCandidate(ctx context.Context, candidateID string) (*types.CandidateProfile, error) {
	candidates, err := s.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		if candidate.CandidateID == candidateID {
			return candidate, nil
		}
	}
	return nil, ErrNotFound
}

// ListCandidates returns every candidate row in sheet order.
func (s *SheetsStore) ListCandidates(ctx context.Context) ([]*types.CandidateProfile, error) {
	rows, err := s.readRows(ctx, candidatesTab)
	if err != nil {
		return nil, err
	}
	candidates := make([]*types.CandidateProfile, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, candidateFromRow(row))
	}
	return candidates, nil
}

// AddJob appends one job row.
func (s *SheetsStore) AddJob(ctx context.Context, job *types.JobPosting) error {
	return s.appendRow(ctx, jobsTab, jobToRow(job))
}

// GetJob finds a job posting by ID.
func (s *SheetsStore) GetJob(ctx context.Context, jobID string) (*types.JobPosting, error) {
	jobs, err := s.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if job.JobID == jobID {
			return job, nil
		}
	}
	return nil, ErrNotFound
}

// ListJobs returns every job row in sheet order.
func (s *SheetsStore) ListJobs(ctx context.Context) ([]*types.JobPosting, error) {
	rows, err := s.readRows(ctx, jobsTab)
	if err != nil {
		return nil, err
	}
	jobs := make([]*types.JobPosting, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, jobFromRow(row))
	}
	return jobs, nil
}

// CreateUser appends one account row after checking username uniqueness.
func (s *SheetsStore) CreateUser(ctx context.Context, user *UserRecord) error {
	existing, err := s.GetUserByUsername(ctx, user.Username)
	if err != nil && err != ErrNotFound {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}
	return s.appendRow(ctx, usersTab, userToRow(user))
}

// GetUserByUsername finds an account by username.
func (s *SheetsStore) GetUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

// GetUserByID finds an account by user ID.
func (s *SheetsStore) GetUserByID(ctx context.Context, userID string) (*UserRecord, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if user.UserID == userID {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

// ListUsers returns every account row in sheet order.
func (s *SheetsStore) ListUsers(ctx context.Context) ([]*UserRecord, error) {
	rows, err := s.readRows(ctx, usersTab)
	if err != nil {
		return nil, err
	}
	users := make([]*UserRecord, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// UpdateLastLogin writes the last-login cell of one account row.
func (s *SheetsStore) UpdateLastLogin(ctx context.Context, userID, lastLogin string) error {
	return s.updateUserCell(ctx, userID, "G", lastLogin)
}

// LinkProfile writes the candidate-profile cell of one account row.
func (s *SheetsStore) LinkProfile(ctx context.Context, userID, candidateID string) error {
	return s.updateUserCell(ctx, userID, "I", candidateID)
}

func (s *SheetsStore) updateUserCell(ctx context.Context, userID, column, value string) error {
	rows, err := s.readRows(ctx, usersTab)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if cell(row, 0) != userID {
			continue
		}
		// Data rows start at sheet row 2, below the header.
		cellRange := fmt.Sprintf("%s!%s%d", usersTab, column, i+2)
		valueRange := &sheets.ValueRange{Values: [][]interface{}{{value}}}
		_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, cellRange, valueRange).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", cellRange, err)
		}
		return nil
	}
	return ErrNotFound
}

func (s *SheetsStore) appendRow(ctx context.Context, tab string, row []interface{}) error {
	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, tab, valueRange).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", tab, err)
	}
	return nil
}

// readRows returns all data rows of a tab, skipping the header row.
func (s *SheetsStore) readRows(ctx context.Context, tab string) ([][]interface{}, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tab, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}

// cell reads a positional column as a string, tolerating short rows and
// non-string cells.
func cell(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	if s, ok := row[index].(string); ok {
		return s
	}
	return fmt.Sprint(row[index])
}

func candidateToRow(c *types.CandidateProfile) []interface{} {
	return []interface{}{
		c.CandidateID, c.FullName, c.Email, c.Phone, c.Location,
		c.CurrentPosition, c.YearsExperience, c.Skills, c.Education,
		c.Languages, c.PortfolioURL, c.LinkedinURL, c.GithubURL,
		c.ExpectedSalary, c.NoticePeriod, c.WorkAuthorization,
		c.WillingToRelocate, c.PreferredLocations, c.Achievements,
		c.ProfileSummary, c.CreatedAt, c.Status,
	}
}

func candidateFromRow(row []interface{}) *types.CandidateProfile {
	return &types.CandidateProfile{
		CandidateID:        cell(row, 0),
		FullName:           cell(row, 1),
		Email:              cell(row, 2),
		Phone:              cell(row, 3),
		Location:           cell(row, 4),
		CurrentPosition:    cell(row, 5),
		YearsExperience:    cell(row, 6),
		Skills:             cell(row, 7),
		Education:          cell(row, 8),
		Languages:          cell(row, 9),
		PortfolioURL:       cell(row, 10),
		LinkedinURL:        cell(row, 11),
		GithubURL:          cell(row, 12),
		ExpectedSalary:     cell(row, 13),
		NoticePeriod:       cell(row, 14),
		WorkAuthorization:  cell(row, 15),
		WillingToRelocate:  cell(row, 16),
		PreferredLocations: cell(row, 17),
		Achievements:       cell(row, 18),
		ProfileSummary:     cell(row, 19),
		CreatedAt:          cell(row, 20),
		Status:             cell(row, 21),
	}
}

func jobToRow(j *types.JobPosting) []interface{} {
	return []interface{}{
		j.JobID, j.CompanyName, j.JobTitle, j.Department, j.Location,
		j.EmploymentType, j.ExperienceRequired, j.SalaryRange,
		j.JobDescription, j.RequiredSkills, j.PreferredSkills,
		j.EducationRequirement, j.Benefits, j.ApplicationDeadline,
		j.ContactEmail, j.ContactPhone, j.CompanyWebsite,
		j.RemoteWorkOption, j.VisaSponsorship, j.CreatedAt, j.Status,
	}
}

func jobFromRow(row []interface{}) *types.JobPosting {
	job := &types.JobPosting{
		JobID:                cell(row, 0),
		CompanyName:          cell(row, 1),
		Department:           cell(row, 3),
		EmploymentType:       cell(row, 5),
		EducationRequirement: cell(row, 11),
		Benefits:             cell(row, 12),
		ApplicationDeadline:  cell(row, 13),
		ContactEmail:         cell(row, 14),
		ContactPhone:         cell(row, 15),
		CompanyWebsite:       cell(row, 16),
		RemoteWorkOption:     cell(row, 17),
		VisaSponsorship:      cell(row, 18),
		CreatedAt:            cell(row, 19),
		Status:               cell(row, 20),
	}
	job.JobTitle = cell(row, 2)
	job.Location = cell(row, 4)
	job.ExperienceRequired = cell(row, 6)
	job.SalaryRange = cell(row, 7)
	job.JobDescription = cell(row, 8)
	job.RequiredSkills = cell(row, 9)
	job.PreferredSkills = cell(row, 10)
	return job
}

func userToRow(u *UserRecord) []interface{} {
	// The salt column is kept empty: bcrypt hashes embed their own salt,
	// but the sheet layout predates that and readers index positionally.
	return []interface{}{
		u.UserID, u.Username, u.EmailEncrypted, u.PasswordHash, "",
		u.CreatedAt, u.LastLogin, strconv.FormatBool(u.IsActive),
		u.CandidateProfileID,
	}
}

func userFromRow(row []interface{}) *UserRecord {
	return &UserRecord{
		UserID:             cell(row, 0),
		Username:           cell(row, 1),
		EmailEncrypted:     cell(row, 2),
		PasswordHash:       cell(row, 3),
		CreatedAt:          cell(row, 5),
		LastLogin:          cell(row, 6),
		IsActive:           cell(row, 7) == "true",
		CandidateProfileID: cell(row, 8),
	}
}
