// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobRequirement is the immutable view of a job posting consumed by the
// matching engine. All fields are free text; extraction and parsing happen
// downstream.
type JobRequirement struct {
	JobTitle           string `json:"job_title"`
	JobDescription     string `json:"job_description"`
	RequiredSkills     string `json:"required_skills"`
	PreferredSkills    string `json:"preferred_skills,omitempty"`
	Location           string `json:"location"`
	SalaryRange        string `json:"salary_range,omitempty"`
	ExperienceRequired string `json:"experience_required,omitempty"`
}

// JobPosting is a stored job record. It embeds the requirement fields the
// engine consumes plus the administrative columns kept by the record store.
type JobPosting struct {
	JobID                string `json:"job_id"`
	CompanyName          string `json:"company_name,omitempty"`
	Department           string `json:"department,omitempty"`
	EmploymentType       string `json:"employment_type,omitempty"`
	EducationRequirement string `json:"education_requirement,omitempty"`
	Benefits             string `json:"benefits,omitempty"`
	ApplicationDeadline  string `json:"application_deadline,omitempty"`
	ContactEmail         string `json:"contact_email,omitempty"`
	ContactPhone         string `json:"contact_phone,omitempty"`
	CompanyWebsite       string `json:"company_website,omitempty"`
	RemoteWorkOption     string `json:"remote_work_option,omitempty"`
	VisaSponsorship      string `json:"visa_sponsorship,omitempty"`
	CreatedAt            string `json:"created_at,omitempty"`
	Status               string `json:"status,omitempty"`

	JobRequirement
}

// CandidateProfile is a stored candidate record. It is read-only input to
// a ranking pass; the engine never mutates it.
type CandidateProfile struct {
	CandidateID        string `json:"candidate_id"`
	FullName           string `json:"full_name"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Location           string `json:"location,omitempty"`
	CurrentPosition    string `json:"current_position,omitempty"`
	YearsExperience    string `json:"years_experience,omitempty"`
	Skills             string `json:"skills,omitempty"`
	Education          string `json:"education,omitempty"`
	Languages          string `json:"languages,omitempty"`
	PortfolioURL       string `json:"portfolio_url,omitempty"`
	LinkedinURL        string `json:"linkedin_url,omitempty"`
	GithubURL          string `json:"github_url,omitempty"`
	ExpectedSalary     string `json:"expected_salary,omitempty"`
	NoticePeriod       string `json:"notice_period,omitempty"`
	WorkAuthorization  string `json:"work_authorization,omitempty"`
	WillingToRelocate  string `json:"willing_to_relocate,omitempty"`
	PreferredLocations string `json:"preferred_locations,omitempty"`
	Achievements       string `json:"achievements,omitempty"`
	ProfileSummary     string `json:"profile_summary,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
	Status             string `json:"status,omitempty"`
}
