package recruitment

import (
	"time"

	"github.com/google/uuid"
)

// PostingStatus represents the lifecycle state of a job posting.
// Transitions are forward-only: draft → published → closed.
type PostingStatus string

const (
	PostingDraft     PostingStatus = "draft"
	PostingPublished PostingStatus = "published"
	PostingClosed    PostingStatus = "closed"
)

var validPostingTransitions = map[PostingStatus][]PostingStatus{
	PostingDraft:     {PostingPublished, PostingClosed},
	PostingPublished: {PostingClosed},
	PostingClosed:    {},
}

// CanTransitionPosting returns true if the posting transition is valid.
func CanTransitionPosting(current, next PostingStatus) bool {
	for _, s := range validPostingTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// EmploymentType indicates the contract form of a position.
type EmploymentType string

const (
	FullTime   EmploymentType = "full_time"
	PartTime   EmploymentType = "part_time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

// ValidEmploymentType reports whether t is a known employment type.
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	}
	return false
}

// WorkArrangement indicates where the work happens.
type WorkArrangement string

const (
	Onsite WorkArrangement = "onsite"
	Remote WorkArrangement = "remote"
	Hybrid WorkArrangement = "hybrid"
)

// ValidWorkArrangement reports whether a is a known work arrangement.
func ValidWorkArrangement(a WorkArrangement) bool {
	switch a {
	case Onsite, Remote, Hybrid:
		return true
	}
	return false
}

// JobPosting represents an open position owned by a tenant.
type JobPosting struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	Code                string          `json:"code"` // JOB-<year>-<NNN>, sequence scoped per tenant per year
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Responsibilities    []string        `json:"responsibilities,omitempty"`
	RequiredSkills      []string        `json:"required_skills,omitempty"`
	PreferredSkills     []string        `json:"preferred_skills,omitempty"`
	Qualifications      []string        `json:"qualifications,omitempty"`
	EmploymentType      EmploymentType  `json:"employment_type"`
	WorkArrangement     WorkArrangement `json:"work_arrangement"`
	Vacancies           int             `json:"vacancies"`
	MinSalary           *float64        `json:"min_salary,omitempty"`
	MaxSalary           *float64        `json:"max_salary,omitempty"`
	Currency            string          `json:"currency,omitempty"`
	Deadline            *time.Time      `json:"deadline,omitempty"`
	Status              PostingStatus   `json:"status"`
	CoverLetterRequired bool            `json:"cover_letter_required"`
	CoverLetterAllowed  bool            `json:"cover_letter_allowed"`
	CreatedBy           uuid.UUID       `json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ApplicationStatus represents the pipeline stage of an application.
type ApplicationStatus string

const (
	AppReceived      ApplicationStatus = "received"
	AppScreening     ApplicationStatus = "screening"
	AppShortlisted   ApplicationStatus = "shortlisted"
	AppInterviewed   ApplicationStatus = "interviewed"
	AppOfferExtended ApplicationStatus = "offer_extended"
	AppRejected      ApplicationStatus = "rejected"
	AppHired         ApplicationStatus = "hired"
)

// Application represents a candidate's application to a posting.
// Tenant ownership is transitive through the posting and is never
// stored on the application itself.
type Application struct {
	ID             uuid.UUID         `json:"id"`
	JobPostingID   uuid.UUID         `json:"job_posting_id"`
	CandidateName  string            `json:"candidate_name"`
	CandidateEmail string            `json:"candidate_email"`
	CandidatePhone string            `json:"candidate_phone,omitempty"`
	Status         ApplicationStatus `json:"status"`
	ResumeURL      string            `json:"resume_url,omitempty"`
	CoverLetter    string            `json:"cover_letter,omitempty"`
	AppliedAt      time.Time         `json:"applied_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// CreatePostingRequest is the payload for creating a new job posting.
type CreatePostingRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Responsibilities    []string   `json:"responsibilities,omitempty"`
	RequiredSkills      []string   `json:"required_skills,omitempty"`
	PreferredSkills     []string   `json:"preferred_skills,omitempty"`
	Qualifications      []string   `json:"qualifications,omitempty"`
	EmploymentType      string     `json:"employment_type,omitempty"`
	WorkArrangement     string     `json:"work_arrangement,omitempty"`
	Vacancies           int        `json:"vacancies,omitempty"`
	MinSalary           *float64   `json:"min_salary,omitempty"`
	MaxSalary           *float64   `json:"max_salary,omitempty"`
	Currency            string     `json:"currency,omitempty"`
	Deadline            *time.Time `json:"deadline,omitempty"`
	CoverLetterRequired bool       `json:"cover_letter_required,omitempty"`
	CoverLetterAllowed  bool       `json:"cover_letter_allowed,omitempty"`
	PublishImmediately  bool       `json:"publish_immediately,omitempty"`
}

// UpdatePostingRequest is the payload for a shallow-merge update;
// nil fields are left untouched.
type UpdatePostingRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	RequiredSkills   []string   `json:"required_skills,omitempty"`
	PreferredSkills  []string   `json:"preferred_skills,omitempty"`
	Qualifications   []string   `json:"qualifications,omitempty"`
	Vacancies        *int       `json:"vacancies,omitempty"`
	MinSalary        *float64   `json:"min_salary,omitempty"`
	MaxSalary        *float64   `json:"max_salary,omitempty"`
	Currency         *string    `json:"currency,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
}

// SubmitApplicationRequest is the payload for applying to a posting.
type SubmitApplicationRequest struct {
	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email"`
	CandidatePhone string `json:"candidate_phone,omitempty"`
	ResumeURL      string `json:"resume_url,omitempty"`
	CoverLetter    string `json:"cover_letter,omitempty"`
}

// BulkActionRequest applies one action to many ids, isolating per-item
// failures.
type BulkActionRequest struct {
	Action string                `json:"action"`
	IDs    []string              `json:"ids"`
	Data   *UpdatePostingRequest `json:"data,omitempty"` // only for the update action
}

// BulkItemResult is the outcome for a single id within a bulk action.
type BulkItemResult struct {
	ID     string `json:"id"`
	Status string `json:"status"` // success | error
	Error  string `json:"error,omitempty"`
}

// BulkResult aggregates the outcomes of a bulk action.
type BulkResult struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Results    []BulkItemResult `json:"results"`
}

// PipelineSummary counts a posting's applications per pipeline stage.
type PipelineSummary struct {
	JobPostingID uuid.UUID                 `json:"job_posting_id"`
	Total        int                       `json:"total"`
	ByStatus     map[ApplicationStatus]int `json:"by_status"`
}
