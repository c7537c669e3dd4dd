package recruitment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/query"
	"github.com/corehr/corehr-backend/internal/store"
)

// Service defines the recruitment business logic.
type Service interface {
	CreateJobPosting(ctx context.Context, tenantID string, req CreatePostingRequest, createdBy string) (*JobPosting, error)
	ListJobPostings(ctx context.Context, tenantID string, opts query.Options) (query.Page[*JobPosting], error)
	GetJobPosting(ctx context.Context, tenantID, id string) (*JobPosting, error)
	UpdateJobPosting(ctx context.Context, tenantID, id string, req UpdatePostingRequest) (*JobPosting, error)
	PublishJobPosting(ctx context.Context, tenantID, id string) (*JobPosting, error)
	CloseJobPosting(ctx context.Context, tenantID, id string) (*JobPosting, error)

	SubmitApplication(ctx context.Context, postingID string, req SubmitApplicationRequest) (*Application, error)
	ListApplications(ctx context.Context, tenantID, postingID string, opts query.Options) (query.Page[*Application], error)
	ShortlistApplication(ctx context.Context, tenantID, id string) (*Application, error)
	RejectApplication(ctx context.Context, tenantID, id string) (*Application, error)

	BulkAction(ctx context.Context, tenantID string, req BulkActionRequest) (*BulkResult, error)
	PipelineSummary(ctx context.Context, tenantID, postingID string) (*PipelineSummary, error)
}

type service struct {
	postings     PostingRepository
	applications ApplicationRepository
}

// NewService creates a new recruitment service.
func NewService(postings PostingRepository, applications ApplicationRepository) Service {
	return &service{postings: postings, applications: applications}
}

var postingDescriptor = query.Descriptor[*JobPosting]{
	DefaultSort:  "created_at",
	SearchFields: []string{"title", "code", "description"},
	Field: func(p *JobPosting, name string) (interface{}, bool) {
		switch name {
		case "title":
			return p.Title, true
		case "code":
			return p.Code, true
		case "description":
			return p.Description, true
		case "status":
			return string(p.Status), true
		case "employment_type":
			return string(p.EmploymentType), true
		case "work_arrangement":
			return string(p.WorkArrangement), true
		case "vacancies":
			return p.Vacancies, true
		case "min_salary":
			if p.MinSalary == nil {
				return nil, false
			}
			return *p.MinSalary, true
		case "max_salary":
			if p.MaxSalary == nil {
				return nil, false
			}
			return *p.MaxSalary, true
		case "deadline":
			if p.Deadline == nil {
				return nil, false
			}
			return *p.Deadline, true
		case "created_at":
			return p.CreatedAt, true
		case "updated_at":
			return p.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

var applicationDescriptor = query.Descriptor[*Application]{
	DefaultSort:  "applied_at",
	SearchFields: []string{"candidate_name", "candidate_email"},
	Field: func(a *Application, name string) (interface{}, bool) {
		switch name {
		case "candidate_name":
			return a.CandidateName, true
		case "candidate_email":
			return a.CandidateEmail, true
		case "status":
			return string(a.Status), true
		case "applied_at":
			return a.AppliedAt, true
		case "updated_at":
			return a.UpdatedAt, true
		default:
			return nil, false
		}
	},
}

// ── Job postings ──────────────────────────────────────────────────────────────

func (s *service) CreateJobPosting(ctx context.Context, tenantID string, req CreatePostingRequest, createdBy string) (*JobPosting, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, apperror.Validation("invalid tenant id: %v", err)
	}
	creator, err := uuid.Parse(createdBy)
	if err != nil {
		return nil, apperror.Validation("invalid created_by: %v", err)
	}
	if len(strings.TrimSpace(req.Title)) < 3 {
		return nil, apperror.Validation("title must be at least 3 characters")
	}
	if len(req.Description) < 50 {
		return nil, apperror.Validation("description must be at least 50 characters")
	}
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		return nil, apperror.Validation("min_salary %.2f exceeds max_salary %.2f", *req.MinSalary, *req.MaxSalary)
	}

	vacancies := req.Vacancies
	if vacancies == 0 {
		vacancies = 1
	}
	if vacancies < 1 {
		return nil, apperror.Validation("vacancies must be at least 1")
	}

	employmentType := EmploymentType(req.EmploymentType)
	if req.EmploymentType == "" {
		employmentType = FullTime
	} else if !ValidEmploymentType(employmentType) {
		return nil, apperror.Validation("unknown employment type %q", req.EmploymentType)
	}
	workArrangement := WorkArrangement(req.WorkArrangement)
	if req.WorkArrangement == "" {
		workArrangement = Onsite
	} else if !ValidWorkArrangement(workArrangement) {
		return nil, apperror.Validation("unknown work arrangement %q", req.WorkArrangement)
	}

	status := PostingDraft
	if req.PublishImmediately {
		status = PostingPublished
	}

	code, err := s.nextPostingCode(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &JobPosting{
		ID:                  uuid.New(),
		TenantID:            tenant,
		Code:                code,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		Responsibilities:    req.Responsibilities,
		RequiredSkills:      req.RequiredSkills,
		PreferredSkills:     req.PreferredSkills,
		Qualifications:      req.Qualifications,
		EmploymentType:      employmentType,
		WorkArrangement:     workArrangement,
		Vacancies:           vacancies,
		MinSalary:           req.MinSalary,
		MaxSalary:           req.MaxSalary,
		Currency:            req.Currency,
		Deadline:            req.Deadline,
		Status:              status,
		CoverLetterRequired: req.CoverLetterRequired,
		CoverLetterAllowed:  req.CoverLetterAllowed || req.CoverLetterRequired,
		CreatedBy:           creator,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.postings.Insert(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperror.Duplicate("job posting %s already exists", p.ID)
		}
		return nil, err
	}
	return p, nil
}

// nextPostingCode generates a tenant-scoped sequential code
// JOB-<year>-<NNN> where the sequence counts the tenant's existing
// codes containing the current year.
func (s *service) nextPostingCode(ctx context.Context, tenantID string) (string, error) {
	existing, err := s.postings.ListByTenant(ctx, tenantID)
	if err != nil {
		return "", err
	}
	year := fmt.Sprintf("%d", time.Now().UTC().Year())
	count := 0
	for _, p := range existing {
		if strings.Contains(p.Code, year) {
			count++
		}
	}
	return fmt.Sprintf("JOB-%s-%03d", year, count+1), nil
}

func (s *service) ListJobPostings(ctx context.Context, tenantID string, opts query.Options) (query.Page[*JobPosting], error) {
	records, err := s.postings.ListByTenant(ctx, tenantID)
	if err != nil {
		return query.Page[*JobPosting]{}, err
	}
	return query.Run(records, postingDescriptor, opts)
}

// GetJobPosting hides cross-tenant existence: a wrong-tenant id is
// indistinguishable from a missing one.
func (s *service) GetJobPosting(ctx context.Context, tenantID, id string) (*JobPosting, error) {
	return s.fetchPosting(ctx, tenantID, id)
}

func (s *service) fetchPosting(ctx context.Context, tenantID, id string) (*JobPosting, error) {
	p, err := s.postings.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("job posting not found")
		}
		return nil, err
	}
	if p.TenantID.String() != tenantID {
		return nil, apperror.NotFound("job posting not found")
	}
	return p, nil
}

func (s *service) UpdateJobPosting(ctx context.Context, tenantID, id string, req UpdatePostingRequest) (*JobPosting, error) {
	current, err := s.fetchPosting(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		if len(strings.TrimSpace(*req.Title)) < 3 {
			return nil, apperror.Validation("title must be at least 3 characters")
		}
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if len(*req.Description) < 50 {
			return nil, apperror.Validation("description must be at least 50 characters")
		}
		updated.Description = *req.Description
	}
	if req.Responsibilities != nil {
		updated.Responsibilities = req.Responsibilities
	}
	if req.RequiredSkills != nil {
		updated.RequiredSkills = req.RequiredSkills
	}
	if req.PreferredSkills != nil {
		updated.PreferredSkills = req.PreferredSkills
	}
	if req.Qualifications != nil {
		updated.Qualifications = req.Qualifications
	}
	if req.Vacancies != nil {
		if *req.Vacancies < 1 {
			return nil, apperror.Validation("vacancies must be at least 1")
		}
		updated.Vacancies = *req.Vacancies
	}
	if req.MinSalary != nil {
		updated.MinSalary = req.MinSalary
	}
	if req.MaxSalary != nil {
		updated.MaxSalary = req.MaxSalary
	}
	if updated.MinSalary != nil && updated.MaxSalary != nil && *updated.MinSalary > *updated.MaxSalary {
		return nil, apperror.Validation("min_salary %.2f exceeds max_salary %.2f", *updated.MinSalary, *updated.MaxSalary)
	}
	if req.Currency != nil {
		updated.Currency = *req.Currency
	}
	if req.Deadline != nil {
		updated.Deadline = req.Deadline
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.postings.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) PublishJobPosting(ctx context.Context, tenantID, id string) (*JobPosting, error) {
	return s.transitionPosting(ctx, tenantID, id, PostingPublished)
}

func (s *service) CloseJobPosting(ctx context.Context, tenantID, id string) (*JobPosting, error) {
	return s.transitionPosting(ctx, tenantID, id, PostingClosed)
}

func (s *service) transitionPosting(ctx context.Context, tenantID, id string, next PostingStatus) (*JobPosting, error) {
	current, err := s.fetchPosting(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionPosting(current.Status, next) {
		return nil, apperror.Validation("cannot transition posting from %s to %s", current.Status, next)
	}
	updated := *current
	updated.Status = next
	updated.UpdatedAt = time.Now().UTC()
	if err := s.postings.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ── Applications ──────────────────────────────────────────────────────────────

func (s *service) SubmitApplication(ctx context.Context, postingID string, req SubmitApplicationRequest) (*Application, error) {
	p, err := s.postings.Get(ctx, postingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("job posting not found")
		}
		return nil, err
	}
	if p.Status != PostingPublished {
		return nil, apperror.Validation("job posting is not accepting applications")
	}
	if p.Deadline != nil && time.Now().UTC().After(*p.Deadline) {
		return nil, apperror.Validation("application deadline has passed")
	}
	if strings.TrimSpace(req.CandidateName) == "" {
		return nil, apperror.Validation("candidate_name is required")
	}
	if !strings.Contains(req.CandidateEmail, "@") {
		return nil, apperror.Validation("candidate_email %q is not a valid address", req.CandidateEmail)
	}
	if p.CoverLetterRequired && strings.TrimSpace(req.CoverLetter) == "" {
		return nil, apperror.Validation("this posting requires a cover letter")
	}

	now := time.Now().UTC()
	a := &Application{
		ID:             uuid.New(),
		JobPostingID:   p.ID,
		CandidateName:  strings.TrimSpace(req.CandidateName),
		CandidateEmail: strings.ToLower(strings.TrimSpace(req.CandidateEmail)),
		CandidatePhone: req.CandidatePhone,
		Status:         AppReceived,
		ResumeURL:      req.ResumeURL,
		CoverLetter:    req.CoverLetter,
		AppliedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.applications.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListApplications(ctx context.Context, tenantID, postingID string, opts query.Options) (query.Page[*Application], error) {
	if _, err := s.fetchPosting(ctx, tenantID, postingID); err != nil {
		return query.Page[*Application]{}, err
	}
	records, err := s.applications.ListByPosting(ctx, postingID)
	if err != nil {
		return query.Page[*Application]{}, err
	}
	return query.Run(records, applicationDescriptor, opts)
}

func (s *service) ShortlistApplication(ctx context.Context, tenantID, id string) (*Application, error) {
	return s.stampApplication(ctx, tenantID, id, AppShortlisted)
}

func (s *service) RejectApplication(ctx context.Context, tenantID, id string) (*Application, error) {
	return s.stampApplication(ctx, tenantID, id, AppRejected)
}

// stampApplication re-fetches through the transitive tenant-ownership
// check and produces a new record with only the status changed.
func (s *service) stampApplication(ctx context.Context, tenantID, id string, next ApplicationStatus) (*Application, error) {
	a, err := s.applications.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("application not found")
		}
		return nil, err
	}
	if _, err := s.fetchPosting(ctx, tenantID, a.JobPostingID.String()); err != nil {
		return nil, apperror.NotFound("application not found")
	}

	updated := *a
	updated.Status = next
	updated.UpdatedAt = time.Now().UTC()
	if err := s.applications.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ── Bulk actions & analytics ──────────────────────────────────────────────────

// BulkAction applies one action per id, isolating failures: a bad id
// never aborts the batch.
func (s *service) BulkAction(ctx context.Context, tenantID string, req BulkActionRequest) (*BulkResult, error) {
	if len(req.IDs) == 0 {
		return nil, apperror.Validation("ids must not be empty")
	}

	result := &BulkResult{Total: len(req.IDs), Results: make([]BulkItemResult, 0, len(req.IDs))}
	for _, id := range req.IDs {
		var err error
		switch req.Action {
		case "publish":
			_, err = s.PublishJobPosting(ctx, tenantID, id)
		case "close":
			_, err = s.CloseJobPosting(ctx, tenantID, id)
		case "update":
			if req.Data == nil {
				err = apperror.Validation("update action requires data")
			} else {
				_, err = s.UpdateJobPosting(ctx, tenantID, id, *req.Data)
			}
		case "shortlist":
			_, err = s.ShortlistApplication(ctx, tenantID, id)
		case "reject":
			_, err = s.RejectApplication(ctx, tenantID, id)
		default:
			return nil, apperror.Validation("unknown bulk action %q", req.Action)
		}

		if err != nil {
			result.Failed++
			result.Results = append(result.Results, BulkItemResult{ID: id, Status: "error", Error: err.Error()})
		} else {
			result.Successful++
			result.Results = append(result.Results, BulkItemResult{ID: id, Status: "success"})
		}
	}
	return result, nil
}

// PipelineSummary aggregates real per-stage application counts for a
// posting.
func (s *service) PipelineSummary(ctx context.Context, tenantID, postingID string) (*PipelineSummary, error) {
	p, err := s.fetchPosting(ctx, tenantID, postingID)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}

	summary := &PipelineSummary{
		JobPostingID: p.ID,
		Total:        len(apps),
		ByStatus:     make(map[ApplicationStatus]int),
	}
	for _, a := range apps {
		summary.ByStatus[a.Status]++
	}
	return summary, nil
}
