package recruitment

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/corehr/corehr-backend/internal/apperror"
	"github.com/corehr/corehr-backend/internal/query"
)

var (
	testTenant  = uuid.New().String()
	otherTenant = uuid.New().String()
	testUser    = uuid.New().String()
)

func newTestService() Service {
	return NewService(NewMemoryPostingRepository(), NewMemoryApplicationRepository())
}

func validCreateRequest() CreatePostingRequest {
	return CreatePostingRequest{
		Title:       "Backend Engineer",
		Description: strings.Repeat("We are looking for a backend engineer. ", 3),
	}
}

func TestCreateJobPostingTitleLength(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	req.Title = "ab"
	if _, err := s.CreateJobPosting(ctx, testTenant, req, testUser); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("title of length 2: err = %v, want validation error", err)
	}

	req.Title = "abc"
	if _, err := s.CreateJobPosting(ctx, testTenant, req, testUser); err != nil {
		t.Errorf("title of length 3: unexpected err = %v", err)
	}
}

func TestCreateJobPostingDescriptionLength(t *testing.T) {
	s := newTestService()
	req := validCreateRequest()
	req.Description = strings.Repeat("x", 49)
	if _, err := s.CreateJobPosting(context.Background(), testTenant, req, testUser); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("short description: err = %v, want validation error", err)
	}
}

func TestCreateJobPostingSalaryOrdering(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	minSalary, maxSalary := 100.0, 100.0
	req := validCreateRequest()
	req.MinSalary, req.MaxSalary = &minSalary, &maxSalary
	if _, err := s.CreateJobPosting(ctx, testTenant, req, testUser); err != nil {
		t.Errorf("equal salaries: unexpected err = %v", err)
	}

	minSalary, maxSalary = 200.0, 100.0
	req = validCreateRequest()
	req.MinSalary, req.MaxSalary = &minSalary, &maxSalary
	if _, err := s.CreateJobPosting(ctx, testTenant, req, testUser); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("inverted salaries: err = %v, want validation error", err)
	}
}

func TestPostingCodesAreSequentialPerTenant(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	year := time.Now().UTC().Year()

	first, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}
	other, err := s.CreateJobPosting(ctx, otherTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}

	if want := fmt.Sprintf("JOB-%d-001", year); first.Code != want {
		t.Errorf("first code = %q, want %q", first.Code, want)
	}
	if want := fmt.Sprintf("JOB-%d-002", year); second.Code != want {
		t.Errorf("second code = %q, want %q", second.Code, want)
	}
	// The sequence is scoped per tenant.
	if want := fmt.Sprintf("JOB-%d-001", year); other.Code != want {
		t.Errorf("other tenant's code = %q, want %q", other.Code, want)
	}
}

func TestGetJobPostingHidesOtherTenants(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	p, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetJobPosting(ctx, otherTenant, p.ID.String()); !apperror.Is(err, apperror.CodeNotFound) {
		t.Errorf("wrong tenant: err = %v, want not found", err)
	}
	if got, err := s.GetJobPosting(ctx, testTenant, p.ID.String()); err != nil || got.ID != p.ID {
		t.Errorf("owning tenant: got %v, err = %v", got, err)
	}
}

func TestPostingLifecycleIsForwardOnly(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	p, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != PostingDraft {
		t.Fatalf("new posting status = %s, want draft", p.Status)
	}

	published, err := s.PublishJobPosting(ctx, testTenant, p.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if published.Status != PostingPublished {
		t.Errorf("status = %s after publish", published.Status)
	}

	if _, err := s.PublishJobPosting(ctx, testTenant, p.ID.String()); !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("re-publish: err = %v, want validation error", err)
	}

	closed, err := s.CloseJobPosting(ctx, testTenant, p.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if closed.Status != PostingClosed {
		t.Errorf("status = %s after close", closed.Status)
	}
	if _, err := s.PublishJobPosting(ctx, testTenant, p.ID.String()); err == nil {
		t.Error("closed posting accepted publish")
	}
}

func TestListJobPostingsEndToEnd(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	minSalary, maxSalary := 4000.0, 6000.0
	req := CreatePostingRequest{
		Title:       "Backend Engineer",
		Description: strings.Repeat("Design and build backend services.", 2),
		MinSalary:   &minSalary,
		MaxSalary:   &maxSalary,
	}
	p, err := s.CreateJobPosting(ctx, testTenant, req, testUser)
	if err != nil {
		t.Fatal(err)
	}
	// A second posting that stays draft must not show up.
	if _, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PublishJobPosting(ctx, testTenant, p.ID.String()); err != nil {
		t.Fatal(err)
	}

	page, err := s.ListJobPostings(ctx, testTenant, query.Options{
		Filters: map[string]string{"status": "published"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("published list: total=%d items=%d, want 1/1", page.Total, len(page.Items))
	}
	if page.Items[0].Title != "Backend Engineer" {
		t.Errorf("listed title = %q", page.Items[0].Title)
	}
}

func TestApplicationTenantOwnershipIsTransitive(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	req.PublishImmediately = true
	p, err := s.CreateJobPosting(ctx, testTenant, req, testUser)
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.SubmitApplication(ctx, p.ID.String(), SubmitApplicationRequest{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.ShortlistApplication(ctx, otherTenant, a.ID.String()); !apperror.Is(err, apperror.CodeNotFound) {
		t.Errorf("wrong tenant shortlist: err = %v, want not found", err)
	}

	shortlisted, err := s.ShortlistApplication(ctx, testTenant, a.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if shortlisted.Status != AppShortlisted {
		t.Errorf("status = %s after shortlist", shortlisted.Status)
	}
}

func TestSubmitApplicationRequiresPublishedPosting(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	p, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.SubmitApplication(ctx, p.ID.String(), SubmitApplicationRequest{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
	})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("draft posting: err = %v, want validation error", err)
	}
}

func TestBulkActionIsolatesFailures(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	first, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}
	third, err := s.CreateJobPosting(ctx, testTenant, validCreateRequest(), testUser)
	if err != nil {
		t.Fatal(err)
	}

	// The middle id belongs to no posting, so it must fail alone.
	result, err := s.BulkAction(ctx, testTenant, BulkActionRequest{
		Action: "publish",
		IDs:    []string{first.ID.String(), uuid.New().String(), third.ID.String()},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Total != 3 || result.Successful != 2 || result.Failed != 1 {
		t.Errorf("bulk result = %+v, want total=3 successful=2 failed=1", result)
	}
	if len(result.Results) != 3 {
		t.Fatalf("results length = %d", len(result.Results))
	}
	if result.Results[1].Status != "error" || result.Results[1].Error == "" {
		t.Errorf("second entry = %+v, want error with message", result.Results[1])
	}
	if result.Results[0].Status != "success" || result.Results[2].Status != "success" {
		t.Error("outer entries should succeed")
	}
}

func TestPipelineSummaryCountsRealApplications(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	req := validCreateRequest()
	req.PublishImmediately = true
	p, err := s.CreateJobPosting(ctx, testTenant, req, testUser)
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for i := 0; i < 3; i++ {
		a, err := s.SubmitApplication(ctx, p.ID.String(), SubmitApplicationRequest{
			CandidateName:  fmt.Sprintf("Candidate %d", i),
			CandidateEmail: fmt.Sprintf("c%d@example.com", i),
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, a.ID.String())
	}
	if _, err := s.ShortlistApplication(ctx, testTenant, ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RejectApplication(ctx, testTenant, ids[1]); err != nil {
		t.Fatal(err)
	}

	summary, err := s.PipelineSummary(ctx, testTenant, p.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.ByStatus[AppShortlisted] != 1 || summary.ByStatus[AppRejected] != 1 || summary.ByStatus[AppReceived] != 1 {
		t.Errorf("by status = %v", summary.ByStatus)
	}
}
