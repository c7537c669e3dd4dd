package recruitment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/corehr/corehr-backend/internal/store"
)

type postgresPostingRepo struct{ db *sql.DB }

// NewPostgresPostingRepository creates a PostgreSQL posting repository.
func NewPostgresPostingRepository(db *sql.DB) PostingRepository {
	return &postgresPostingRepo{db: db}
}

const postingColumns = `
	id, tenant_id, code, title, description, responsibilities, required_skills,
	preferred_skills, qualifications, employment_type, work_arrangement, vacancies,
	min_salary, max_salary, currency, deadline, status, cover_letter_required,
	cover_letter_allowed, created_by, created_at, updated_at`

func (r *postgresPostingRepo) Insert(ctx context.Context, p *JobPosting) error {
	responsibilities, _ := json.Marshal(p.Responsibilities)
	requiredSkills, _ := json.Marshal(p.RequiredSkills)
	preferredSkills, _ := json.Marshal(p.PreferredSkills)
	qualifications, _ := json.Marshal(p.Qualifications)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO job_postings (`+postingColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`,
		p.ID, p.TenantID, p.Code, p.Title, p.Description, responsibilities, requiredSkills,
		preferredSkills, qualifications, p.EmploymentType, p.WorkArrangement, p.Vacancies,
		p.MinSalary, p.MaxSalary, p.Currency, p.Deadline, p.Status, p.CoverLetterRequired,
		p.CoverLetterAllowed, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *postgresPostingRepo) Get(ctx context.Context, id string) (*JobPosting, error) {
	return scanPosting(r.db.QueryRowContext(ctx, `
		SELECT `+postingColumns+` FROM job_postings WHERE id = $1`, id))
}

func (r *postgresPostingRepo) Update(ctx context.Context, id string, p *JobPosting) error {
	responsibilities, _ := json.Marshal(p.Responsibilities)
	requiredSkills, _ := json.Marshal(p.RequiredSkills)
	preferredSkills, _ := json.Marshal(p.PreferredSkills)
	qualifications, _ := json.Marshal(p.Qualifications)

	res, err := r.db.ExecContext(ctx, `
		UPDATE job_postings SET
		  title=$1, description=$2, responsibilities=$3, required_skills=$4,
		  preferred_skills=$5, qualifications=$6, employment_type=$7,
		  work_arrangement=$8, vacancies=$9, min_salary=$10, max_salary=$11,
		  currency=$12, deadline=$13, status=$14, cover_letter_required=$15,
		  cover_letter_allowed=$16, updated_at=$17
		WHERE id=$18`,
		p.Title, p.Description, responsibilities, requiredSkills,
		preferredSkills, qualifications, p.EmploymentType,
		p.WorkArrangement, p.Vacancies, p.MinSalary, p.MaxSalary,
		p.Currency, p.Deadline, p.Status, p.CoverLetterRequired,
		p.CoverLetterAllowed, p.UpdatedAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *postgresPostingRepo) ListByTenant(ctx context.Context, tenantID string) ([]*JobPosting, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postingColumns+` FROM job_postings
		WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []*JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPosting(row rowScanner) (*JobPosting, error) {
	p := &JobPosting{}
	var responsibilities, requiredSkills, preferredSkills, qualifications []byte
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Code, &p.Title, &p.Description, &responsibilities,
		&requiredSkills, &preferredSkills, &qualifications, &p.EmploymentType,
		&p.WorkArrangement, &p.Vacancies, &p.MinSalary, &p.MaxSalary, &p.Currency,
		&p.Deadline, &p.Status, &p.CoverLetterRequired, &p.CoverLetterAllowed,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	json.Unmarshal(responsibilities, &p.Responsibilities)
	json.Unmarshal(requiredSkills, &p.RequiredSkills)
	json.Unmarshal(preferredSkills, &p.PreferredSkills)
	json.Unmarshal(qualifications, &p.Qualifications)
	return p, nil
}

type postgresApplicationRepo struct{ db *sql.DB }

// NewPostgresApplicationRepository creates a PostgreSQL application repository.
func NewPostgresApplicationRepository(db *sql.DB) ApplicationRepository {
	return &postgresApplicationRepo{db: db}
}

const applicationColumns = `
	id, job_posting_id, candidate_name, candidate_email, candidate_phone,
	status, resume_url, cover_letter, applied_at, updated_at`

func (r *postgresApplicationRepo) Insert(ctx context.Context, a *Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.JobPostingID, a.CandidateName, a.CandidateEmail, a.CandidatePhone,
		a.Status, a.ResumeURL, a.CoverLetter, a.AppliedAt, a.UpdatedAt)
	return err
}

func (r *postgresApplicationRepo) Get(ctx context.Context, id string) (*Application, error) {
	return scanApplication(r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

func (r *postgresApplicationRepo) Update(ctx context.Context, id string, a *Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET status=$1, updated_at=$2 WHERE id=$3`,
		a.Status, a.UpdatedAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *postgresApplicationRepo) ListByPosting(ctx context.Context, postingID string) ([]*Application, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE job_posting_id = $1 ORDER BY applied_at`, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

func scanApplication(row rowScanner) (*Application, error) {
	a := &Application{}
	err := row.Scan(
		&a.ID, &a.JobPostingID, &a.CandidateName, &a.CandidateEmail, &a.CandidatePhone,
		&a.Status, &a.ResumeURL, &a.CoverLetter, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
