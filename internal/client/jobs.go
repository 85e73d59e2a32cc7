// ABOUTME: Job posting endpoints and types
// ABOUTME: List, fetch, create, update and delete postings and list their applicants

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Job sort keys accepted by GET /jobs
const (
	SortCreatedDesc     = "createdAt_desc"
	SortCreatedAsc      = "createdAt_asc"
	SortTitleAsc        = "jobTitle_asc"
	SortTitleDesc       = "jobTitle_desc"
	SortCompanyAsc      = "companyName_asc"
	SortCompanyDesc     = "companyName_desc"
	DefaultJobSort      = SortCreatedDesc
	DefaultJobLocation  = "Remote"
	DefaultSalaryRange  = "Competitive"
	deadlineInputLayout = "2006-01-02"
)

// JobSorts lists the job sort keys in display order
var JobSorts = []string{SortCreatedDesc, SortCreatedAsc, SortTitleAsc, SortTitleDesc, SortCompanyAsc, SortCompanyDesc}

// Job is a job posting
type Job struct {
	ID                  string    `json:"_id"`
	CompanyName         string    `json:"companyName"`
	JobTitle            string    `json:"jobTitle"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	SalaryRange         string    `json:"salaryRange"`
	Requirements        []string  `json:"requirements"`
	Responsibilities    []string  `json:"responsibilities"`
	ApplicationDeadline time.Time `json:"applicationDeadline"`
	PostedBy            string    `json:"postedBy,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DeadlineInput formats the deadline the way the job form edits it
func (j *Job) DeadlineInput() string {
	if j.ApplicationDeadline.IsZero() {
		return ""
	}
	return j.ApplicationDeadline.UTC().Format(deadlineInputLayout)
}

// Input converts a fetched job back into an editable payload
func (j *Job) Input() JobInput {
	return JobInput{
		CompanyName:         j.CompanyName,
		JobTitle:            j.JobTitle,
		Description:         j.Description,
		Location:            j.Location,
		SalaryRange:         j.SalaryRange,
		Requirements:        j.Requirements,
		Responsibilities:    j.Responsibilities,
		ApplicationDeadline: j.DeadlineInput(),
	}
}

// JobInput is the create/update payload
type JobInput struct {
	CompanyName         string   `json:"companyName"`
	JobTitle            string   `json:"jobTitle"`
	Description         string   `json:"description"`
	Location            string   `json:"location"`
	SalaryRange         string   `json:"salaryRange"`
	Requirements        []string `json:"requirements"`
	Responsibilities    []string `json:"responsibilities"`
	ApplicationDeadline string   `json:"applicationDeadline"`
}

// JobFilter narrows GET /jobs
type JobFilter struct {
	Search   string
	Location string
	Sort     string
}

// Query encodes the filter, omitting empty values
func (f JobFilter) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

// ListJobs calls GET /jobs. Posters receive their own postings.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	var jobs []Job
	if err := c.do(ctx, http.MethodGet, "/jobs", filter.Query(), nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob calls GET /jobs/{id}
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob calls POST /jobs
func (c *Client) CreateJob(ctx context.Context, input JobInput) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodPost, "/jobs", nil, input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob calls PUT /jobs/{id}
func (c *Client) UpdateJob(ctx context.Context, id string, input JobInput) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), nil, input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob calls DELETE /jobs/{id}
func (c *Client) DeleteJob(ctx context.Context, id string) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListApplicants calls GET /jobs/{id}/applicants
func (c *Client) ListApplicants(ctx context.Context, jobID string, filter ApplicationFilter) ([]Application, error) {
	var apps []Application
	path := "/jobs/" + url.PathEscape(jobID) + "/applicants"
	if err := c.do(ctx, http.MethodGet, path, filter.Query(), nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}
