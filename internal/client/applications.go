// ABOUTME: Job application endpoints and types
// ABOUTME: Apply, list, fetch, update status and withdraw applications

package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// ApplicationStatus is the hiring stage of an application
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "Applied"
	StatusInterview ApplicationStatus = "Interview"
	StatusOffer     ApplicationStatus = "Offer"
	StatusRejected  ApplicationStatus = "Rejected"
	StatusAccepted  ApplicationStatus = "Accepted"
)

// ApplicationStatuses lists every status in pipeline order
var ApplicationStatuses = []ApplicationStatus{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusAccepted}

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusAccepted:
		return true
	default:
		return false
	}
}

// Application sort keys
const (
	SortAppliedDesc        = "appliedDate_desc"
	SortAppliedAsc         = "appliedDate_asc"
	SortStatusAsc          = "status_asc"
	SortStatusDesc         = "status_desc"
	DefaultApplicationSort = SortAppliedDesc
)

// ApplicationSorts lists the application sort keys in display order
var ApplicationSorts = []string{SortAppliedDesc, SortAppliedAsc, SortStatusAsc, SortStatusDesc}

// JobSummary is the populated job reference on an application
type JobSummary struct {
	ID          string `json:"_id"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location,omitempty"`
}

// Applicant is the populated applicant reference on an application
type Applicant struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Application is a job application
type Application struct {
	ID          string            `json:"_id"`
	Job         *JobSummary       `json:"job,omitempty"`
	Applicant   *Applicant        `json:"applicant,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedDate time.Time         `json:"appliedDate"`
	Notes       string            `json:"notes,omitempty"`
	ResumeURL   string            `json:"resumeUrl,omitempty"`
}

// JobTitle returns the populated job title, or an empty string
func (a *Application) JobTitle() string {
	if a.Job == nil {
		return ""
	}
	return a.Job.JobTitle
}

// CompanyName returns the populated company name, or an empty string
func (a *Application) CompanyName() string {
	if a.Job == nil {
		return ""
	}
	return a.Job.CompanyName
}

// ApplicantEmail returns the populated applicant email, or an empty string
func (a *Application) ApplicantEmail() string {
	if a.Applicant == nil {
		return ""
	}
	return a.Applicant.Email
}

// ApplicationInput is the optional payload sent when applying
type ApplicationInput struct {
	Notes     string `json:"notes,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty"`
}

// ApplicationFilter narrows application listings
type ApplicationFilter struct {
	Status ApplicationStatus
	Sort   string
}

// Query encodes the filter, omitting empty values
func (f ApplicationFilter) Query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q
}

type statusUpdate struct {
	Status ApplicationStatus `json:"status"`
}

// Apply calls POST /applications/apply/{jobId}
func (c *Client) Apply(ctx context.Context, jobID string, input ApplicationInput) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodPost, "/applications/apply/"+url.PathEscape(jobID), nil, input, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// MyApplications calls GET /applications/my-applications
func (c *Client) MyApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	var apps []Application
	if err := c.do(ctx, http.MethodGet, "/applications/my-applications", filter.Query(), nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetApplication calls GET /applications/{id}
func (c *Client) GetApplication(ctx context.Context, id string) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus calls PUT /applications/{id}/status
func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status ApplicationStatus) (*Application, error) {
	var app Application
	path := "/applications/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPut, path, nil, statusUpdate{Status: status}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// DeleteApplication calls DELETE /applications/{id}
func (c *Client) DeleteApplication(ctx context.Context, id string) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
