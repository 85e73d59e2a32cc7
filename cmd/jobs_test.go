// ABOUTME: Tests for the jobs commands
// ABOUTME: Covers listing, role gating, validation, update overlays, confirmation and 401 expiry

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/session"
	"github.com/markalston/jobboard/internal/validate"
)

func futureDate() string {
	return time.Now().AddDate(0, 2, 0).Format(validate.DateLayout)
}

func TestJobsList_Table(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	if exitCode := runJobsList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}
	for _, want := range []string{"Go Engineer", "Acme", "Berlin", "j1", "2 hours ago"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output %q", want, buf.String())
		}
	}
}

func TestJobsList_EncodesFilter(t *testing.T) {
	env := newTestEnv(t)
	jobSearch, jobFilterLocation, jobSort = "go", "Berlin", client.SortTitleAsc

	var buf bytes.Buffer
	if exitCode := runJobsList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	q := env.backend.query("GET /jobs")
	if q.Get("search") != "go" || q.Get("location") != "Berlin" || q.Get("sort") != client.SortTitleAsc {
		t.Errorf("unexpected query %v", q)
	}
}

func TestJobsList_InvalidSort(t *testing.T) {
	env := newTestEnv(t)
	jobSort = "salary_desc"

	var buf bytes.Buffer
	if exitCode := runJobsList(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if env.backend.callCount() != 0 {
		t.Errorf("expected no backend calls, got %v", env.backend.calls)
	}
}

func TestJobsList_EmptyForPoster(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	env.backend.jobs = nil

	var buf bytes.Buffer
	if exitCode := runJobsList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "No job postings found. Create one to get started!") {
		t.Errorf("expected poster empty state, got %q", buf.String())
	}
}

func TestJobsList_JSON(t *testing.T) {
	newTestEnv(t)
	jsonOutput = true

	var buf bytes.Buffer
	if exitCode := runJobsList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	var jobs []client.Job
	if err := json.Unmarshal(buf.Bytes(), &jobs); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Errorf("unexpected jobs %+v", jobs)
	}
}

func TestJobsList_ConnectionError(t *testing.T) {
	newTestEnv(t)
	apiURL = "http://localhost:99999"

	var buf bytes.Buffer
	if exitCode := runJobsList(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestJobsShow_WithApplicants(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	jobShowApplicants = true

	var buf bytes.Buffer
	if exitCode := runJobsShow(context.Background(), &buf, "j1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}
	if !env.backend.called("GET /jobs/j1") || !env.backend.called("GET /jobs/j1/applicants") {
		t.Errorf("expected job and applicants to be fetched, got %v", env.backend.calls)
	}
	for _, want := range []string{"Go Engineer", "Requirements:", "- SQL", "Applicants (1)", "applicant@example.com"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output %q", want, buf.String())
		}
	}
}

func TestJobsShow_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)

	var buf bytes.Buffer
	if exitCode := runJobsShow(context.Background(), &buf, "missing"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(env.stderr.String(), "[ERROR] Failed to load job: Job not found") {
		t.Errorf("expected not found error, got %q", env.stderr.String())
	}
}

func TestJobsCreate_ApplicantRefused(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	jobCompany, jobTitle, jobDescription, jobDeadline = "Acme", "SRE", "Keep it up", futureDate()

	var buf bytes.Buffer
	if exitCode := runJobsCreate(context.Background(), &buf); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if env.backend.called("POST /jobs") {
		t.Error("job must not be posted for an applicant")
	}
	if !strings.Contains(env.stderr.String(), "You must be logged in as a Job Poster to post jobs.") {
		t.Errorf("expected role warning, got %q", env.stderr.String())
	}
}

func TestJobsCreate_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	jobCompany, jobDeadline = "Acme", "2000-01-01"

	var buf bytes.Buffer
	if exitCode := runJobsCreate(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if env.backend.called("POST /jobs") {
		t.Error("invalid job must not be posted")
	}
	if !strings.Contains(env.stderr.String(), "Job Title") {
		t.Errorf("expected field messages, got %q", env.stderr.String())
	}
}

func TestJobsCreate_Success(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	jobCompany, jobTitle, jobDescription, jobDeadline = " Acme ", "SRE", "Keep it up", futureDate()
	jobRequirements = []string{"Linux", " ", "Go"}

	var buf bytes.Buffer
	if exitCode := runJobsCreate(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}

	var in client.JobInput
	env.backend.decodeBody(t, "POST /jobs", &in)
	if in.CompanyName != "Acme" || in.Location != client.DefaultJobLocation || in.SalaryRange != client.DefaultSalaryRange {
		t.Errorf("unexpected payload %+v", in)
	}
	if len(in.Requirements) != 2 || in.Requirements[1] != "Go" {
		t.Errorf("expected blank requirements dropped, got %v", in.Requirements)
	}
	if !strings.Contains(buf.String(), "[OK] Job created successfully!") {
		t.Errorf("expected success notification, got %q", buf.String())
	}
}

func TestJobsUpdate_OverlaysChangedFlags(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	jobTitle = "Staff Go Engineer"
	jobCompany = "ignored because unchanged"
	changed := func(name string) bool { return name == "title" }

	var buf bytes.Buffer
	if exitCode := runJobsUpdate(context.Background(), &buf, "j1", changed); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}

	var in client.JobInput
	env.backend.decodeBody(t, "PUT /jobs/j1", &in)
	if in.JobTitle != "Staff Go Engineer" {
		t.Errorf("expected new title, got %q", in.JobTitle)
	}
	if in.CompanyName != "Acme" || in.Location != "Berlin" {
		t.Errorf("expected unchanged fields kept, got %+v", in)
	}
	if len(in.Requirements) != 2 {
		t.Errorf("expected requirements kept, got %v", in.Requirements)
	}
	if !strings.Contains(buf.String(), "Job updated successfully!") {
		t.Errorf("expected update notification, got %q", buf.String())
	}
}

func TestJobsDelete(t *testing.T) {
	tests := []struct {
		name      string
		yes       bool
		confirmer Confirmer
		exitCode  int
		deleted   bool
	}{
		{"yes flag", true, nil, 0, true},
		{"confirmed", false, &fakeConfirmer{answer: true}, 0, true},
		{"declined", false, &fakeConfirmer{answer: false}, 0, false},
		{"not interactive", false, nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.login(t, posterToken)
			jobYes = tt.yes
			if tt.confirmer != nil {
				useConfirmer(tt.confirmer)
			}

			var buf bytes.Buffer
			if exitCode := runJobsDelete(context.Background(), &buf, "j1"); exitCode != tt.exitCode {
				t.Errorf("expected exit code %d, got %d", tt.exitCode, exitCode)
			}
			if got := env.backend.called("DELETE /jobs/j1"); got != tt.deleted {
				t.Errorf("expected deleted=%v, got %v", tt.deleted, got)
			}
			if tt.deleted && !strings.Contains(buf.String(), "Job deleted successfully!") {
				t.Errorf("expected delete notification, got %q", buf.String())
			}
		})
	}
}

func TestJobsDelete_PromptText(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	fc := &fakeConfirmer{answer: false}
	useConfirmer(fc)

	var buf bytes.Buffer
	runJobsDelete(context.Background(), &buf, "j1")

	if !strings.Contains(fc.desc, "All associated applications will also be deleted.") {
		t.Errorf("unexpected prompt %q", fc.desc)
	}
}

func TestJobsApplicants_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	applicantStatus = "Hired"

	var buf bytes.Buffer
	if exitCode := runJobsApplicants(context.Background(), &buf, "j1"); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if env.backend.callCount() != 0 {
		t.Errorf("expected no backend calls, got %v", env.backend.calls)
	}
}

func TestJobsApplicants_Filter(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	applicantStatus, applicantSort = "Interview", client.SortStatusAsc

	var buf bytes.Buffer
	if exitCode := runJobsApplicants(context.Background(), &buf, "j1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	q := env.backend.query("GET /jobs/j1/applicants")
	if q.Get("status") != "Interview" || q.Get("sort") != client.SortStatusAsc {
		t.Errorf("unexpected query %v", q)
	}
	if !strings.Contains(buf.String(), "applicant@example.com") {
		t.Errorf("expected applicant row, got %q", buf.String())
	}
}

func TestJobsApplicants_UnauthorizedExpiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	env.backend.reject = "GET /jobs/j1/applicants"

	var buf bytes.Buffer
	if exitCode := runJobsApplicants(context.Background(), &buf, "j1"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if env.token(t) != "" {
		t.Error("expected credential cleared after 401")
	}
	if !strings.Contains(buf.String(), session.MsgExpired) {
		t.Errorf("expected session expired notification, got %q", buf.String())
	}
	if !strings.Contains(env.stderr.String(), "[ERROR] Failed to fetch applicants: Not authorized, token failed") {
		t.Errorf("expected failure notification, got %q", env.stderr.String())
	}
	if !strings.Contains(env.stderr.String(), "jobboard login") {
		t.Errorf("expected login hint, got %q", env.stderr.String())
	}
}
