// ABOUTME: Tests for apply and the applications commands
// ABOUTME: Covers role gating, status parsing, confirmation prompts and empty states

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/validate"
)

func TestApply_PosterRefused(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)
	applyYes = true

	var buf bytes.Buffer
	if exitCode := runApply(context.Background(), &buf, "j1"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(env.stderr.String(), "[WARN] You must be logged in as a Job Applicant to apply.") {
		t.Errorf("expected applicant warning, got %q", env.stderr.String())
	}
	if env.backend.called("POST /applications/apply/j1") {
		t.Error("application must not be sent for a poster")
	}
}

func TestApply_AnonymousRefused(t *testing.T) {
	env := newTestEnv(t)
	applyYes = true

	var buf bytes.Buffer
	if exitCode := runApply(context.Background(), &buf, "j1"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if env.backend.callCount() != 0 {
		t.Errorf("expected no backend calls, got %v", env.backend.calls)
	}
}

func TestApply_Success(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	fc := &fakeConfirmer{answer: true}
	useConfirmer(fc)
	applyNotes, applyResumeURL = "  Available from May  ", "https://example.com/cv.pdf"

	var buf bytes.Buffer
	if exitCode := runApply(context.Background(), &buf, "j1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}

	var in client.ApplicationInput
	env.backend.decodeBody(t, "POST /applications/apply/j1", &in)
	if in.Notes != "Available from May" || in.ResumeURL != "https://example.com/cv.pdf" {
		t.Errorf("unexpected payload %+v", in)
	}
	if fc.desc != "Are you sure you want to apply for this job?" {
		t.Errorf("unexpected prompt %q", fc.desc)
	}
	if !strings.Contains(buf.String(), "[OK] Application submitted successfully!") {
		t.Errorf("expected success notification, got %q", buf.String())
	}
}

func TestApply_InvalidResumeURL(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	applyYes, applyResumeURL = true, "not a url"

	var buf bytes.Buffer
	if exitCode := runApply(context.Background(), &buf, "j1"); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(env.stderr.String(), validate.MsgFormErrors) {
		t.Errorf("expected form errors, got %q", env.stderr.String())
	}
}

func TestApplicationsList(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	appStatus = "applied"

	var buf bytes.Buffer
	if exitCode := runApplicationsList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if q := env.backend.query("GET /applications/my-applications"); q.Get("status") != "Applied" {
		t.Errorf("expected normalized status filter, got %v", q)
	}
	for _, want := range []string{"a1", "Go Engineer", "Acme", "Applied"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output %q", want, buf.String())
		}
	}
}

func TestApplicationsList_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	env.backend.apps = nil

	var buf bytes.Buffer
	if exitCode := runApplicationsList(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "You haven't applied to any jobs yet.") {
		t.Errorf("expected empty state, got %q", buf.String())
	}
}

func TestApplicationsShow(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)

	var buf bytes.Buffer
	if exitCode := runApplicationsShow(context.Background(), &buf, "a1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"Application a1", "applicant@example.com", "Applied"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output %q", want, buf.String())
		}
	}
}

func TestApplicationsStatus_Invalid(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)

	var buf bytes.Buffer
	if exitCode := runApplicationsStatus(context.Background(), &buf, "a1", "Hired"); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(env.stderr.String(), "[ERROR] Invalid status selected.") {
		t.Errorf("expected invalid status notification, got %q", env.stderr.String())
	}
	if env.backend.callCount() != 0 {
		t.Errorf("expected no backend calls, got %v", env.backend.calls)
	}
}

func TestApplicationsStatus_Success(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, posterToken)

	var buf bytes.Buffer
	if exitCode := runApplicationsStatus(context.Background(), &buf, "a1", "interview"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}

	var body struct {
		Status client.ApplicationStatus `json:"status"`
	}
	env.backend.decodeBody(t, "PUT /applications/a1/status", &body)
	if body.Status != client.StatusInterview {
		t.Errorf("expected %q, got %q", client.StatusInterview, body.Status)
	}
	if !strings.Contains(buf.String(), "Application status updated successfully!") {
		t.Errorf("expected success notification, got %q", buf.String())
	}
}

func TestApplicationsWithdraw_PromptNamesJob(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	fc := &fakeConfirmer{answer: true}
	useConfirmer(fc)

	var buf bytes.Buffer
	if exitCode := runApplicationsWithdraw(context.Background(), &buf, "a1"); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", exitCode, env.stderr.String())
	}
	if fc.desc != `Are you sure you want to withdraw your application for "Go Engineer"?` {
		t.Errorf("unexpected prompt %q", fc.desc)
	}
	if !env.backend.called("DELETE /applications/a1") {
		t.Error("expected application to be deleted")
	}
	if !strings.Contains(buf.String(), "Application withdrawn successfully!") {
		t.Errorf("expected success notification, got %q", buf.String())
	}
}

func TestApplicationsWithdraw_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)
	appYes = true

	var buf bytes.Buffer
	if exitCode := runApplicationsWithdraw(context.Background(), &buf, "missing"); exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(env.stderr.String(), "Failed to load application details: Application not found") {
		t.Errorf("expected not found error, got %q", env.stderr.String())
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want client.ApplicationStatus
		ok   bool
	}{
		{"Offer", client.StatusOffer, true},
		{"accepted", client.StatusAccepted, true},
		{" REJECTED ", client.StatusRejected, true},
		{"", "", false},
		{"Hired", "", false},
	}
	for _, tt := range tests {
		got, ok := parseStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseStatus(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
