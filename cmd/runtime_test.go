// ABOUTME: Shared fixtures for command tests: an in-memory job board backend
// ABOUTME: and an isolated config directory, plus tests for the runtime helpers

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/credential"
)

const (
	posterToken    = "poster-token"
	applicantToken = "applicant-token"
	testPassword   = "secret123"
)

var fakeIdentities = map[string]client.Identity{
	posterToken:    {ID: "u-poster", Email: "poster@example.com", Role: client.RolePoster},
	applicantToken: {ID: "u-applicant", Email: "applicant@example.com", Role: client.RoleApplicant},
}

// fakeBackend answers the job board API from fixtures and records every call
// as "METHOD /path"
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	queries map[string]url.Values
	bodies  map[string][]byte

	jobs []client.Job
	apps []client.Application

	// reject answers this call with 401 even for a valid token
	reject string
}

func newFakeBackend() *fakeBackend {
	deadline := time.Now().AddDate(0, 1, 0).UTC().Truncate(24 * time.Hour)
	return &fakeBackend{
		queries: make(map[string]url.Values),
		bodies:  make(map[string][]byte),
		jobs: []client.Job{{
			ID:                  "j1",
			CompanyName:         "Acme",
			JobTitle:            "Go Engineer",
			Description:         "Build services",
			Location:            "Berlin",
			SalaryRange:         "100k",
			Requirements:        []string{"Go", "SQL"},
			Responsibilities:    []string{"Ship"},
			ApplicationDeadline: deadline,
			CreatedAt:           time.Now().Add(-2 * time.Hour),
		}},
		apps: []client.Application{{
			ID:          "a1",
			Job:         &client.JobSummary{ID: "j1", JobTitle: "Go Engineer", CompanyName: "Acme"},
			Applicant:   &client.Applicant{ID: "u-applicant", Email: "applicant@example.com"},
			Status:      client.StatusApplied,
			AppliedDate: time.Now().Add(-time.Hour),
		}},
	}
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	call := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.queries[call] = r.URL.Query()
	f.bodies[call] = data
	reject := f.reject == call
	f.mu.Unlock()

	switch call {
	case "POST /auth/login":
		f.login(w, data)
		return
	case "POST /auth/register":
		f.register(w, data)
		return
	case "GET /jobs":
		writeJSON(w, http.StatusOK, f.jobs)
		return
	}

	identity, ok := fakeIdentities[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok || reject {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case call == "GET /auth/profile":
		writeJSON(w, http.StatusOK, identity)
	case call == "POST /jobs":
		var in client.JobInput
		_ = json.Unmarshal(data, &in)
		writeJSON(w, http.StatusCreated, client.Job{ID: "j-new", CompanyName: in.CompanyName, JobTitle: in.JobTitle, Location: in.Location})
	case parts[0] == "jobs" && len(parts) == 2:
		f.job(w, r.Method, parts[1], data)
	case parts[0] == "jobs" && len(parts) == 3 && parts[2] == "applicants":
		writeJSON(w, http.StatusOK, f.apps)
	case call == "GET /applications/my-applications":
		writeJSON(w, http.StatusOK, f.apps)
	case parts[0] == "applications" && len(parts) == 3 && parts[1] == "apply":
		writeJSON(w, http.StatusCreated, client.Application{ID: "a-new", Status: client.StatusApplied})
	case parts[0] == "applications" && len(parts) == 3 && parts[2] == "status":
		var body struct {
			Status client.ApplicationStatus `json:"status"`
		}
		_ = json.Unmarshal(data, &body)
		writeJSON(w, http.StatusOK, client.Application{ID: parts[1], Status: body.Status})
	case parts[0] == "applications" && len(parts) == 2:
		f.application(w, r.Method, parts[1])
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found"})
	}
}

func (f *fakeBackend) login(w http.ResponseWriter, data []byte) {
	var creds client.Credentials
	_ = json.Unmarshal(data, &creds)
	for token, id := range fakeIdentities {
		if id.Email == creds.Email && creds.Password == testPassword {
			writeJSON(w, http.StatusOK, client.AuthResponse{Identity: id, Token: token})
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
}

func (f *fakeBackend) register(w http.ResponseWriter, data []byte) {
	var reg client.Registration
	_ = json.Unmarshal(data, &reg)
	if reg.Email == "taken@example.com" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "User already exists"})
		return
	}
	token := applicantToken
	if reg.Role == client.RolePoster {
		token = posterToken
	}
	writeJSON(w, http.StatusCreated, client.AuthResponse{
		Identity: client.Identity{ID: "u-new", Email: reg.Email, Role: reg.Role},
		Token:    token,
	})
}

func (f *fakeBackend) job(w http.ResponseWriter, method, id string, data []byte) {
	for _, j := range f.jobs {
		if j.ID != id {
			continue
		}
		switch method {
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]string{"message": "Job removed"})
		case http.MethodPut:
			var in client.JobInput
			_ = json.Unmarshal(data, &in)
			j.JobTitle, j.CompanyName = in.JobTitle, in.CompanyName
			writeJSON(w, http.StatusOK, j)
		default:
			writeJSON(w, http.StatusOK, j)
		}
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Job not found"})
}

func (f *fakeBackend) application(w http.ResponseWriter, method, id string) {
	for _, a := range f.apps {
		if a.ID != id {
			continue
		}
		if method == http.MethodDelete {
			writeJSON(w, http.StatusOK, map[string]string{"message": "Application withdrawn"})
			return
		}
		writeJSON(w, http.StatusOK, a)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Application not found"})
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) query(call string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[call]
}

func (f *fakeBackend) decodeBody(t *testing.T, call string, v interface{}) {
	t.Helper()
	f.mu.Lock()
	data := f.bodies[call]
	f.mu.Unlock()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decoding body of %s: %v (%q)", call, err, data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// testEnv points the commands at backend with an empty config directory and
// captures stderr. Flag variables are reset when the test ends.
type testEnv struct {
	backend   *fakeBackend
	configDir string
	stderr    *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	configDir := filepath.Join(dir, "jobboard")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("JOBBOARD_CONFIG_DIR", configDir)
	t.Setenv("NO_COLOR", "1")

	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	var errBuf bytes.Buffer
	prevStderr, prevInteractive, prevConfirmer := stderr, isInteractive, newConfirmer
	stderr = &errBuf
	isInteractive = func() bool { return false }
	apiURL = server.URL

	t.Cleanup(func() {
		stderr, isInteractive, newConfirmer = prevStderr, prevInteractive, prevConfirmer
		resetFlags()
	})

	return &testEnv{backend: backend, configDir: configDir, stderr: &errBuf}
}

// login saves token as if a previous login had succeeded
func (e *testEnv) login(t *testing.T, token string) {
	t.Helper()
	if err := credential.NewFileStore(e.configDir).Save(token); err != nil {
		t.Fatalf("saving token: %v", err)
	}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, err := credential.NewFileStore(e.configDir).Token()
	if err != nil {
		t.Fatalf("reading token: %v", err)
	}
	return token
}

func resetFlags() {
	apiURL, cfgFile, jsonOutput, verbose, noColor, noPersist = "", "", false, false, false, false
	authEmail, authPassword, authConfirm, authRole = "", "", "", ""
	jobSearch, jobFilterLocation, jobSort, jobShowApplicants, jobYes = "", "", "", false, false
	jobCompany, jobTitle, jobDescription, jobLocation, jobSalary, jobDeadline = "", "", "", "", "", ""
	jobRequirements, jobResponsibilities = nil, nil
	applicantStatus, applicantSort = "", ""
	applyNotes, applyResumeURL, applyYes = "", "", false
	appStatus, appSort, appYes = "", "", false
}

// fakeConfirmer answers every prompt with answer and records the last one
type fakeConfirmer struct {
	answer      bool
	title, desc string
}

func (f *fakeConfirmer) Confirm(title, description string) (bool, error) {
	f.title, f.desc = title, description
	return f.answer, nil
}

func useConfirmer(c Confirmer) {
	newConfirmer = func(bool) Confirmer { return c }
}

func TestRequireRole_WrongRoleSkipsBackend(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, applicantToken)

	var buf bytes.Buffer
	rt, code := startRuntime(&buf)
	if rt == nil {
		t.Fatalf("startRuntime failed with %d: %s", code, env.stderr.String())
	}
	defer rt.close()

	code, ok := rt.requireRole(context.Background(), client.RolePoster, "post jobs")
	if ok || code != 1 {
		t.Fatalf("expected role gate to refuse with 1, got ok=%v code=%d", ok, code)
	}
	if !strings.Contains(env.stderr.String(), "[WARN] You must be logged in as a Job Poster to post jobs.") {
		t.Errorf("expected role warning, got %q", env.stderr.String())
	}
	if env.backend.callCount() != 1 || !env.backend.called("GET /auth/profile") {
		t.Errorf("expected only the profile check, got %v", env.backend.calls)
	}
}

func TestRequireLogin_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	rt, _ := startRuntime(&buf)
	defer rt.close()

	if _, ok := rt.requireLogin(context.Background(), "view applications"); ok {
		t.Fatal("expected anonymous session to be refused")
	}
	if env.backend.callCount() != 0 {
		t.Errorf("expected no backend calls without a credential, got %v", env.backend.calls)
	}
}

func TestStartRuntime_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("JOBBOARD_LOG_LEVEL", "loud")

	var buf bytes.Buffer
	rt, code := startRuntime(&buf)
	if rt != nil || code != 2 {
		t.Fatalf("expected config failure with exit 2, got rt=%v code=%d", rt, code)
	}
	if !strings.Contains(env.stderr.String(), "Invalid configuration") {
		t.Errorf("expected configuration error, got %q", env.stderr.String())
	}
}

func TestFail_TransportErrorExits2(t *testing.T) {
	env := newTestEnv(t)
	apiURL = "http://localhost:99999"

	var buf bytes.Buffer
	rt, _ := startRuntime(&buf)
	defer rt.close()

	_, err := rt.client.ListJobs(context.Background(), client.JobFilter{})
	if code := rt.fail("Failed to fetch jobs", err); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(env.stderr.String(), "[ERROR] Failed to fetch jobs: ") {
		t.Errorf("expected error notification, got %q", env.stderr.String())
	}
	if !strings.Contains(env.stderr.String(), "Suggestion: Check --api-url") {
		t.Errorf("expected connectivity hint, got %q", env.stderr.String())
	}
}

func TestCheckChoice(t *testing.T) {
	if !checkChoice("", client.JobSorts) {
		t.Error("empty value should be accepted")
	}
	if !checkChoice(client.SortTitleAsc, client.JobSorts) {
		t.Error("known sort should be accepted")
	}
	if checkChoice("salary_desc", client.JobSorts) {
		t.Error("unknown sort should be rejected")
	}
}

func TestMain(m *testing.M) {
	// Keep a developer's .env or config.yaml out of the tests.
	dir, err := os.MkdirTemp("", "jobboard-cmd-test")
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
