// ABOUTME: Tests for the job posting form
// ABOUTME: Validates prefill, step progression and the completed payload

package jobform

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/jobboard/internal/client"
)

var today = time.Date(2030, 6, 15, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

type poke struct{}

// finishStep marks the current step as submitted and runs one update
func finishStep(f *Form) tea.Cmd {
	f.form.State = huh.StateCompleted
	_, cmd := f.Update(poke{})
	return cmd
}

func TestNew_CreateMode(t *testing.T) {
	f := New("", client.JobInput{}, clock)

	if f.Editing() {
		t.Error("expected create mode")
	}
	if f.Title() != "Create New Job Posting" {
		t.Errorf("unexpected title %q", f.Title())
	}
	if f.step != 1 {
		t.Errorf("expected step 1, got %d", f.step)
	}
}

func TestNew_EditPrefills(t *testing.T) {
	f := New("j1", client.JobInput{
		CompanyName:         "Acme",
		JobTitle:            "Go Engineer",
		Requirements:        []string{"Go", "SQL"},
		ApplicationDeadline: "2030-07-01",
	}, clock)

	if !f.Editing() || f.Title() != "Edit Job Posting" {
		t.Errorf("expected edit mode, got title %q", f.Title())
	}
	if f.values.CompanyName != "Acme" || f.values.Requirements != "Go\nSQL" {
		t.Errorf("unexpected prefill %+v", f.values)
	}
}

func TestSteps_AdvanceAndComplete(t *testing.T) {
	f := New("j1", client.JobInput{}, clock)
	f.values.CompanyName = "Acme"
	f.values.JobTitle = "Go Engineer"
	f.values.Description = "Build things"
	f.values.Requirements = "Go\n\n SQL "
	f.values.ApplicationDeadline = "2030-07-01"

	finishStep(f)
	if f.step != 2 {
		t.Fatalf("expected step 2, got %d", f.step)
	}
	finishStep(f)
	if f.step != 3 {
		t.Fatalf("expected step 3, got %d", f.step)
	}

	cmd := finishStep(f)
	msg, ok := cmd().(CompleteMsg)
	if !ok {
		t.Fatal("expected CompleteMsg after the last step")
	}
	if msg.JobID != "j1" {
		t.Errorf("expected job id j1, got %q", msg.JobID)
	}
	if msg.Input.Location != client.DefaultJobLocation || msg.Input.SalaryRange != client.DefaultSalaryRange {
		t.Errorf("expected defaults filled, got %+v", msg.Input)
	}
	if len(msg.Input.Requirements) != 2 || msg.Input.Requirements[1] != "SQL" {
		t.Errorf("expected split requirements, got %v", msg.Input.Requirements)
	}
}

func TestComplete_PastDeadlineRestarts(t *testing.T) {
	f := New("", client.JobInput{}, clock)
	f.values.CompanyName = "Acme"
	f.values.JobTitle = "Go Engineer"
	f.values.Description = "Build things"
	f.values.ApplicationDeadline = "2020-01-01"
	f.step = len(stepNames)

	finishStep(f)

	if f.step != 1 {
		t.Errorf("expected form to restart at step 1, got %d", f.step)
	}
	if len(f.errs) == 0 {
		t.Error("expected validation errors")
	}
	if f.values.CompanyName != "Acme" {
		t.Error("expected entered values to be kept")
	}
}

func TestEscCancels(t *testing.T) {
	f := New("", client.JobInput{}, clock)
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestRenderProgress_Width(t *testing.T) {
	for _, width := range []int{60, 100} {
		f := New("", client.JobInput{}, clock)
		f.SetWidth(width)
		for _, line := range strings.Split(f.renderProgress(), "\n") {
			want := width - 1
			if want < 60 {
				want = 60
			}
			if w := lipgloss.Width(line); w != want {
				t.Errorf("width %d: line %q is %d wide, want %d", width, line, w, want)
			}
		}
	}
}
