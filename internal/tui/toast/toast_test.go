// ABOUTME: Tests for toast rendering
// ABOUTME: Checks ordering, overflow and truncation

package toast

import (
	"strings"
	"testing"

	"github.com/markalston/jobboard/internal/notify"
)

func note(msg string, sev notify.Severity) notify.Notification {
	return notify.Notification{ID: msg, Message: msg, Severity: sev}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil, 80); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}

func TestRender_InsertionOrder(t *testing.T) {
	out := Render([]notify.Notification{
		note("first", notify.Success),
		note("second", notify.Error),
	}, 80)

	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected first before second, got %q", out)
	}
}

func TestRender_Overflow(t *testing.T) {
	var notes []notify.Notification
	for _, m := range []string{"n1", "n2", "n3", "n4", "n5", "n6"} {
		notes = append(notes, note(m, notify.Info))
	}
	out := Render(notes, 80)

	if strings.Contains(out, "n1") || strings.Contains(out, "n2") {
		t.Errorf("expected oldest toasts hidden, got %q", out)
	}
	if !strings.Contains(out, "+2 earlier notifications") {
		t.Errorf("expected hidden count, got %q", out)
	}
	if !strings.Contains(out, "n6") {
		t.Errorf("expected newest toast, got %q", out)
	}
}

func TestRender_Truncates(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := Render([]notify.Notification{note(long, notify.Warning)}, 40)
	if strings.Contains(out, long) {
		t.Error("expected long message to be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected ellipsis, got %q", out)
	}
}
