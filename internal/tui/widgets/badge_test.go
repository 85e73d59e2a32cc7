// ABOUTME: Tests for badge level mapping
// ABOUTME: Checks severity, status and role badges carry the expected text

package widgets

import (
	"strings"
	"testing"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/notify"
)

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		severity notify.Severity
		want     StatusLevel
	}{
		{notify.Success, StatusOK},
		{notify.Error, StatusCritical},
		{notify.Info, StatusInfo},
		{notify.Warning, StatusWarning},
		{notify.Severity(42), StatusNeutral},
	}
	for _, tt := range tests {
		if got := SeverityLevel(tt.severity); got != tt.want {
			t.Errorf("SeverityLevel(%v) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}

func TestApplicationLevel(t *testing.T) {
	tests := map[client.ApplicationStatus]StatusLevel{
		client.StatusApplied:   StatusInfo,
		client.StatusInterview: StatusWarning,
		client.StatusOffer:     StatusWarning,
		client.StatusAccepted:  StatusOK,
		client.StatusRejected:  StatusCritical,
		"Unknown":              StatusNeutral,
	}
	for status, want := range tests {
		if got := ApplicationLevel(status); got != want {
			t.Errorf("ApplicationLevel(%q) = %d, want %d", status, got, want)
		}
	}
}

func TestBadgesContainText(t *testing.T) {
	if !strings.Contains(ApplicationBadge(client.StatusOffer), "Offer") {
		t.Error("expected status text in badge")
	}
	if !strings.Contains(ApplicationBadge(""), "--") {
		t.Error("expected placeholder for empty status")
	}
	if !strings.Contains(RoleBadge(client.RolePoster), "Job Poster") {
		t.Error("expected role label in badge")
	}
	if !strings.Contains(StatusText("Saved", StatusOK), "Saved") {
		t.Error("expected text in status text")
	}
}
