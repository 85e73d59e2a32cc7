// ABOUTME: Authentication endpoints and identity types
// ABOUTME: Register, login and profile calls plus the poster/applicant role variant

package client

import (
	"context"
	"net/http"
)

// Role is the account type chosen at registration
type Role string

const (
	RolePoster    Role = "job_poster"
	RoleApplicant Role = "job_applicant"
)

// Roles lists every role in display order
var Roles = []Role{RolePoster, RoleApplicant}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RolePoster, RoleApplicant:
		return true
	default:
		return false
	}
}

// Label returns the human-readable role name
func (r Role) Label() string {
	switch r {
	case RolePoster:
		return "Job Poster"
	case RoleApplicant:
		return "Job Applicant"
	default:
		return "Unknown"
	}
}

// ParseRole accepts the wire value or a short alias (poster, applicant)
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RolePoster), "poster":
		return RolePoster, true
	case string(RoleApplicant), "applicant":
		return RoleApplicant, true
	default:
		return "", false
	}
}

// Identity is the authenticated user as reported by the backend
type Identity struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Identity
	Token string `json:"token"`
}

// Credentials are the login form values
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the signup form values
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Register calls POST /auth/register
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login calls POST /auth/login
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile calls GET /auth/profile
func (c *Client) Profile(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}
