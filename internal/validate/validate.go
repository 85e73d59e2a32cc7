// ABOUTME: Client-side form validation for login, signup, job and application input
// ABOUTME: Rules run before any network call; failures are keyed by field

package validate

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/markalston/jobboard/internal/client"
)

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 6

// DateLayout is the accepted deadline format
const DateLayout = "2006-01-02"

// MsgFormErrors is reported when a submitted form fails validation
const MsgFormErrors = "Please correct the form errors."

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks presence and shape of an email address
func Email(s string) error {
	return validation.Validate(s, emailRules()...)
}

// Password checks presence and minimum length
func Password(s string, min int) error {
	return validation.Validate(s, passwordRules(min)...)
}

// ConfirmPassword checks that confirm is present and equals password
func ConfirmPassword(password, confirm string) error {
	return validation.Validate(confirm, confirmRules(password)...)
}

// Required rejects empty and whitespace-only values
func Required(value, field string) error {
	return validation.Validate(value, requiredTrimmed(field))
}

// DateInFuture checks a YYYY-MM-DD date that is today or later
func DateInFuture(value, field string, now time.Time) error {
	return validation.Validate(value, dateRules(field, now)...)
}

// Status checks an application status name
func Status(s string) error {
	return validation.Validate(client.ApplicationStatus(s), statusRules()...)
}

// Messages flattens a validation error into "field: message" lines
func Messages(err error) []string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %v", k, errs[k]))
	}
	return out
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Email is required."),
		validation.Match(emailPattern).Error("Invalid email format."),
	}
}

func passwordRules(min int) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Password is required."),
		validation.RuneLength(min, 0).Error(fmt.Sprintf("Password must be at least %d characters.", min)),
	}
}

func confirmRules(password string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Confirm password is required."),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if s != password {
				return errors.New("Passwords do not match.")
			}
			return nil
		}),
	}
}

func requiredTrimmed(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required.", field)
		}
		return nil
	})
}

func dateRules(field string, now time.Time) []validation.Rule {
	return []validation.Rule{
		requiredTrimmed(field),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if strings.TrimSpace(s) == "" {
				return nil
			}
			d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), now.Location())
			if err != nil {
				return fmt.Errorf("Invalid %s format.", field)
			}
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if d.Before(today) {
				return fmt.Errorf("%s must be in the future.", field)
			}
			return nil
		}),
	}
}

func statusRules() []validation.Rule {
	allowed := make([]interface{}, len(client.ApplicationStatuses))
	for i, s := range client.ApplicationStatuses {
		allowed[i] = s
	}
	return []validation.Rule{
		validation.Required.Error("Status is required."),
		validation.In(allowed...).Error("Status must be one of Applied, Interview, Offer, Rejected, Accepted."),
	}
}

// LoginInput is the login form
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login form
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules()...),
		validation.Field(&in.Password, requiredTrimmed("Password")),
	)
}

// SignupInput is the registration form
type SignupInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// Validate checks the registration form
func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, emailRules()...),
		validation.Field(&in.Password, passwordRules(MinPasswordLength)...),
		validation.Field(&in.ConfirmPassword, confirmRules(in.Password)...),
		validation.Field(&in.Role,
			requiredTrimmed("Role"),
			validation.By(func(value interface{}) error {
				s, _ := value.(string)
				if s == "" {
					return nil
				}
				if _, ok := client.ParseRole(s); !ok {
					return errors.New("Role must be job_poster or job_applicant.")
				}
				return nil
			}),
		),
	)
}

// JobInput is the job posting form. Requirements and Responsibilities hold
// one item per line.
type JobInput struct {
	CompanyName         string `json:"companyName"`
	JobTitle            string `json:"jobTitle"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	SalaryRange         string `json:"salaryRange"`
	Requirements        string `json:"requirements"`
	Responsibilities    string `json:"responsibilities"`
	ApplicationDeadline string `json:"applicationDeadline"`
}

// JobForm builds the editable form from an existing payload
func JobForm(in client.JobInput) JobInput {
	return JobInput{
		CompanyName:         in.CompanyName,
		JobTitle:            in.JobTitle,
		Description:         in.Description,
		Location:            in.Location,
		SalaryRange:         in.SalaryRange,
		Requirements:        strings.Join(in.Requirements, "\n"),
		Responsibilities:    strings.Join(in.Responsibilities, "\n"),
		ApplicationDeadline: in.ApplicationDeadline,
	}
}

// Validate checks the job form against the current date
func (in JobInput) Validate(now time.Time) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CompanyName, requiredTrimmed("Company Name")),
		validation.Field(&in.JobTitle, requiredTrimmed("Job Title")),
		validation.Field(&in.Description, requiredTrimmed("Description")),
		validation.Field(&in.ApplicationDeadline, dateRules("Application Deadline", now)...),
	)
}

// Payload converts the form into the API payload, splitting list fields by
// line and filling location and salary defaults
func (in JobInput) Payload() client.JobInput {
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = client.DefaultJobLocation
	}
	salary := strings.TrimSpace(in.SalaryRange)
	if salary == "" {
		salary = client.DefaultSalaryRange
	}
	return client.JobInput{
		CompanyName:         strings.TrimSpace(in.CompanyName),
		JobTitle:            strings.TrimSpace(in.JobTitle),
		Description:         strings.TrimSpace(in.Description),
		Location:            location,
		SalaryRange:         salary,
		Requirements:        SplitLines(in.Requirements),
		Responsibilities:    SplitLines(in.Responsibilities),
		ApplicationDeadline: strings.TrimSpace(in.ApplicationDeadline),
	}
}

// SplitLines returns the trimmed non-empty lines of s
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ApplicationInput is the optional apply form
type ApplicationInput struct {
	Notes     string `json:"notes"`
	ResumeURL string `json:"resumeUrl"`
}

// Validate checks the apply form. Both fields are optional.
func (in ApplicationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Notes, validation.Length(0, 2000).Error("Notes must be at most 2000 characters.")),
		validation.Field(&in.ResumeURL, is.URL.Error("Resume URL must be a valid URL.")),
	)
}
