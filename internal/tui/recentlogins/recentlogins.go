// ABOUTME: Remembers the email addresses recently used to sign in
// ABOUTME: Stored as JSON in the config directory so the login form can be prefilled

package recentlogins

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/markalston/jobboard/internal/validate"
)

// MaxRecentLogins is the maximum number of emails to keep
const MaxRecentLogins = 5

// FileName is the file written inside the config directory
const FileName = "recent.json"

// RecentLogins manages the list of recently used sign-in emails
type RecentLogins struct {
	configDir string
	emails    []string
}

type recentData struct {
	Emails []string `json:"emails"`
}

// New creates a new RecentLogins manager with the given config directory.
// An empty directory keeps the list in memory only.
func New(configDir string) *RecentLogins {
	return &RecentLogins{configDir: configDir}
}

func (rl *RecentLogins) configFile() string {
	return filepath.Join(rl.configDir, FileName)
}

// Load reads the list from disk, dropping entries that are not valid emails
func (rl *RecentLogins) Load() ([]string, error) {
	if rl.configDir == "" {
		if rl.emails == nil {
			rl.emails = []string{}
		}
		return rl.emails, nil
	}

	data, err := os.ReadFile(rl.configFile())
	if os.IsNotExist(err) {
		rl.emails = []string{}
		return rl.emails, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		// Invalid JSON, start fresh
		rl.emails = []string{}
		return rl.emails, nil
	}

	rl.emails = make([]string, 0, len(recent.Emails))
	for _, email := range recent.Emails {
		if validate.Email(email) == nil {
			rl.emails = append(rl.emails, email)
		}
	}
	return rl.emails, nil
}

// Save writes the list to disk, trimmed to MaxRecentLogins
func (rl *RecentLogins) Save(emails []string) error {
	if len(emails) > MaxRecentLogins {
		emails = emails[:MaxRecentLogins]
	}
	rl.emails = emails

	if rl.configDir == "" {
		return nil
	}
	if err := os.MkdirAll(rl.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(recentData{Emails: emails}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rl.configFile(), data, 0600)
}

// Add puts email at the front of the list, removing any earlier copy
func (rl *RecentLogins) Add(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if rl.emails == nil {
		if _, err := rl.Load(); err != nil {
			rl.emails = []string{}
		}
	}

	emails := make([]string, 0, len(rl.emails)+1)
	emails = append(emails, email)
	for _, e := range rl.emails {
		if e != email {
			emails = append(emails, e)
		}
	}
	return rl.Save(emails)
}

// Last returns the most recently used email, or ""
func (rl *RecentLogins) Last() string {
	if rl.emails == nil {
		rl.Load()
	}
	if len(rl.emails) == 0 {
		return ""
	}
	return rl.emails[0]
}
