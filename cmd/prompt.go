// ABOUTME: Interactive prompts for missing credentials and destructive confirmations
// ABOUTME: Uses huh forms on a terminal and refuses to guess when stdin is not one

package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/validate"
	"github.com/mattn/go-isatty"
)

var errNotInteractive = errors.New("stdin is not a terminal")

// isInteractive reports whether prompts can be shown
var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

type huhConfirmer struct{}

func (huhConfirmer) Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

type autoConfirm struct{}

func (autoConfirm) Confirm(string, string) (bool, error) { return true, nil }

type refuseConfirm struct{}

func (refuseConfirm) Confirm(string, string) (bool, error) { return false, errNotInteractive }

// newConfirmer picks the confirmer for a command. Tests replace it.
var newConfirmer = func(yes bool) Confirmer {
	switch {
	case yes:
		return autoConfirm{}
	case isInteractive():
		return huhConfirmer{}
	default:
		return refuseConfirm{}
	}
}

// promptCredentials asks for whichever of email and password is missing
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(email).Validate(validate.Email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password))
	}
	return runFields(fields)
}

// promptRegistration extends promptCredentials with confirmation and role
func promptRegistration(email, password, confirm *string, role *client.Role) error {
	if err := promptCredentials(email, password); err != nil {
		return err
	}
	var fields []huh.Field
	if *confirm == "" {
		fields = append(fields, huh.NewInput().Title("Confirm Password").EchoMode(huh.EchoModePassword).Value(confirm))
	}
	if *role == "" {
		opts := make([]huh.Option[client.Role], 0, len(client.Roles))
		for _, r := range client.Roles {
			opts = append(opts, huh.NewOption(r.Label(), r))
		}
		*role = client.RoleApplicant
		fields = append(fields, huh.NewSelect[client.Role]().Title("I am a").Options(opts...).Value(role))
	}
	return runFields(fields)
}

func runFields(fields []huh.Field) error {
	if len(fields) == 0 {
		return nil
	}
	if !isInteractive() {
		return errNotInteractive
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
