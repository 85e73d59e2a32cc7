// ABOUTME: Login, register, logout and whoami commands
// ABOUTME: Drive the session store and persist the credential in the config directory

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/credential"
	"github.com/markalston/jobboard/internal/output"
	"github.com/markalston/jobboard/internal/session"
	"github.com/markalston/jobboard/internal/validate"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authConfirm  string
	authRole     string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the credential",
	Long: `Log in with email and password. The returned credential is saved in the
config directory and sent with every later command. Missing fields are
prompted for when running in a terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create an account and log in",
	Long: `Create an account as a job poster or job applicant. On success the new
account is logged in. --role accepts job_poster, job_applicant, poster or
applicant (default: applicant).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved credential",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"profile"},
	Short:   "Show the logged-in account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password")

	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&authConfirm, "confirm-password", "", "Repeat the password (defaults to --password when not prompting)")
	registerCmd.Flags().StringVar(&authRole, "role", "", "Account role: poster or applicant")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// identityJSON is the machine-readable account view. The credential itself
// is never printed.
type identityJSON struct {
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	Role      client.Role `json:"role"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
}

func newIdentityJSON(s *session.Session) identityJSON {
	out := identityJSON{UserID: s.UserID, Email: s.Email, Role: s.Role}
	if exp, ok := credential.Expiry(s.Credential); ok {
		out.ExpiresAt = &exp
	}
	return out
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	email, password := authEmail, authPassword
	if err := promptCredentials(&email, &password); err != nil {
		return promptFailed(rt, err, "Pass --email and --password")
	}

	if err := (validate.LoginInput{Email: email, Password: password}).Validate(); err != nil {
		return rt.invalid(err)
	}

	sess, err := rt.session.Login(ctx, email, password)
	if err != nil {
		return rt.done(authExitCode(err))
	}
	return printIdentity(rt, &sess)
}

// runRegister executes the signup flow and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	email, password, confirm := authEmail, authPassword, authConfirm
	var role client.Role
	if authRole != "" {
		r, ok := client.ParseRole(authRole)
		if !ok {
			return rt.usage("Invalid role: "+authRole, "Use --role poster or --role applicant")
		}
		role = r
	}
	if !isInteractive() {
		if confirm == "" {
			confirm = password
		}
		if role == "" {
			role = client.RoleApplicant
		}
	}

	if err := promptRegistration(&email, &password, &confirm, &role); err != nil {
		return promptFailed(rt, err, "Pass --email, --password and --role")
	}

	in := validate.SignupInput{Email: email, Password: password, ConfirmPassword: confirm, Role: string(role)}
	if err := in.Validate(); err != nil {
		return rt.invalid(err)
	}

	sess, err := rt.session.Register(ctx, email, password, role)
	if err != nil {
		return rt.done(authExitCode(err))
	}
	return printIdentity(rt, &sess)
}

// runLogout clears the credential. Logging out twice is not an error.
func runLogout(w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	rt.session.Logout()
	return rt.done(output.ExitSuccess)
}

// runWhoami restores the session and prints the account
func runWhoami(ctx context.Context, w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.restore(ctx); !ok {
		return code
	}

	snap := rt.session.Snapshot()
	if !snap.Authenticated() {
		rt.notes.Info("Not logged in. Run 'jobboard login' or 'jobboard register'.")
		return rt.done(output.ExitFailure)
	}
	return printIdentity(rt, snap.Session)
}

func printIdentity(rt *runtime, s *session.Session) int {
	if IsJSONOutput() {
		rt.status.Flush(rt.notes)
		if err := rt.out.JSON(newIdentityJSON(s)); err != nil {
			return rt.fail("Failed to print account", err)
		}
		return output.ExitSuccess
	}

	rt.status.Flush(rt.notes)
	rt.out.Field("Email", s.Email)
	rt.out.Field("User ID", s.UserID)
	rt.out.Field("Role", s.Role.Label())
	if exp, ok := credential.Expiry(s.Credential); ok {
		rt.out.Field("Expires", humanize.Time(exp))
	}
	return output.ExitSuccess
}

func promptFailed(rt *runtime, err error, suggestion string) int {
	if errors.Is(err, errNotInteractive) {
		return rt.usage("Missing required flags", suggestion)
	}
	return rt.usage("Prompt cancelled", "")
}

// authExitCode maps a failed login or signup: a rejected request exits 1,
// an unreachable backend exits 2. The session already notified the user.
func authExitCode(err error) int {
	return output.FromAPI("", err).ExitCode
}
