// ABOUTME: Shared per-command wiring of config, logger, stores, client and session
// ABOUTME: Also holds the helpers that turn failures into notifications and exit codes

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/config"
	"github.com/markalston/jobboard/internal/credential"
	"github.com/markalston/jobboard/internal/logger"
	"github.com/markalston/jobboard/internal/notify"
	"github.com/markalston/jobboard/internal/output"
	"github.com/markalston/jobboard/internal/session"
	"github.com/markalston/jobboard/internal/validate"
)

// stderr receives notifications, errors and logs. Tests swap it for a buffer.
var stderr io.Writer = os.Stderr

// runtime is the core every command runs against
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	notes   *notify.Store
	client  *client.Client
	session *session.Store

	// out prints results; status prints notifications and errors. In JSON
	// mode status writes to stderr so stdout stays parseable.
	out    *output.Printer
	status *output.Printer
}

func newRuntime(w io.Writer) (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(stderr, logger.Options{Level: level, Format: cfg.Log.Format})

	// Notifications stay until the command flushes them.
	notes := notify.New(notify.WithDuration(0))
	c, sess := newCore(cfg, log, notes)

	colors := output.ResolveColors(noColor, cfg.Output.Colors)
	out := output.NewPrinter(w, stderr, colors)
	status := out
	if IsJSONOutput() {
		status = output.NewPrinter(stderr, stderr, colors)
	}

	log.Debug("runtime ready", "api_url", c.BaseURL(), "config_dir", cfg.ConfigDir)

	return &runtime{
		cfg:     cfg,
		logger:  log,
		notes:   notes,
		client:  c,
		session: sess,
		out:     out,
		status:  status,
	}, nil
}

// newCore wires the credential store, client and session store. A 401 from
// any request expires the session.
func newCore(cfg *config.Config, log *slog.Logger, notes *notify.Store) (*client.Client, *session.Store) {
	var creds credential.Store = credential.NewFileStore(cfg.ConfigDir)
	if noPersist {
		creds = credential.NewMemoryStore("")
	}
	c := client.New(GetAPIURL(cfg),
		client.WithCredentials(creds),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	sess := session.New(c, creds, notes, session.WithLogger(log))
	c.SetUnauthorizedHandler(sess.Expire)
	return c, sess
}

// startRuntime builds the runtime or reports why it could not
func startRuntime(w io.Writer) (*runtime, int) {
	rt, err := newRuntime(w)
	if err != nil {
		p := output.NewPrinter(stderr, stderr, output.ResolveColors(noColor, true))
		p.FormatError(&output.CLIError{
			Summary:    "Invalid configuration",
			Detail:     err.Error(),
			Suggestion: "Check --config, config.yaml and JOBBOARD_* variables",
		})
		return nil, output.ExitUsageError
	}
	return rt, output.ExitSuccess
}

func (rt *runtime) close() {
	rt.notes.Close()
}

// done flushes pending notifications and returns code
func (rt *runtime) done(code int) int {
	rt.status.Flush(rt.notes)
	return code
}

// fail records "<summary>: <cause>" as an error notification, flushes, and
// prints a hint. Backend failures exit 1, transport failures exit 2.
func (rt *runtime) fail(summary string, err error) int {
	e := output.FromAPI(summary, err)
	rt.notes.Error(fmt.Sprintf("%s: %s", summary, e.Detail))
	rt.status.Flush(rt.notes)
	rt.status.Suggest(e.Suggestion)
	return e.ExitCode
}

// invalid reports client-side validation errors
func (rt *runtime) invalid(err error) int {
	rt.status.Flush(rt.notes)
	rt.status.FormatError(&output.CLIError{
		Summary: validate.MsgFormErrors,
		Detail:  strings.Join(validate.Messages(err), "; "),
	})
	return output.ExitUsageError
}

// usage reports a bad flag or argument
func (rt *runtime) usage(summary, suggestion string) int {
	rt.status.Flush(rt.notes)
	rt.status.FormatError(&output.CLIError{Summary: summary, Suggestion: suggestion})
	return output.ExitUsageError
}

// restore runs session initialization. Only a transport failure is returned
// as an exit code; a rejected credential leaves the session anonymous.
func (rt *runtime) restore(ctx context.Context) (int, bool) {
	if err := rt.session.Initialize(ctx); err != nil && client.StatusCode(err) == 0 {
		return rt.fail("Failed to restore session", err), false
	}
	return output.ExitSuccess, true
}

// requireRole restores the session and checks its role before any backend
// call is made on the user's behalf
func (rt *runtime) requireRole(ctx context.Context, want client.Role, action string) (int, bool) {
	if code, ok := rt.restore(ctx); !ok {
		return code, false
	}
	if snap := rt.session.Snapshot(); !snap.Authenticated() || snap.Role() != want {
		rt.notes.Warning(fmt.Sprintf("You must be logged in as a %s to %s.", want.Label(), action))
		return rt.done(output.ExitFailure), false
	}
	return output.ExitSuccess, true
}

// requireLogin restores the session and checks that someone is logged in
func (rt *runtime) requireLogin(ctx context.Context, action string) (int, bool) {
	if code, ok := rt.restore(ctx); !ok {
		return code, false
	}
	if !rt.session.Snapshot().Authenticated() {
		rt.notes.Warning(fmt.Sprintf("You must be logged in to %s.", action))
		return rt.done(output.ExitFailure), false
	}
	return output.ExitSuccess, true
}

// checkChoice validates an enumerated flag value; empty means unset
func checkChoice(value string, allowed []string) bool {
	if value == "" {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

func statusChoices() []string {
	out := make([]string, 0, len(client.ApplicationStatuses))
	for _, s := range client.ApplicationStatuses {
		out = append(out, string(s))
	}
	return out
}
