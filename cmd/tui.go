// ABOUTME: tui command launching the interactive client
// ABOUTME: Logs to debug.log in the config directory so output never corrupts the screen

package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/jobboard/internal/config"
	"github.com/markalston/jobboard/internal/logger"
	"github.com/markalston/jobboard/internal/notify"
	"github.com/markalston/jobboard/internal/output"
	"github.com/markalston/jobboard/internal/tui"
	"github.com/markalston/jobboard/internal/tui/icons"
	"github.com/markalston/jobboard/internal/tui/recentlogins"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive client",
	Long: `Launch the full-screen job board client.

Home offers login and signup; once signed in you land on the dashboard for
your role. Debug logs are written to debug.log in the config directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if exitCode := runTUI(ctx, stderr); exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(ctx context.Context, errw io.Writer) int {
	p := output.NewPrinter(errw, errw, output.ResolveColors(noColor, true))

	if !isInteractive() {
		p.FormatError(&output.CLIError{
			Summary:    "The interactive client needs a terminal",
			Suggestion: "Use the jobs, apply and applications commands in scripts",
		})
		return output.ExitUsageError
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		p.FormatError(&output.CLIError{
			Summary:    "Invalid configuration",
			Detail:     err.Error(),
			Suggestion: "Check --config, config.yaml and JOBBOARD_* variables",
		})
		return output.ExitUsageError
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, closeLog, err := logger.InitFile(cfg.ConfigDir, logger.Options{Level: level, Format: cfg.Log.Format})
	if err != nil {
		p.FormatError(&output.CLIError{Summary: "Cannot open debug log", Detail: err.Error()})
		return output.ExitFailure
	}
	defer closeLog()

	notes := notify.New(notify.WithDuration(cfg.NotificationDuration))
	defer notes.Close()
	c, sess := newCore(cfg, log, notes)

	icons.SetMode(icons.Mode(cfg.Output.Icons))
	log.Info("starting tui", "api_url", c.BaseURL(), "icons", cfg.Output.Icons)
	if err := tui.Run(ctx, tui.Deps{
		Client:  c,
		Session: sess,
		Notes:   notes,
		Recent:  recentlogins.New(cfg.ConfigDir),
		Logger:  log,
		Ctx:     ctx,
		Now:     time.Now,
	}); err != nil {
		log.Error("tui exited", "error", err)
		p.FormatError(&output.CLIError{Summary: "TUI failed", Detail: err.Error()})
		return output.ExitFailure
	}
	return output.ExitSuccess
}
