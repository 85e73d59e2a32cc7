// ABOUTME: Application commands: apply, and list/show/status/withdraw under applications
// ABOUTME: Applicants apply and withdraw; job posters move applications through statuses

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/output"
	"github.com/markalston/jobboard/internal/validate"
	"github.com/spf13/cobra"
)

var (
	applyNotes     string
	applyResumeURL string
	applyYes       bool

	appStatus string
	appSort   string
	appYes    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply for a job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runApply(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "Track and review job applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your applications",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runApplicationsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var applicationsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runApplicationsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var applicationsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change an application's status",
	Long:  `Change an application's status. Status is one of Applied, Interview, Offer, Rejected or Accepted.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runApplicationsStatus(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var applicationsWithdrawCmd = &cobra.Command{
	Use:   "withdraw <id>",
	Short: "Withdraw one of your applications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runApplicationsWithdraw(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyNotes, "notes", "", "Note to the job poster")
	applyCmd.Flags().StringVar(&applyResumeURL, "resume-url", "", "Link to your resume")
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "Skip the confirmation prompt")

	applicationsListCmd.Flags().StringVar(&appStatus, "status", "", "Filter by status: "+strings.Join(statusChoices(), ", "))
	applicationsListCmd.Flags().StringVar(&appSort, "sort", "", "Sort order: "+strings.Join(client.ApplicationSorts, ", "))

	applicationsWithdrawCmd.Flags().BoolVarP(&appYes, "yes", "y", false, "Skip the confirmation prompt")

	applicationsCmd.AddCommand(applicationsListCmd, applicationsShowCmd, applicationsStatusCmd, applicationsWithdrawCmd)
	rootCmd.AddCommand(applyCmd, applicationsCmd)
}

// runApply submits an application after confirmation
func runApply(ctx context.Context, w io.Writer, jobID string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.requireRole(ctx, client.RoleApplicant, "apply"); !ok {
		return code
	}

	in := validate.ApplicationInput{Notes: applyNotes, ResumeURL: applyResumeURL}
	if err := in.Validate(); err != nil {
		return rt.invalid(err)
	}

	ok, err := newConfirmer(applyYes).Confirm("Apply?", "Are you sure you want to apply for this job?")
	if err != nil {
		return rt.usage("Confirmation required", "Pass --yes to apply without prompting")
	}
	if !ok {
		rt.notes.Info("Cancelled.")
		return rt.done(output.ExitSuccess)
	}

	app, err := rt.client.Apply(ctx, jobID, client.ApplicationInput{
		Notes:     strings.TrimSpace(in.Notes),
		ResumeURL: strings.TrimSpace(in.ResumeURL),
	})
	if err != nil {
		return rt.fail("Failed to apply", err)
	}
	rt.notes.Success("Application submitted successfully!")
	rt.status.Flush(rt.notes)

	if IsJSONOutput() {
		return jsonResult(rt, app)
	}
	rt.out.Field("Application", app.ID)
	rt.out.Field("Status", rt.out.StatusBadge(app.Status))
	return output.ExitSuccess
}

// runApplicationsList lists the applicant's own applications
func runApplicationsList(ctx context.Context, w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	status, ok := parseStatus(appStatus)
	if appStatus != "" && !ok {
		return rt.usage("Invalid status: "+appStatus, "Use one of: "+strings.Join(statusChoices(), ", "))
	}
	if !checkChoice(appSort, client.ApplicationSorts) {
		return rt.usage("Invalid sort: "+appSort, "Use one of: "+strings.Join(client.ApplicationSorts, ", "))
	}
	if code, ok := rt.requireRole(ctx, client.RoleApplicant, "view your applications"); !ok {
		return code
	}

	apps, err := rt.client.MyApplications(ctx, client.ApplicationFilter{Status: status, Sort: appSort})
	if err != nil {
		return rt.fail("Failed to fetch your applications", err)
	}

	rt.status.Flush(rt.notes)
	if IsJSONOutput() {
		return jsonResult(rt, apps)
	}
	if len(apps) == 0 {
		rt.out.Info("You haven't applied to any jobs yet.")
		return output.ExitSuccess
	}

	table := output.NewTable(rt.out.Out(), []string{"ID", "Job", "Company", "Status", "Applied"})
	for i := range apps {
		a := &apps[i]
		table.AddRow(a.ID, dash(a.JobTitle()), dash(a.CompanyName()), rt.out.StatusBadge(a.Status), formatAgo(a.AppliedDate))
	}
	if err := table.Render(); err != nil {
		return rt.fail("Failed to print applications", err)
	}
	return output.ExitSuccess
}

// runApplicationsShow prints one application
func runApplicationsShow(ctx context.Context, w io.Writer, id string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.requireLogin(ctx, "view applications"); !ok {
		return code
	}

	app, err := rt.client.GetApplication(ctx, id)
	if err != nil {
		return rt.fail("Failed to load application details", err)
	}

	rt.status.Flush(rt.notes)
	if IsJSONOutput() {
		return jsonResult(rt, app)
	}

	rt.out.Header("Application " + app.ID)
	rt.out.Field("Job", dash(app.JobTitle()))
	rt.out.Field("Company", dash(app.CompanyName()))
	rt.out.Field("Applicant", dash(app.ApplicantEmail()))
	rt.out.Field("Status", rt.out.StatusBadge(app.Status))
	rt.out.Field("Applied", formatAgo(app.AppliedDate))
	rt.out.Field("Resume", dash(app.ResumeURL))
	if app.Notes != "" {
		rt.out.Field("Notes", app.Notes)
	}
	return output.ExitSuccess
}

// runApplicationsStatus moves an application to a new status
func runApplicationsStatus(ctx context.Context, w io.Writer, id, value string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	status, ok := parseStatus(value)
	if !ok {
		if strings.TrimSpace(value) == "" {
			rt.notes.Error("Please select a status.")
		} else {
			rt.notes.Error("Invalid status selected.")
		}
		return rt.usage("Invalid status: "+value, "Use one of: "+strings.Join(statusChoices(), ", "))
	}
	if code, ok := rt.requireRole(ctx, client.RolePoster, "update application status"); !ok {
		return code
	}

	app, err := rt.client.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		return rt.fail("Failed to update status", err)
	}
	rt.notes.Success("Application status updated successfully!")
	rt.status.Flush(rt.notes)

	if IsJSONOutput() {
		return jsonResult(rt, app)
	}
	rt.out.Field("Application", app.ID)
	rt.out.Field("Status", rt.out.StatusBadge(app.Status))
	return output.ExitSuccess
}

// runApplicationsWithdraw deletes one of the applicant's applications
func runApplicationsWithdraw(ctx context.Context, w io.Writer, id string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.requireRole(ctx, client.RoleApplicant, "withdraw applications"); !ok {
		return code
	}

	app, err := rt.client.GetApplication(ctx, id)
	if err != nil {
		return rt.fail("Failed to load application details", err)
	}

	title := app.JobTitle()
	if title == "" {
		title = "this job"
	}
	ok, err := newConfirmer(appYes).Confirm(
		"Withdraw application?",
		fmt.Sprintf("Are you sure you want to withdraw your application for %q?", title),
	)
	if err != nil {
		return rt.usage("Confirmation required", "Pass --yes to withdraw without prompting")
	}
	if !ok {
		rt.notes.Info("Cancelled.")
		return rt.done(output.ExitSuccess)
	}

	if _, err := rt.client.DeleteApplication(ctx, id); err != nil {
		return rt.fail("Failed to withdraw application", err)
	}
	rt.notes.Success("Application withdrawn successfully!")
	return rt.done(output.ExitSuccess)
}

// parseStatus matches a status case-insensitively
func parseStatus(s string) (client.ApplicationStatus, bool) {
	s = strings.TrimSpace(s)
	if validate.Status(s) == nil {
		return client.ApplicationStatus(s), true
	}
	for _, st := range client.ApplicationStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}
