// ABOUTME: Job posting commands: list, show, create, update, delete, applicants
// ABOUTME: Posting changes are gated to job posters before any request is sent

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/markalston/jobboard/internal/client"
	"github.com/markalston/jobboard/internal/output"
	"github.com/markalston/jobboard/internal/validate"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	jobSearch         string
	jobFilterLocation string
	jobSort           string
	jobShowApplicants bool
	jobYes            bool

	jobCompany          string
	jobTitle            string
	jobDescription      string
	jobLocation         string
	jobSalary           string
	jobRequirements     []string
	jobResponsibilities []string
	jobDeadline         string

	applicantStatus string
	applicantSort   string
)

// fieldChanged reports whether a job field flag was set explicitly
type fieldChanged func(name string) bool

var jobsCmd = &cobra.Command{
	Use:     "jobs",
	Aliases: []string{"job"},
	Short:   "Browse and manage job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings",
	Long: `List job postings. Job posters see their own postings; everyone else sees
all open postings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runJobsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a job posting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runJobsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new job",
	Long: `Post a new job. --requirement and --responsibility may be repeated.
Location defaults to "Remote" and salary to "Competitive".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runJobsCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a job posting",
	Long:  `Edit a job posting. Only the flags given are changed; list flags replace the whole list.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runJobsUpdate(ctx, os.Stdout, args[0], cmd.Flags().Changed)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a job posting and its applications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runJobsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var jobsApplicantsCmd = &cobra.Command{
	Use:   "applicants <id>",
	Short: "List applications for one of your postings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runJobsApplicants(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	jobsListCmd.Flags().StringVar(&jobSearch, "search", "", "Match title, company or description")
	jobsListCmd.Flags().StringVar(&jobFilterLocation, "location", "", "Filter by location")
	jobsListCmd.Flags().StringVar(&jobSort, "sort", "", "Sort order: "+strings.Join(client.JobSorts, ", "))

	jobsShowCmd.Flags().BoolVar(&jobShowApplicants, "applicants", false, "Also list applicants (job posters only)")

	for _, c := range []*cobra.Command{jobsCreateCmd, jobsUpdateCmd} {
		c.Flags().StringVar(&jobCompany, "company", "", "Company name")
		c.Flags().StringVar(&jobTitle, "title", "", "Job title")
		c.Flags().StringVar(&jobDescription, "description", "", "Job description")
		c.Flags().StringVar(&jobLocation, "location", "", "Job location")
		c.Flags().StringVar(&jobSalary, "salary", "", "Salary range")
		c.Flags().StringArrayVar(&jobRequirements, "requirement", nil, "Requirement (repeatable)")
		c.Flags().StringArrayVar(&jobResponsibilities, "responsibility", nil, "Responsibility (repeatable)")
		c.Flags().StringVar(&jobDeadline, "deadline", "", "Application deadline (YYYY-MM-DD)")
	}

	jobsDeleteCmd.Flags().BoolVarP(&jobYes, "yes", "y", false, "Skip the confirmation prompt")

	jobsApplicantsCmd.Flags().StringVar(&applicantStatus, "status", "", "Filter by status: "+strings.Join(statusChoices(), ", "))
	jobsApplicantsCmd.Flags().StringVar(&applicantSort, "sort", "", "Sort order: "+strings.Join(client.ApplicationSorts, ", "))

	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsCreateCmd, jobsUpdateCmd, jobsDeleteCmd, jobsApplicantsCmd)
	rootCmd.AddCommand(jobsCmd)
}

// runJobsList lists postings and returns exit code
func runJobsList(ctx context.Context, w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if !checkChoice(jobSort, client.JobSorts) {
		return rt.usage("Invalid sort: "+jobSort, "Use one of: "+strings.Join(client.JobSorts, ", "))
	}
	if code, ok := rt.restore(ctx); !ok {
		return code
	}

	jobs, err := rt.client.ListJobs(ctx, client.JobFilter{
		Search:   jobSearch,
		Location: jobFilterLocation,
		Sort:     jobSort,
	})
	if err != nil {
		return rt.fail("Failed to fetch jobs", err)
	}

	rt.status.Flush(rt.notes)
	if IsJSONOutput() {
		return jsonResult(rt, jobs)
	}

	if len(jobs) == 0 {
		if rt.session.Snapshot().Role() == client.RolePoster {
			rt.out.Info("No job postings found. Create one to get started!")
		} else {
			rt.out.Info("No job postings available at the moment.")
		}
		return output.ExitSuccess
	}

	table := output.NewTable(rt.out.Out(), []string{"ID", "Title", "Company", "Location", "Salary", "Deadline", "Posted"})
	for _, j := range jobs {
		table.AddRow(j.ID, j.JobTitle, j.CompanyName, j.Location, j.SalaryRange, formatDate(j.ApplicationDeadline), formatAgo(j.CreatedAt))
	}
	if err := table.Render(); err != nil {
		return rt.fail("Failed to print jobs", err)
	}
	return output.ExitSuccess
}

// jobDetail is the JSON shape of jobs show
type jobDetail struct {
	*client.Job
	Applicants []client.Application `json:"applicants,omitempty"`
}

// runJobsShow prints one posting, optionally with its applicants fetched in
// parallel
func runJobsShow(ctx context.Context, w io.Writer, id string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if jobShowApplicants {
		if code, ok := rt.requireRole(ctx, client.RolePoster, "view applicants"); !ok {
			return code
		}
	}

	var (
		job        *client.Job
		applicants []client.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		j, err := rt.client.GetJob(gctx, id)
		if err != nil {
			return fmt.Errorf("loading job: %w", err)
		}
		job = j
		return nil
	})
	if jobShowApplicants {
		g.Go(func() error {
			apps, err := rt.client.ListApplicants(gctx, id, client.ApplicationFilter{})
			if err != nil {
				return fmt.Errorf("loading applicants: %w", err)
			}
			applicants = apps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rt.fail("Failed to load job", err)
	}

	rt.status.Flush(rt.notes)
	if IsJSONOutput() {
		return jsonResult(rt, jobDetail{Job: job, Applicants: applicants})
	}

	printJob(rt.out, job)
	if jobShowApplicants {
		rt.out.Header(fmt.Sprintf("Applicants (%d)", len(applicants)))
		return printApplicants(rt, applicants)
	}
	return output.ExitSuccess
}

// runJobsCreate posts a job and returns exit code
func runJobsCreate(ctx context.Context, w io.Writer) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.requireRole(ctx, client.RolePoster, "post jobs"); !ok {
		return code
	}

	form := validate.JobInput{
		CompanyName:         jobCompany,
		JobTitle:            jobTitle,
		Description:         jobDescription,
		Location:            jobLocation,
		SalaryRange:         jobSalary,
		Requirements:        strings.Join(jobRequirements, "\n"),
		Responsibilities:    strings.Join(jobResponsibilities, "\n"),
		ApplicationDeadline: jobDeadline,
	}
	if err := form.Validate(time.Now()); err != nil {
		return rt.invalid(err)
	}

	job, err := rt.client.CreateJob(ctx, form.Payload())
	if err != nil {
		return rt.fail("Failed to create job", err)
	}
	rt.notes.Success("Job created successfully!")
	return printSavedJob(rt, job)
}

// runJobsUpdate edits the flags that were given on top of the stored posting
func runJobsUpdate(ctx context.Context, w io.Writer, id string, changed fieldChanged) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.requireRole(ctx, client.RolePoster, "edit jobs"); !ok {
		return code
	}

	current, err := rt.client.GetJob(ctx, id)
	if err != nil {
		return rt.fail("Failed to load job", err)
	}

	form := validate.JobForm(current.Input())
	overlay := []struct {
		flag  string
		dst   *string
		value string
	}{
		{"company", &form.CompanyName, jobCompany},
		{"title", &form.JobTitle, jobTitle},
		{"description", &form.Description, jobDescription},
		{"location", &form.Location, jobLocation},
		{"salary", &form.SalaryRange, jobSalary},
		{"requirement", &form.Requirements, strings.Join(jobRequirements, "\n")},
		{"responsibility", &form.Responsibilities, strings.Join(jobResponsibilities, "\n")},
		{"deadline", &form.ApplicationDeadline, jobDeadline},
	}
	for _, o := range overlay {
		if changed(o.flag) {
			*o.dst = o.value
		}
	}

	if err := form.Validate(time.Now()); err != nil {
		return rt.invalid(err)
	}

	job, err := rt.client.UpdateJob(ctx, id, form.Payload())
	if err != nil {
		return rt.fail("Failed to update job", err)
	}
	rt.notes.Success("Job updated successfully!")
	return printSavedJob(rt, job)
}

// runJobsDelete removes a posting after confirmation
func runJobsDelete(ctx context.Context, w io.Writer, id string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if code, ok := rt.requireRole(ctx, client.RolePoster, "delete jobs"); !ok {
		return code
	}

	ok, err := newConfirmer(jobYes).Confirm(
		"Delete job posting?",
		"Are you sure you want to delete this job posting? All associated applications will also be deleted.",
	)
	if err != nil {
		return rt.usage("Confirmation required", "Pass --yes to delete without prompting")
	}
	if !ok {
		rt.notes.Info("Cancelled.")
		return rt.done(output.ExitSuccess)
	}

	if _, err := rt.client.DeleteJob(ctx, id); err != nil {
		return rt.fail("Failed to delete job", err)
	}
	rt.notes.Success("Job deleted successfully!")
	return rt.done(output.ExitSuccess)
}

// runJobsApplicants lists applications for a posting
func runJobsApplicants(ctx context.Context, w io.Writer, id string) int {
	rt, code := startRuntime(w)
	if rt == nil {
		return code
	}
	defer rt.close()

	if !checkChoice(applicantStatus, statusChoices()) {
		return rt.usage("Invalid status: "+applicantStatus, "Use one of: "+strings.Join(statusChoices(), ", "))
	}
	if !checkChoice(applicantSort, client.ApplicationSorts) {
		return rt.usage("Invalid sort: "+applicantSort, "Use one of: "+strings.Join(client.ApplicationSorts, ", "))
	}
	if code, ok := rt.requireRole(ctx, client.RolePoster, "view applicants"); !ok {
		return code
	}

	apps, err := rt.client.ListApplicants(ctx, id, client.ApplicationFilter{
		Status: client.ApplicationStatus(applicantStatus),
		Sort:   applicantSort,
	})
	if err != nil {
		return rt.fail("Failed to fetch applicants", err)
	}

	rt.status.Flush(rt.notes)
	if IsJSONOutput() {
		return jsonResult(rt, apps)
	}
	return printApplicants(rt, apps)
}

func printApplicants(rt *runtime, apps []client.Application) int {
	if len(apps) == 0 {
		rt.out.Info("No applicants for this job yet.")
		return output.ExitSuccess
	}
	table := output.NewTable(rt.out.Out(), []string{"ID", "Applicant", "Status", "Applied", "Resume"})
	for i := range apps {
		a := &apps[i]
		table.AddRow(a.ID, a.ApplicantEmail(), rt.out.StatusBadge(a.Status), formatAgo(a.AppliedDate), dash(a.ResumeURL))
	}
	if err := table.Render(); err != nil {
		return rt.fail("Failed to print applicants", err)
	}
	return output.ExitSuccess
}

func printSavedJob(rt *runtime, job *client.Job) int {
	rt.status.Flush(rt.notes)
	if IsJSONOutput() {
		return jsonResult(rt, job)
	}
	printJob(rt.out, job)
	return output.ExitSuccess
}

func printJob(p *output.Printer, job *client.Job) {
	p.Header(job.JobTitle)
	p.Field("ID", job.ID)
	p.Field("Company", job.CompanyName)
	p.Field("Location", job.Location)
	p.Field("Salary", job.SalaryRange)
	p.Field("Deadline", formatDate(job.ApplicationDeadline))
	if !job.CreatedAt.IsZero() {
		p.Field("Posted", formatAgo(job.CreatedAt))
	}
	if job.Description != "" {
		p.Print("")
		p.Print("%s", job.Description)
	}
	printList(p, "Requirements", job.Requirements)
	printList(p, "Responsibilities", job.Responsibilities)
}

func printList(p *output.Printer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.Print("")
	p.Print("%s", p.Bold(title+":"))
	for _, item := range items {
		p.Print("  - %s", item)
	}
}

func jsonResult(rt *runtime, v interface{}) int {
	if err := rt.out.JSON(v); err != nil {
		return rt.fail("Failed to print result", err)
	}
	return output.ExitSuccess
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(validate.DateLayout)
}

func formatAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
