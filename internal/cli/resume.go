// resume.go implements the "mockround resume" commands for managing the
// resume HR interviews are based on.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mockround/mockround/internal/exchange"
	"github.com/mockround/mockround/internal/tui/commands"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage your resume",
}

var resumeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Upload a plain-text resume",
	RunE:  runResumeAdd,
}

var resumeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resume on file",
	RunE:  runResumeShow,
}

var resumeATSCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score the resume on file against a job description",
	Long: `Ask the service for an ATS-style match of your latest resume: a 0-100 score,
the job's keywords the resume is missing, and suggestions. Without --jd the job
description stored with the resume is used.`,
	RunE: runResumeATS,
}

var (
	resumeFile string
	resumeRole string
	resumeJD   string
	atsJD      string
)

func init() {
	resumeAddCmd.Flags().StringVar(&resumeFile, "file", "", "Path to a plain-text resume")
	resumeAddCmd.Flags().StringVar(&resumeRole, "role", "", "Job role you are preparing for")
	resumeAddCmd.Flags().StringVar(&resumeJD, "jd", "", "Job description")
	_ = resumeAddCmd.MarkFlagRequired("file")

	resumeATSCmd.Flags().StringVar(&atsJD, "jd", "", "Job description to score against")

	resumeCmd.AddCommand(resumeAddCmd)
	resumeCmd.AddCommand(resumeShowCmd)
	resumeCmd.AddCommand(resumeATSCmd)
}

func runResumeAdd(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.UserID == "" {
		return fmt.Errorf("no user configured; run: mockround init")
	}
	text, err := commands.ReadResumeFile(resumeFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout())
	defer cancel()
	res, err := exchange.NewClient(cfg.API.BaseURL, nil, nil).UploadResume(ctx, exchange.UploadResumeRequest{
		UserID:         cfg.UserID,
		JobRole:        resumeRole,
		JobDescription: resumeJD,
		RawText:        text,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded resume %s for %s\n", res.ResumeID, cfg.UserID)
	return nil
}

func runResumeShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout())
	defer cancel()
	res, err := exchange.NewClient(cfg.API.BaseURL, nil, nil).LatestResume(ctx, cfg.UserID)
	if errors.Is(err, exchange.ErrNoResume) {
		fmt.Fprintln(cmd.OutOrStdout(), "No resume on file. Upload one with: mockround resume add --file <path>")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Resume:          %s\n", res.ResumeID)
	fmt.Fprintf(out, "Job role:        %s\n", orDash(res.JobRole))
	fmt.Fprintf(out, "Job description: %s\n", orDash(res.JobDescription))
	return nil
}

func runResumeATS(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout())
	defer cancel()
	client := exchange.NewClient(cfg.API.BaseURL, nil, nil)
	res, err := client.LatestResume(ctx, cfg.UserID)
	if errors.Is(err, exchange.ErrNoResume) {
		return fmt.Errorf("no resume on file; upload one with: mockround resume add --file <path>")
	}
	if err != nil {
		return err
	}
	rep, err := client.ATSReport(ctx, exchange.ATSRequest{ResumeID: res.ResumeID, JobDescription: atsJD})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Match score: %d/100\n", rep.MatchScore)
	printList(out, "Missing keywords", rep.MissingKeywords)
	printList(out, "Suggestions", rep.Suggestions)
	return nil
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
