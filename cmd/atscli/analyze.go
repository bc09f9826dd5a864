package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/extract"
)

type analyzeOptions struct {
	resume   string
	job      string
	jobFile  string
	profile  string
	minScore float64
	compact  bool
	tax      taxonomyFlags
}

// errBelowThreshold makes the process exit non-zero when --min-score is not met.
var errBelowThreshold = errors.New("score below threshold")

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a resume against a job description",
		Long: "Score a resume given as a .pdf/.docx/.doc path, as inline text, or as '-' for stdin.\n" +
			"Prints the full report as JSON.",
		Example: "  atscli analyze --resume cv.pdf --job-file posting.txt\n" +
			"  cat cv.txt | atscli analyze --resume - --job \"Required: Go, Kubernetes\"",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Resume file path, inline text, or '-' for stdin")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Job description text")
	cmd.Flags().StringVar(&opts.jobFile, "job-file", "", "Path to a job description text file")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Path to a user profile JSON object")
	cmd.Flags().Float64Var(&opts.minScore, "min-score", 0, "Exit non-zero when the total score is below this value")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print compact JSON")
	cmd.MarkFlagsMutuallyExclusive("job", "job-file")
	_ = cmd.MarkFlagRequired("resume")
	opts.tax.register(cmd)
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	resume := opts.resume
	if resume == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read resume from stdin: %w", err)
		}
		resume = string(data)
	} else if namesDocument(resume) {
		info, err := os.Stat(resume)
		if err != nil {
			return fmt.Errorf("resume file: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("resume file %s is not a regular file", resume)
		}
	}
	if strings.TrimSpace(resume) == "" {
		return fmt.Errorf("resume is empty")
	}

	job := opts.job
	if opts.jobFile != "" {
		data, err := os.ReadFile(opts.jobFile)
		if err != nil {
			return fmt.Errorf("read job file: %w", err)
		}
		job = string(data)
	}

	var profile map[string]any
	if opts.profile != "" {
		data, err := os.ReadFile(opts.profile)
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		if err := json.Unmarshal(data, &profile); err != nil {
			return fmt.Errorf("profile must be a JSON object: %w", err)
		}
	}

	tax, _, err := opts.tax.resolve(cmd.Context())
	if err != nil {
		return err
	}

	report := ats.NewAnalyzer(tax).Analyze(resume, job, profile)
	if err := writeJSON(cmd.OutOrStdout(), report, opts.compact); err != nil {
		return err
	}
	if opts.minScore > 0 && report.TotalScore < opts.minScore {
		return fmt.Errorf("%w: %.1f < %.1f", errBelowThreshold, report.TotalScore, opts.minScore)
	}
	return nil
}

// namesDocument reports whether a --resume value reads as a document path rather than inline text.
func namesDocument(s string) bool {
	return !strings.ContainsAny(s, "\r\n") && extract.Supported(s)
}
