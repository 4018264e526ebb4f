package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/talent-match/internal/types"
)

var (
	matchJobID   string
	matchJobFile string
	matchTopN    int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank stored candidates against a job posting",
	Long: `Rank every stored candidate against a job posting and print the top
matches as JSON. The job comes either from the store (--job-id) or from
a JSON file (--job-file).`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchJobID, "job-id", "", "ID of a stored job posting")
	matchCmd.Flags().StringVar(&matchJobFile, "job-file", "", "Path to a job posting JSON file")
	matchCmd.Flags().IntVar(&matchTopN, "top-n", 0, "Number of matches to print (default from config)")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if (matchJobID == "") == (matchJobFile == "") {
		return fmt.Errorf("exactly one of --job-id or --job-file is required")
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	st, err := buildStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect store: %w", err)
	}
	defer st.Close()

	var job *types.JobPosting
	if matchJobID != "" {
		job, err = st.GetJob(ctx, matchJobID)
		if err != nil {
			return fmt.Errorf("failed to load job %s: %w", matchJobID, err)
		}
	} else {
		job, err = readJobFile(matchJobFile)
		if err != nil {
			return err
		}
	}

	candidates, err := st.ListCandidates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	engine, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	topN := matchTopN
	if topN <= 0 {
		topN = cfg.MatchTopN
	}
	report, err := engine.Rank(ctx, job, candidates, topN)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func readJobFile(path string) (*types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	var job types.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	return &job, nil
}
