package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <candidate-id>",
	Short: "Suggest skills for a stored candidate",
	Long:  `Print skill recommendations for a candidate based on the skills they already hold.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
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

	candidate, err := st.GetCandidate(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load candidate %s: %w", args[0], err)
	}

	engine, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	recommendations := engine.Recommend(ctx, candidate)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]any{
		"candidate_id":    candidate.CandidateID,
		"recommendations": recommendations,
	})
}
