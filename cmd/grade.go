package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkrish/quizforge/internal/grading"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <submission.json>",
	Short: "Grade a student submission with LLM-scored feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read submission file: %w", err)
		}

		var sub grading.Submission
		if err := json.Unmarshal(data, &sub); err != nil {
			return fmt.Errorf("parse submission file: %w", err)
		}

		ctx := context.Background()

		provider, err := newProvider(ctx, logger)
		if err != nil {
			return err
		}

		grader := grading.New(provider, grading.DefaultConfig())
		result, err := grader.ValidateAnswers(ctx, &sub)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
