package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dkrish/quizforge/internal/selfupdate"
)

var (
	updateCheckOnly bool
	updateTag       string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update quizforge to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		if updateCheckOnly {
			return runUpdateCheck(ctx, checker)
		}

		input := &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  updateTag,
		}
		err := checker.Update(ctx, input, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})
		return explainUpdateError(err)
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "check for a newer release without installing it")
	updateCmd.Flags().StringVar(&updateTag, "tag", "", "install a specific release tag instead of the latest")
}

func runUpdateCheck(ctx context.Context, checker *selfupdate.Checker) error {
	result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		fmt.Println("Already running the latest version.")
		return nil
	}
	fmt.Printf("Update available: %s -> %s\nRun \"quizforge update\" to install it.\n",
		result.CurrentVersion, result.LatestVersion)
	return nil
}

// explainUpdateError turns the expected refusals into friendly output
// instead of a command failure.
func explainUpdateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Println("Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Println("Already running the latest version.")
		return nil
	case os.IsPermission(err):
		return fmt.Errorf("%w\n\nTry running: sudo quizforge update", err)
	default:
		return err
	}
}
