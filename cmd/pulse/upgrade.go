package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/client/github"
	"github.com/garrettladley/pulse/internal/version"
)

const (
	repoOwner   = "garrettladley"
	repoName    = "pulse"
	installPath = "github.com/garrettladley/pulse/cmd/pulse@latest"
)

func upgradeCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Check for updates and install if available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			current := version.Get()

			latest, err := github.NewClient().GetLatestRelease(ctx, repoOwner, repoName)
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}

			if !version.IsNewer(current, latest.TagName) {
				fmt.Fprintf(out, "pulse is up to date (%s)\n", current)
				return nil
			}

			if check {
				fmt.Fprintf(out, "pulse %s is available (running %s): %s\n", latest.TagName, current, latest.HTMLURL)
				return nil
			}

			fmt.Fprintf(out, "Updating pulse %s → %s\n", current, latest.TagName)
			if version.IsHomebrew() {
				return run(ctx, "brew", "upgrade", repoName)
			}
			if err := run(ctx, "go", "install", installPath); err != nil {
				return err
			}
			fmt.Fprintln(out, "Successfully updated!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only report whether an update is available")
	return cmd
}

func run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
