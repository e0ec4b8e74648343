package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/pulse/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "pulse",
		Short:   "Live heart rate and HRV training in your terminal",
		Version: version.Get(),
		RunE:    func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}

	rootCmd.AddCommand(liveCmd())
	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(sessionsCmd())
	rootCmd.AddCommand(athletesCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(upgradeCmd())
	addDevCommands(rootCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
