package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/suparena/dailynote"
	"github.com/suparena/dailynote/config"
	"github.com/suparena/dailynote/logging"
)

var (
	envFiles    []string
	versionFlag bool
)

// rootCmd ensures today's daily note exists and exits non-zero on any failure
var rootCmd = &cobra.Command{
	Use:           "dailynote",
	Short:         "Ensure today's daily note exists in Notion",
	Long:          `Creates the daily note page for the current day (UTC+9) in the configured Notion database unless it already exists.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			info := dailynote.GetVersionInfo()
			fmt.Printf("dailynote version %s\n", info.Version)
			fmt.Printf("Git commit: %s\n", info.GitCommit)
			fmt.Printf("Build date: %s\n", info.BuildDate)
			fmt.Printf("Go version: %s\n", info.GoVersion)
			return nil
		}

		// Execute logs its own failures; only the exit status is left to report
		if err := dailynote.Execute(context.Background(), dailynote.WithDotenv(envFiles...)); err != nil {
			os.Exit(dailynote.ExitCode(err))
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Development env file to load (repeatable, default .env; ignored when APP_ENV=production)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		level := logging.ParseLevel(os.Getenv(config.EnvLogLevel))
		logging.New(os.Stdout, level, uuid.NewString()).WithError(err).Error("invalid command line")
		os.Exit(1)
	}
}
