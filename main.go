package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spencer-p/tidenotify/pkg/config"
	"github.com/spencer-p/tidenotify/pkg/job"
	"github.com/spencer-p/tidenotify/pkg/logging"
)

var (
	envFile string
	dryRun  bool
)

var rootCmd = &cobra.Command{
	Use:   "tidenotify",
	Short: "Push today's tide times for one station",
	Long: `Fetches the tide prediction table, finds the row pair for STATION_NAME and
sends it as a Pushbullet note. Settings come from the environment and an
optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := setup()
		if err != nil {
			return err
		}
		j.DryRun = dryRun
		_, err = j.Run(cmd.Context())
		return err
	},
}

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print every row of the tide table",
	Long:  `Fetches and parses the tide table and prints one row per line, to help pick a STATION_NAME.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := setup()
		if err != nil {
			return err
		}
		rows, err := j.Rows(cmd.Context())
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, " | "))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file of KEY=value pairs to load before reading the environment")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the notification instead of sending it")
	rootCmd.AddCommand(rowsCmd)
}

// setup loads configuration before anything touches the network.
func setup() (*job.Job, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.LogLevel, nil)
	return job.New(cfg, logging.Get()), nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logging.Get().Errorw("Run failed", "error", err)
	}
	logging.Sync()
	cancel()

	os.Exit(job.ExitCode(err))
}
