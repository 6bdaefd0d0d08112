package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"partyplanner/internal/config"
	appLog "partyplanner/internal/log"
	"partyplanner/internal/partyapi"
	"partyplanner/internal/planner"
)

const version = "0.1.0"

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		appLog.Error("command failed", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "partyplanner",
		Short:         "Browse, create and delete parties on a remote events API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "./partyplanner.yaml", "Path to config file (created with defaults if missing)")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Optional .env file with PARTYPLANNER_* overrides")

	root.AddCommand(
		newServeCmd(flags),
		newListCmd(flags),
		newSnapshotCmd(flags),
	)
	return root
}

// loadConfig reads .env, the YAML config and applies the log level.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	if err := config.LoadEnvFile(flags.envFile); err != nil {
		return nil, err
	}
	conf, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	return conf, nil
}

func newPlanner(conf *config.Config) *planner.Planner {
	return planner.New(partyapi.NewClient(conf.EventsURL(), conf.API.RequestTimeout))
}
