package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// annotationNotifies marks commands that dispatch notifications. Other
// commands run with notifications disabled so missing credentials do not
// block them.
const annotationNotifies = "notifies"

// app holds the state shared by all subcommands once configuration is loaded.
type app struct {
	configPath string
	envFile    string
	noNotify   bool

	cfg    *config.GlobalConfig
	logger zerolog.Logger
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand(&app{}).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCodeFor(err)
}

func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "urlchecker",
		Short: "Detect and report changes to a remote resource",
		Long: `urlchecker fetches a URL, compares it with the last content it saw and,
when the content changed, renders an HTML diff and sends a notification.

Each invocation checks a single URL. Run it from cron or a timer to
monitor a resource over time.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.load(cmd.Annotations[annotationNotifies] == "true")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the YAML/JSON configuration file (default: $"+config.EnvConfigPath+" or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "path to a .env file with secrets")

	rootCmd.AddCommand(
		newCheckCommand(a),
		newDiffCommand(a),
		newHistoryCommand(a),
		newReportsCommand(a),
	)
	return rootCmd
}

// load reads and validates the configuration and builds the logger.
func (a *app) load(notifies bool) error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	cfg, err := config.LoadGlobalConfig(a.configPath, bootstrap)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if !notifies || a.noNotify {
		cfg.NotificationConfig.Provider = config.ProviderNone
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.LogConfig)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	return nil
}
