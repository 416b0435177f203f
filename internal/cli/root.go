// Package cli defines the command-line interface for meadbot.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meadtools/meadbot/internal/config"
	"github.com/meadtools/meadbot/internal/env"
	"github.com/meadtools/meadbot/internal/logging"
)

const (
	// defaultEnvFile is the default path to the dotenv file.
	defaultEnvFile = ".env"
)

// Options stores global CLI options shared between commands.
type Options struct {
	EnvFile  string
	LogLevel logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		EnvFile:  defaultEnvFile,
		LogLevel: logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "meadbot",
		Short:         "meadbot is the MeadTools chat bot",
		Long:          "meadbot answers brewing calculator commands, links MeadTools pages, looks up yeasts and turns chat messages into tracker issues.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyRootEnvDefaults(cmd, opts); err != nil {
				return err
			}

			vars, err := env.Load(opts.EnvFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load(vars)
			if err != nil {
				return err
			}

			levelValue := cfg.LogLevel
			if f := cmd.Flag("log-level"); f != nil && f.Changed {
				levelValue = f.Value.String()
			}
			level := logging.ParseLevel(levelValue)
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)

			ctx := context.WithValue(cmd.Context(), loggerKey{}, logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)
			logger.Debug("logger initialized", "level", level, "env_file", opts.EnvFile)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", defaultEnvFile, "Path to a .env file loaded before the process environment")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCommand(),
		newRegisterCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// configKey is a private context key used to store the loaded configuration.
type configKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}

// ConfigFromContext returns the configuration loaded by the root command.
func ConfigFromContext(ctx context.Context) (*config.Config, bool) {
	if ctx == nil {
		return nil, false
	}
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	return cfg, ok && cfg != nil
}
