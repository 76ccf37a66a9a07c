package cmd

import (
	"github.com/cottand/dnf/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"log/slog"
)

// NewRootCmd returns the dnf command with every subcommand registered
func NewRootCmd() *cobra.Command {
	var (
		envFile  string
		logLevel string
	)
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:          "dnf [subcommand]",
		Short:        "dnf normalizes set-theoretic types into disjunctive normal form",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(envFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				if err := loaded.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
					return errors.Wrap(err, "invalid --log-level")
				}
			}
			cfg = loaded
			log.SetLevel(cfg.LogLevel)
			log.DefaultLogger.Debug("configured", "section", "cli", "level", cfg.LogLevel, "history", cfg.HistoryFile)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file to load environment defaults from, if it exists")
	root.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error (default from $"+envLogLevel+", else warn)")

	_ = root.RegisterFlagCompletionFunc("log-level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		levels := []string{slog.LevelDebug.String(), slog.LevelInfo.String(), slog.LevelWarn.String(), slog.LevelError.String()}
		return levels, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newReplCmd(&cfg))
	return root
}
