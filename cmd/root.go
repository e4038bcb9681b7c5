package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/desktop-dnd/internal/config"
	"github.com/mj1618/desktop-dnd/internal/output"
	"github.com/mj1618/desktop-dnd/internal/version"
	"github.com/spf13/cobra"
)

// cfg is loaded by the root command before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "desktop-dnd",
	Short: "Route drag-and-drop gestures through nested screen regions",
	Long: `A CLI that hosts a hierarchical drag-and-drop dispatch tree. Region layouts
are described in YAML; native drag and drop callbacks are replayed from
recorded sessions or carried over the system clipboard.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (YAML); environment only when empty")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
			if _, err := config.ParseLevel(level); err != nil {
				return err
			}
			cfg.LogLevel = level
		}
		slog.SetDefault(cfg.Logger())
		return nil
	}
}
