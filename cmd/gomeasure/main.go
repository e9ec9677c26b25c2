package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/philipparndt/gomeasure/internal/logging"
	"github.com/philipparndt/gomeasure/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configDir string
	logLevel  string

	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "gomeasure",
	Short: "Measure distances on STL models",
	Long: `gomeasure takes point-to-point measurements on STL models.
Measurements can be anchored to a model so they follow it when it moves,
and are stored next to the model in a <model>.gomeasure.json file.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(configDir); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
			return err
		}
		level := config.GetString("logLevel")
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		log = logging.Setup(level, os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
