package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/gomeasure/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file.stl|measurements.json>",
	Short: "Print a measurement summary whenever the file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sidecarFor(args[0])

		fw, err := watcher.NewFileWatcher(watchDebounce, log)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer fw.Close()

		report := func(string) {
			records, err := readRecords(path)
			if err != nil {
				log.Error().Err(err).Str("file", path).Msg("failed to read measurements")
				return
			}
			printSummary(path, records)
			fmt.Println()
		}

		if err := fw.Watch([]string{path}, report); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		report(path)
		fw.Start()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		log.Info().Str("file", path).Msg("watching for changes, press Ctrl+C to stop")
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "delay before reacting to a change")
}
