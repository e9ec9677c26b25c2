package main

import (
	"github.com/philipparndt/gomeasure/internal/app"
	"github.com/philipparndt/gomeasure/internal/config"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <file.stl> [more.stl...]",
	Short: "Open models in the interactive measurement viewer",
	Long: `Open one or more STL models in a window and measure them with the mouse.
Measurements are loaded from and saved to the first model's sidecar file,
which is reloaded when it changes on disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		options, err := config.DefaultOptions()
		if err != nil {
			return err
		}
		return app.Run(app.Config{
			Files:   args,
			Width:   config.GetInt("viewer.width"),
			Height:  config.GetInt("viewer.height"),
			Options: options,
			Log:     log,
		})
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
