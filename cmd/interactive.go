package cmd

import (
	"vplanctl/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to view your class's plan, export it, and manage settings interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunTUI(logger)
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
