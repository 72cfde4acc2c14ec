package cmd

import (
	"fmt"
	"os"

	"vplanctl/pkg/exporter"
	"vplanctl/pkg/vplan"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your class's lessons to an ICS file",
	Long:  `Export the lessons of a plan that carry start and end times to an ICS file without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		plan, err := runPlan(cmd, cfg)
		if err != nil {
			return err
		}

		if plan.Status == vplan.StatusNotFound {
			return fmt.Errorf("no substitution for class %s found", plan.Class)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		count, err := exporter.GenerateICS(plan, file)
		if err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d lessons to %s\n", count, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSourceFlags(exportCmd)
	addClassFlags(exportCmd)
	exportCmd.Flags().StringP("output", "o", "vplan.ics", "Output file path")
}
