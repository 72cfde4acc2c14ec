package cmd

import (
	"fmt"

	"vplanctl/pkg/vplan"

	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List the classes in the feed",
	Long:  `Print every class short name the feed contains, in feed order. Useful when the configured class is not found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tree, err := loadTree(cmd, cfg)
		if err != nil {
			return err
		}

		classes, err := vplan.Classes(tree)
		if err != nil {
			return err
		}

		for _, c := range classes {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
	addSourceFlags(classesCmd)
}
