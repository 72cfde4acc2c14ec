package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Dump the feed as a JSON tree",
	Long: `Convert the feed XML into the generic tree and print it as JSON, with
"@attributes" and "#text" keys and repeated elements promoted to arrays.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tree, err := loadTree(cmd, cfg)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addSourceFlags(treeCmd)
}
