package cmd

import (
	"errors"
	"os"
	"strings"

	"vplanctl/pkg/config"
	"vplanctl/pkg/render"
	"vplanctl/pkg/tui"
	"vplanctl/pkg/vplan"

	"github.com/spf13/cobra"
)

var errNoClass = errors.New("no class configured (use --class or vplanctl config)")

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the substitution plan for your class",
	Long: `Fetch the VpMobil feed, extract the plan for one class and render it
as a terminal table, as the dashboard card HTML, or as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		registry := render.NewRegistry()
		if err := render.Standard(registry, tui.AccentColor(cfg)); err != nil {
			return err
		}
		renderer, err := registry.Get(format)
		if err != nil {
			return err
		}

		plan, err := runPlan(cmd, cfg)
		if err != nil {
			if format != "table" {
				// html and json consumers get the error in their own format
				if rerr := renderer.RenderError(os.Stdout, err); rerr != nil {
					return rerr
				}
			}
			return err
		}

		return renderer.Render(os.Stdout, plan, render.Options{ShowDate: cfg.ShowDateEnabled()})
	},
}

// runPlan loads the feed and extracts the configured class.
func runPlan(cmd *cobra.Command, cfg *config.AppConfig) (*vplan.Plan, error) {
	if strings.TrimSpace(cfg.Class) == "" {
		return nil, errNoClass
	}
	query, err := cfg.Query()
	if err != nil {
		return nil, err
	}

	tree, err := loadTree(cmd, cfg)
	if err != nil {
		return nil, err
	}

	plan, err := vplan.Extract(tree, query)
	if err != nil {
		return nil, err
	}
	logger.Info("plan extracted", "class", query.Class, "status", plan.Status.String(), "lessons", len(plan.Lessons))
	return plan, nil
}

func init() {
	rootCmd.AddCommand(planCmd)
	addSourceFlags(planCmd)
	addClassFlags(planCmd)
	planCmd.Flags().String("format", "table", "Output format (table, html, json)")
	planCmd.Flags().Bool("no-date", false, "Hide the plan date above the table")
}
