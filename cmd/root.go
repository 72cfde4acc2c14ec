package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"vplanctl/pkg/config"
	"vplanctl/pkg/logging"
	"vplanctl/pkg/vpmobil"
	"vplanctl/pkg/xmltree"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var logger = logging.NopLogger()

var rootCmd = &cobra.Command{
	Use:   "vplanctl",
	Short: "A CLI and TUI for VpMobil substitution plans",
	Long: `vplanctl fetches your class's substitution plan from stundenplan24.de
(Indiware VpMobil), shows it in the terminal, renders the dashboard card
markup or JSON, and exports lessons to an .ics file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		path, _ := cmd.Flags().GetString("log-file")
		l, err := logging.NewLogger(path, level)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", logging.LevelWarn, "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")
}

// flagKeys maps viper keys to the flag names that may override them.
var flagKeys = map[string]string{
	config.KeySchool:   "school",
	config.KeyUsername: "username",
	config.KeyClass:    "class",
	config.KeyBaseURL:  "base-url",
}

// addSourceFlags registers the flags shared by commands that read a feed.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("school", "", "School number (overrides config)")
	cmd.Flags().String("username", "", "VpMobil username (overrides config)")
	cmd.Flags().String("base-url", "", "Proxy base URL instead of stundenplan24.de")
	cmd.Flags().StringP("date", "d", "", "Plan date: YYYY-MM-DD, today or tomorrow (default: current plan)")
	cmd.Flags().StringP("file", "f", "", "Read the feed from a local XML file instead of fetching it")
}

// addClassFlags registers the flags shared by commands that extract a class.
func addClassFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("class", "c", "", "Class short name, e.g. 10a (overrides config)")
	cmd.Flags().Bool("exact", false, "Match the class name exactly instead of trimming whitespace")
}

// loadConfig reads ~/.vplanctl.json and layers changed flags and VPLAN_*
// environment variables on top.
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	v := config.NewViper()
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	resolved := config.Resolve(cfg, v)
	if noDate, _ := cmd.Flags().GetBool("no-date"); noDate {
		resolved.SetShowDate(false)
	}
	if exact, _ := cmd.Flags().GetBool("exact"); exact {
		resolved.MatchPolicy = "exact"
	}
	return resolved, nil
}

// parseDate accepts YYYY-MM-DD, "today" and "tomorrow". Empty selects the
// current plan and yields the zero time.
func parseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return time.Time{}, nil
	case "today", "heute":
		return now, nil
	case "tomorrow", "morgen":
		return now.AddDate(0, 0, 1), nil
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, today or tomorrow)", s)
	}
	return d, nil
}

// loadTree reads the feed from --file or fetches it from the vendor.
func loadTree(cmd *cobra.Command, cfg *config.AppConfig) (*xmltree.Node, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open feed file: %w", err)
		}
		defer f.Close()
		logger.Debug("reading plan from file", "path", path)
		return xmltree.Parse(f)
	}

	if err := cfg.ValidateLogin(); err != nil {
		return nil, err
	}

	dateStr, _ := cmd.Flags().GetString("date")
	day, err := parseDate(dateStr, time.Now())
	if err != nil {
		return nil, err
	}

	client := vpmobil.FromConfig(cfg, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var tree *xmltree.Node
	withSpinner(fmt.Sprintf("Fetching plan for school %s...", cfg.SchoolNumber), func() {
		tree, err = client.FetchPlan(ctx, cfg.SchoolNumber, vpmobil.CredentialsFrom(cfg), day)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}
	return tree, nil
}

// withSpinner runs action behind a spinner when stdout is a terminal, so
// piped html and json output stays clean.
func withSpinner(title string, action func()) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		action()
		return
	}
	_ = spinner.New().
		Title(title).
		Action(action).
		Run()
}
