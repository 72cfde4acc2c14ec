package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"vplanctl/pkg/config"
	"vplanctl/pkg/tui"
	"vplanctl/pkg/vplan"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vplanctl configuration",
	Long: `View or edit your local configuration (school number, login, class and
display settings). Without flags the interactive editor is launched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed, err := applyConfigFlags(cmd, cfg, os.Stdin)
		if err != nil {
			return err
		}
		if !changed {
			// If no flags are given, launch the interactive TUI flow
			return tui.RunConfigTUI()
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Println("✅ Configuration saved to ~/.vplanctl.json")
		return nil
	},
}

// applyConfigFlags copies every changed flag into cfg and reports whether
// anything was set.
func applyConfigFlags(cmd *cobra.Command, cfg *config.AppConfig, stdin io.Reader) (bool, error) {
	flags := cmd.Flags()
	changed := false

	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = strings.TrimSpace(v)
			changed = true
		}
	}
	setString("school", &cfg.SchoolNumber)
	setString("username", &cfg.Username)
	setString("class", &cfg.Class)
	setString("base-url", &cfg.BaseURL)
	setString("accent", &cfg.AccentColor)

	if flags.Changed("match") {
		v, _ := flags.GetString("match")
		policy, err := vplan.ParseMatchPolicy(v)
		if err != nil {
			return false, err
		}
		cfg.MatchPolicy = policy.String()
		changed = true
	}
	if flags.Changed("show-date") {
		v, _ := flags.GetBool("show-date")
		cfg.SetShowDate(v)
		changed = true
	}
	if flags.Changed("cache-minutes") {
		v, _ := flags.GetInt("cache-minutes")
		if v < 0 {
			return false, fmt.Errorf("cache minutes must not be negative")
		}
		cfg.CacheMinutes = v
		changed = true
	}

	if fromStdin, _ := flags.GetBool("password-stdin"); fromStdin {
		password, err := readPasswordLine(stdin)
		if err != nil {
			return false, err
		}
		cfg.Password = password
		changed = true
	} else if prompt, _ := flags.GetBool("password"); prompt {
		password, err := promptPassword()
		if err != nil {
			return false, err
		}
		cfg.Password = password
		changed = true
	}

	return changed, nil
}

func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("empty password on stdin")
	}
	return password, nil
}

// promptPassword reads the password without echoing it.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal, use --password-stdin")
	}
	fmt.Print("VpMobil password: ")
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("empty password")
	}
	return string(b), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	addConfigFlags(configCmd)
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("school", "", "Set the school number")
	cmd.Flags().String("username", "", "Set the VpMobil username")
	cmd.Flags().Bool("password", false, "Prompt for the VpMobil password (hidden input)")
	cmd.Flags().Bool("password-stdin", false, "Read the VpMobil password from stdin")
	cmd.Flags().StringP("class", "c", "", "Set your class, e.g. 10a")
	cmd.Flags().Bool("show-date", true, "Show the plan date above the table")
	cmd.Flags().String("match", "", "Class match policy (trim or exact)")
	cmd.Flags().String("base-url", "", "Proxy base URL instead of stundenplan24.de")
	cmd.Flags().Int("cache-minutes", 0, "Cache fetched feeds for this many minutes (0 disables)")
	cmd.Flags().String("accent", "", "Accent color (ANSI number or #RRGGBB)")
}
