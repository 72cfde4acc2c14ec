package tui

import (
	"context"
	"fmt"
	"strings"

	"vplanctl/pkg/config"
	"vplanctl/pkg/logging"
	"vplanctl/pkg/vplan"
	"vplanctl/pkg/vpmobil"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Edit VpMobil Login and Class", "login"),
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "login":
			err = RunEditorTUI(cfg)
		case "theme":
			err = runSetThemeTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.vplanctl.json) ---"))
			fmt.Print(describeConfig(cfg))
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

// describeConfig lists the settings without revealing the password.
func describeConfig(cfg *config.AppConfig) string {
	orUnset := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "Not set"
		}
		return s
	}
	password := "Not set"
	if cfg.Password != "" {
		password = "********"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "School Number: %s\n", orUnset(cfg.SchoolNumber))
	fmt.Fprintf(&b, "Username: %s\n", orUnset(cfg.Username))
	fmt.Fprintf(&b, "Password: %s\n", password)
	fmt.Fprintf(&b, "Class: %s\n", orUnset(cfg.Class))
	fmt.Fprintf(&b, "Show Date: %t\n", cfg.ShowDateEnabled())
	fmt.Fprintf(&b, "Match Policy: %s\n", orUnset(cfg.MatchPolicy))
	fmt.Fprintf(&b, "Proxy Base URL: %s\n", orUnset(cfg.BaseURL))
	fmt.Fprintf(&b, "Cache Minutes: %d\n", cfg.CacheMinutes)
	fmt.Fprintf(&b, "Accent Color: %s\n", AccentColor(cfg))
	return b.String()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateSchoolNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("school number is required")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("school number must only contain digits")
		}
	}
	return nil
}

// RunEditorTUI edits the login, the class and the date toggle, then saves.
func RunEditorTUI(cfg *config.AppConfig) error {
	school := cfg.SchoolNumber
	username := cfg.Username
	password := cfg.Password
	showDate := cfg.ShowDateEnabled()

	loginForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("School Number").
				Description("The eight digit number from your stundenplan24.de link.").
				Value(&school).
				Validate(validateSchoolNumber),
			huh.NewInput().
				Title("Username").
				Value(&username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(required("password")),
		),
	).WithTheme(GetTheme())

	if err := loginForm.Run(); err != nil {
		return err
	}

	cfg.SchoolNumber = strings.TrimSpace(school)
	cfg.Username = username
	cfg.Password = password

	class, err := pickClass(cfg)
	if err != nil {
		return err
	}

	dateForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show the plan date above the table?").
				Value(&showDate),
		),
	).WithTheme(GetTheme())

	if err := dateForm.Run(); err != nil {
		return err
	}

	cfg.Class = class
	cfg.SetShowDate(showDate)

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Saved login for school %s, class %s.\n", cfg.SchoolNumber, cfg.Class)))
	return nil
}

// pickClass offers the classes from the live feed, falling back to free text
// when the feed cannot be fetched with the entered login.
func pickClass(cfg *config.AppConfig) (string, error) {
	var classes []string
	var fetchErr error

	_ = spinner.New().
		Title("Fetching classes from stundenplan24.de...").
		Action(func() {
			client := vpmobil.FromConfig(cfg, logging.NopLogger())
			tree, err := client.FetchClasses(context.Background(), cfg.SchoolNumber, vpmobil.CredentialsFrom(cfg))
			if err != nil {
				fetchErr = err
				return
			}
			classes, fetchErr = vplan.Classes(tree)
		}).
		Run()

	class := cfg.Class

	if fetchErr != nil || len(classes) == 0 {
		if fetchErr != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Could not load classes: %v", fetchErr)))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Class").
					Placeholder("e.g. 10a").
					Value(&class).
					Validate(required("class")),
			),
		).WithTheme(GetTheme())
		if err := form.Run(); err != nil {
			return "", err
		}
		return strings.TrimSpace(class), nil
	}

	var options []huh.Option[string]
	for _, name := range classes {
		opt := huh.NewOption(name, name)
		if name == strings.TrimSpace(cfg.Class) {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select your class").
				Options(options...).
				Value(&class).
				Filtering(true).
				Height(12),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return class, nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range strings.ToLower(str[1:]) {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
	}
	return nil
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for vplanctl").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Card Purple", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetCustomTheme(AccentColor(cfg)))

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}
