package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"vplanctl/pkg/config"
	"vplanctl/pkg/exporter"
	"vplanctl/pkg/logging"
	"vplanctl/pkg/render"
	"vplanctl/pkg/vplan"
	"vplanctl/pkg/vpmobil"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

const currentPlan = "current"

var germanWeekdays = [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}

// dayOptions offers the current plan followed by the next school days.
func dayOptions(now time.Time, count int) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("Current plan", currentPlan)}
	day := now
	for len(options) <= count {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			label := fmt.Sprintf("%s, %s", germanWeekdays[day.Weekday()], day.Format("02.01.2006"))
			options = append(options, huh.NewOption(label, day.Format("2006-01-02")))
		}
		day = day.AddDate(0, 0, 1)
	}
	return options
}

func parseDayChoice(choice string) (time.Time, error) {
	if choice == "" || choice == currentPlan {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", choice, time.Local)
}

// loadConfiguredPlan asks for a day and fetches the configured class.
func loadConfiguredPlan(logger *logging.Logger) (*config.AppConfig, *vplan.Plan, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return nil, nil, nil
	}
	query, err := cfg.Query()
	if err != nil {
		return nil, nil, err
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Which plan for class %s?", cfg.Class)).
				Options(dayOptions(time.Now(), 5)...).
				Value(&choice),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return nil, nil, err
	}

	day, err := parseDayChoice(choice)
	if err != nil {
		return nil, nil, err
	}

	client := vpmobil.FromConfig(cfg, logger)
	var plan *vplan.Plan
	var fetchErr error

	_ = spinner.New().
		Title("Fetching substitution plan from stundenplan24.de...").
		Action(func() {
			plan, fetchErr = client.Extract(context.Background(), cfg.SchoolNumber, vpmobil.CredentialsFrom(cfg), day, query)
		}).
		Run()

	if fetchErr != nil {
		return nil, nil, fmt.Errorf("failed to fetch plan: %w", fetchErr)
	}
	return cfg, plan, nil
}

// RunPlanTUI shows the configured class's plan as a table
func RunPlanTUI(logger *logging.Logger) error {
	cfg, plan, err := loadConfiguredPlan(logger)
	if err != nil || plan == nil {
		return err
	}

	table := render.Table{Accent: lipgloss.Color(AccentColor(cfg))}
	fmt.Println()
	return table.Render(os.Stdout, plan, render.Options{ShowDate: cfg.ShowDateEnabled()})
}

// RunExportTUI writes the lessons of the chosen plan to an ICS file
func RunExportTUI(logger *logging.Logger) error {
	_, plan, err := loadConfiguredPlan(logger)
	if err != nil || plan == nil {
		return err
	}

	if plan.Status == vplan.StatusNotFound {
		fmt.Println(errorStyle.Render(fmt.Sprintf("No substitution for class %s found.", plan.Class)))
		return nil
	}

	output := "vplan.ics"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Where should the calendar be saved?").
				Value(&output).
				Validate(required("output path")),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
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

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Exported %d lessons to %s\n", count, output)))
	return nil
}
