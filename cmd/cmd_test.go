package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"vplanctl/pkg/config"
	"vplanctl/pkg/exporter"
	"vplanctl/pkg/vplan"

	"github.com/spf13/cobra"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addSourceFlags(cmd)
	addClassFlags(cmd)
	cmd.Flags().Bool("no-date", false, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cmd
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"today", now},
		{"Morgen", now.AddDate(0, 0, 1)},
		{"2025-10-08", time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in, now)
		if err != nil {
			t.Errorf("parseDate(%q) failed: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseDate("08.10.2025", now); err == nil {
		t.Errorf("expected error for German date format")
	}
}

func TestLoadConfig_Layering(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := config.Save(&config.AppConfig{SchoolNumber: "1", Username: "file", Password: "p", Class: "9c"}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	t.Setenv("VPLAN_USERNAME", "env")

	cmd := newTestCommand(t, "--class", "10a", "--exact", "--no-date")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Class != "10a" {
		t.Errorf("expected flag to override class, got %q", cfg.Class)
	}
	if cfg.Username != "env" {
		t.Errorf("expected environment to override username, got %q", cfg.Username)
	}
	if cfg.SchoolNumber != "1" {
		t.Errorf("expected file value for school, got %q", cfg.SchoolNumber)
	}
	if cfg.MatchPolicy != "exact" || cfg.ShowDateEnabled() {
		t.Errorf("expected exact matching and hidden date, got %+v", cfg)
	}
}

func TestRunPlan_FromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newTestCommand(t, "--file", filepath.Join("testdata", "Klassen.xml"), "--class", "10a")
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	plan, err := runPlan(cmd, cfg)
	if err != nil {
		t.Fatalf("runPlan failed: %v", err)
	}
	if plan.Status != vplan.StatusFound || len(plan.Lessons) != 2 {
		t.Fatalf("expected two lessons, got %+v", plan)
	}
	if !plan.Lessons[1].Subject.Changed {
		t.Errorf("expected changed subject in second lesson")
	}

	var buf bytes.Buffer
	count, err := exporter.GenerateICS(plan, &buf)
	if err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one timed lesson, got %d", count)
	}
}

func TestRunPlan_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newTestCommand(t, "--file", filepath.Join("testdata", "Klassen.xml"))
	cfg, _ := loadConfig(cmd)
	if _, err := runPlan(cmd, cfg); !errors.Is(err, errNoClass) {
		t.Errorf("expected errNoClass, got %v", err)
	}

	cmd = newTestCommand(t, "--class", "10a")
	cfg, _ = loadConfig(cmd)
	if _, err := runPlan(cmd, cfg); !errors.Is(err, config.ErrIncomplete) {
		t.Errorf("expected ErrIncomplete without login, got %v", err)
	}
}

func TestRunPlan_ClassWithoutLessons(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newTestCommand(t, "--file", filepath.Join("testdata", "Klassen.xml"), "--class", "10b")
	cfg, _ := loadConfig(cmd)
	plan, err := runPlan(cmd, cfg)
	if err != nil {
		t.Fatalf("runPlan failed: %v", err)
	}
	if plan.Status != vplan.StatusNotFound {
		t.Errorf("expected not found, got %v", plan.Status)
	}
}

func TestApplyConfigFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := &cobra.Command{Use: "config"}
	addConfigFlags(cmd)
	if err := cmd.ParseFlags([]string{"--school", " 10000000 ", "--class", "10b", "--show-date=false", "--match", "EXACT", "--password-stdin"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg := &config.AppConfig{Username: "keep"}
	changed, err := applyConfigFlags(cmd, cfg, strings.NewReader("geheim\n"))
	if err != nil {
		t.Fatalf("applyConfigFlags failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected changes to be reported")
	}

	showDate := false
	want := &config.AppConfig{
		SchoolNumber: "10000000",
		Username:     "keep",
		Password:     "geheim",
		Class:        "10b",
		ShowDate:     &showDate,
		MatchPolicy:  "exact",
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("expected %+v, got %+v", want, cfg)
	}
}

func TestReadPasswordLine(t *testing.T) {
	if _, err := readPasswordLine(strings.NewReader("")); err == nil {
		t.Errorf("expected error for empty stdin")
	}
	got, err := readPasswordLine(strings.NewReader("pw\r\n"))
	if err != nil || got != "pw" {
		t.Errorf("expected pw, got %q (%v)", got, err)
	}
}
