package exporter

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vplanctl/pkg/vplan"

	ics "github.com/arran4/golang-ical"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var planFilePattern = regexp.MustCompile(`(\d{8})\.xml$`)

var germanMonths = map[string]time.Month{
	"januar":    time.January,
	"februar":   time.February,
	"märz":      time.March,
	"maerz":     time.March,
	"april":     time.April,
	"mai":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"august":    time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"dezember":  time.December,
}

// PlanDate resolves the calendar day a plan is valid for, preferring the
// file name (PlanKl20251006.xml) over the German DatumPlan text
// ("Montag, 06. Oktober 2025").
func PlanDate(h vplan.Header, loc *time.Location) (time.Time, error) {
	if m := planFilePattern.FindStringSubmatch(strings.TrimSpace(h.File)); m != nil {
		if d, err := time.ParseInLocation("20060102", m[1], loc); err == nil {
			return d, nil
		}
	}

	text := strings.TrimSpace(h.Date)
	if i := strings.LastIndex(text, ","); i >= 0 {
		text = text[i+1:]
	}
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("could not parse plan date %q", h.Date)
	}

	day, err := strconv.Atoi(strings.TrimSuffix(fields[0], "."))
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse day in %q", h.Date)
	}
	month, ok := germanMonths[cases.Lower(language.German).String(fields[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", fields[1])
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse year in %q", h.Date)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, loc), nil
}

// GenerateICS writes one event per lesson with known start and end times and
// returns how many events were written. Lessons without times are skipped.
func GenerateICS(plan *vplan.Plan, w io.Writer) (int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	// Timezone location for Germany
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return 0, fmt.Errorf("could not load timezone: %w", err)
	}

	day, err := PlanDate(plan.Header, loc)
	if err != nil {
		return 0, err
	}
	date := day.Format("02.01.2006")
	layout := "02.01.2006 15:04"

	count := 0
	for i, l := range plan.Lessons {
		if l.Begin == "" || l.End == "" {
			continue
		}

		startTime, err := time.ParseInLocation(layout, date+" "+l.Begin, loc)
		if err != nil {
			continue // Skip invalid times
		}
		endTime, err := time.ParseInLocation(layout, date+" "+l.End, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s-%d@vplanctl", startTime.Format("20060102T150405"), strings.TrimSpace(plan.Class), i))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetModifiedAt(time.Now())
		event.SetStartAt(startTime)
		event.SetEndAt(endTime)
		event.SetSummary(summary(l))
		if l.Room.Text != "" {
			event.SetLocation(l.Room.Text)
		}
		event.SetDescription(description(l))
		count++
	}

	if err := cal.SerializeTo(w); err != nil {
		return 0, err
	}
	return count, nil
}

func summary(l vplan.Lesson) string {
	subject := strings.TrimSpace(l.Subject.Text)
	if subject == "" {
		subject = "---"
	}
	if l.Subject.Changed || l.Teacher.Changed || l.Room.Changed {
		return subject + " (changed)"
	}
	return subject
}

func description(l vplan.Lesson) string {
	lines := []string{fmt.Sprintf("Lesson: %s", l.Period.Text)}
	if l.Teacher.Text != "" {
		lines = append(lines, fmt.Sprintf("Teacher: %s", l.Teacher.Text))
	}
	if info := strings.TrimSpace(l.Info.Text); info != "" {
		lines = append(lines, fmt.Sprintf("Info: %s", info))
	}
	return strings.Join(lines, "\n")
}
