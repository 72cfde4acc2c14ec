package vplan

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"vplanctl/pkg/xmltree"
)

func loadFixture(t *testing.T) *xmltree.Node {
	t.Helper()
	file, err := os.Open("testdata/PlanKl20251006.xml")
	if err != nil {
		t.Fatalf("failed to open fixture: %v", err)
	}
	defer file.Close()

	tree, err := xmltree.Parse(file)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tree
}

func mustTree(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	tree, err := xmltree.ParseString(doc)
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return tree
}

func TestExtract_SecondClassOfMany(t *testing.T) {
	plan, err := Extract(loadFixture(t), Query{Class: "10b"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if plan.Status != StatusFound {
		t.Fatalf("expected StatusFound, got %s", plan.Status)
	}
	if len(plan.Lessons) != 1 {
		t.Fatalf("expected 1 lesson for 10b, got %d", len(plan.Lessons))
	}

	l := plan.Lessons[0]
	if l.Period.Text != "3" || l.Subject.Text != "DE" || l.Teacher.Text != "SCH" || l.Room.Text != "204" {
		t.Errorf("unexpected lesson row: %+v", l)
	}
	if l.Info.Text != "für Herrn Meyer" {
		t.Errorf("expected info text, got %q", l.Info.Text)
	}
	if l.Begin != "09:40" || l.End != "10:25" {
		t.Errorf("expected times 09:40-10:25, got %s-%s", l.Begin, l.End)
	}
}

func TestExtract_ChangedFlags(t *testing.T) {
	plan, err := Extract(loadFixture(t), Query{Class: "10b"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	l := plan.Lessons[0]
	if !l.Subject.Changed {
		t.Errorf("expected subject with attributes to be changed")
	}
	if !l.Room.Changed {
		t.Errorf("expected room with attributes to be changed")
	}
	if l.Teacher.Changed || l.Period.Changed || l.Info.Changed {
		t.Errorf("expected fields without attributes to be unchanged: %+v", l)
	}
}

func TestExtract_SingleClassIsFound(t *testing.T) {
	tree := mustTree(t, `<VpMobil><Kopf/><Klassen>
		<Kl><Kurz>5c</Kurz><Pl><Std><St>4</St><Fa>BIO</Fa></Std></Pl></Kl>
	</Klassen></VpMobil>`)

	plan, err := Extract(tree, Query{Class: "5c"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if plan.Status != StatusFound || len(plan.Lessons) != 1 {
		t.Fatalf("expected the only class to be found with 1 lesson, got %s with %d", plan.Status, len(plan.Lessons))
	}
	if plan.Lessons[0].Subject.Text != "BIO" {
		t.Errorf("expected subject BIO, got %q", plan.Lessons[0].Subject.Text)
	}
}

func TestExtract_MultipleLessonsInOrder(t *testing.T) {
	plan, err := Extract(loadFixture(t), Query{Class: "10a"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var periods []string
	for _, l := range plan.Lessons {
		periods = append(periods, l.Period.Text)
	}
	if !reflect.DeepEqual(periods, []string{"1", "2"}) {
		t.Errorf("expected periods [1 2], got %v", periods)
	}

	second := plan.Lessons[1]
	if second.Info.Present || second.Info.Text != "" {
		t.Errorf("expected missing If to become an empty, absent cell, got %+v", second.Info)
	}
	if !plan.Lessons[0].Info.Present {
		t.Errorf("expected empty If element to be present")
	}
}

func TestExtract_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		class string
	}{
		{"unknown class", "9z"},
		{"class without lessons", "11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Extract(loadFixture(t), Query{Class: tt.class})
			if err != nil {
				t.Fatalf("expected no error for a valid feed, got %v", err)
			}
			if plan.Status != StatusNotFound {
				t.Errorf("expected StatusNotFound, got %s", plan.Status)
			}
			if len(plan.Lessons) != 0 {
				t.Errorf("expected no lessons, got %d", len(plan.Lessons))
			}
			if plan.Header.Date == "" {
				t.Errorf("expected header date to be kept for a not found plan")
			}
		})
	}
}

func TestExtract_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"missing root", `<Other><Kopf/><Klassen/></Other>`, "VpMobil"},
		{"missing header", `<VpMobil><Klassen/></VpMobil>`, "VpMobil/Kopf"},
		{"missing class list", `<VpMobil><Kopf><DatumPlan>x</DatumPlan></Kopf></VpMobil>`, "VpMobil/Klassen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Extract(mustTree(t, tt.doc), Query{Class: "10a"})
			if !errors.Is(err, ErrInvalidData) {
				t.Fatalf("expected ErrInvalidData, got %v", err)
			}
			if plan != nil {
				t.Errorf("expected nil plan on invalid data")
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) || schemaErr.Path != tt.path {
				t.Errorf("expected missing path %q, got %v", tt.path, err)
			}
		})
	}
}

func TestExtract_NilTree(t *testing.T) {
	if _, err := Extract(nil, Query{Class: "10a"}); !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected ErrInvalidData for nil tree, got %v", err)
	}
}

func TestExtract_Notices(t *testing.T) {
	plan, err := Extract(loadFixture(t), Query{Class: "10a"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []string{"Heute Wandertag der 7. Klassen."}
	if !reflect.DeepEqual(plan.Notices, want) {
		t.Errorf("expected notices %v, got %v", want, plan.Notices)
	}
}

func TestExtract_SingleNoticeAndNoHeaderDate(t *testing.T) {
	tree := mustTree(t, `<VpMobil><Kopf/><Klassen/><ZusatzInfo><ZiZeile>Nur eine Zeile</ZiZeile></ZusatzInfo></VpMobil>`)

	plan, err := Extract(tree, Query{Class: "10a"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if plan.Header.Date != "" {
		t.Errorf("expected empty date, got %q", plan.Header.Date)
	}
	if !reflect.DeepEqual(plan.Notices, []string{"Nur eine Zeile"}) {
		t.Errorf("expected the single notice, got %v", plan.Notices)
	}
}

func TestExtract_Header(t *testing.T) {
	plan, err := Extract(loadFixture(t), Query{Class: "10a"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := Header{
		Date:      "Montag, 06. Oktober 2025",
		Timestamp: "03.10.2025, 14:12",
		File:      "PlanKl20251006.xml",
	}
	if plan.Header != want {
		t.Errorf("expected header %+v, got %+v", want, plan.Header)
	}
}

func TestExtract_MatchPolicy(t *testing.T) {
	tree := mustTree(t, `<VpMobil><Kopf/><Klassen>
		<Kl><Kurz> 7a </Kurz><Pl><Std><St>1</St></Std></Pl></Kl>
	</Klassen></VpMobil>`)

	tests := []struct {
		name   string
		class  string
		policy MatchPolicy
		want   Status
	}{
		{"trimmed matches padded feed", "7a", MatchTrimmed, StatusFound},
		{"trimmed matches padded query", "  7a", MatchTrimmed, StatusFound},
		{"trimmed is case-sensitive", "7A", MatchTrimmed, StatusNotFound},
		{"exact rejects padding", "7a", MatchExact, StatusNotFound},
		{"exact accepts identical text", " 7a ", MatchExact, StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Extract(tree, Query{Class: tt.class, Policy: tt.policy})
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if plan.Status != tt.want {
				t.Errorf("expected %s, got %s", tt.want, plan.Status)
			}
		})
	}
}

func TestExtract_FirstDuplicateWins(t *testing.T) {
	tree := mustTree(t, `<VpMobil><Kopf/><Klassen>
		<Kl><Kurz>8b</Kurz><Pl><Std><St>1</St></Std></Pl></Kl>
		<Kl><Kurz>8b</Kurz><Pl><Std><St>6</St></Std></Pl></Kl>
	</Klassen></VpMobil>`)

	plan, err := Extract(tree, Query{Class: "8b"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(plan.Lessons) != 1 || plan.Lessons[0].Period.Text != "1" {
		t.Errorf("expected lessons of the first 8b entry, got %+v", plan.Lessons)
	}
}

func TestExtract_Pure(t *testing.T) {
	tree := loadFixture(t)

	first, err := Extract(tree, Query{Class: "10a"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := Extract(tree, Query{Class: "10a"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results for identical input")
	}
}

func TestClasses(t *testing.T) {
	classes, err := Classes(loadFixture(t))
	if err != nil {
		t.Fatalf("Classes failed: %v", err)
	}

	want := []string{"10a", "10b", "11"}
	if !reflect.DeepEqual(classes, want) {
		t.Errorf("expected classes %v, got %v", want, classes)
	}
}

func TestParseMatchPolicy(t *testing.T) {
	if p, err := ParseMatchPolicy(""); err != nil || p != MatchTrimmed {
		t.Errorf("expected empty string to mean trim, got %v (%v)", p, err)
	}
	if p, err := ParseMatchPolicy("EXACT"); err != nil || p != MatchExact {
		t.Errorf("expected EXACT to parse, got %v (%v)", p, err)
	}
	if _, err := ParseMatchPolicy("fuzzy"); err == nil {
		t.Errorf("expected error for unknown policy")
	}
}
