package vplan

import (
	"strings"

	"vplanctl/pkg/xmltree"

	"github.com/samber/lo"
)

// Element names of the VpMobil class feed.
const (
	tagRoot      = "VpMobil"
	tagHeader    = "Kopf"
	tagClasses   = "Klassen"
	tagClass     = "Kl"
	tagShortName = "Kurz"
	tagPlan      = "Pl"
	tagLesson    = "Std"
	tagNotices   = "ZusatzInfo"
	tagNotice    = "ZiZeile"
)

// Extract locates the queried class in a converted feed.
//
// A feed without VpMobil, Kopf or Klassen yields a *SchemaError. A valid feed
// without lessons for the class yields a plan with StatusNotFound; its header
// and notices are still filled in.
func Extract(tree *xmltree.Node, q Query) (*Plan, error) {
	root, err := validate(tree)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Class:   q.Class,
		Status:  StatusNotFound,
		Header:  readHeader(root.Child(tagHeader)),
		Lessons: []Lesson{},
		Notices: readNotices(root.Child(tagNotices)),
	}

	class, ok := lo.Find(root.Child(tagClasses).Group(tagClass).All(), func(kl *xmltree.Node) bool {
		return q.Policy.matches(kl.Child(tagShortName).Text(), q.Class)
	})
	if !ok {
		return plan, nil
	}

	rows := class.Path(tagPlan).Group(tagLesson)
	if rows.Len() == 0 {
		return plan, nil
	}

	plan.Lessons = lo.Map(rows.All(), func(std *xmltree.Node, _ int) Lesson {
		return readLesson(std)
	})
	plan.Status = StatusFound
	return plan, nil
}

// Classes lists the trimmed short names of every class in document order.
func Classes(tree *xmltree.Node) ([]string, error) {
	root, err := validate(tree)
	if err != nil {
		return nil, err
	}
	return lo.Map(root.Child(tagClasses).Group(tagClass).All(), func(kl *xmltree.Node, _ int) string {
		return strings.TrimSpace(kl.Child(tagShortName).Text())
	}), nil
}

// validate accepts either the document node or the VpMobil element itself.
func validate(tree *xmltree.Node) (*xmltree.Node, error) {
	root := tree
	if tree == nil || tree.Name != tagRoot {
		root = tree.Child(tagRoot)
	}
	if root == nil {
		return nil, &SchemaError{Path: tagRoot}
	}
	if root.Child(tagHeader) == nil {
		return nil, &SchemaError{Path: tagRoot + "/" + tagHeader}
	}
	if root.Child(tagClasses) == nil {
		return nil, &SchemaError{Path: tagRoot + "/" + tagClasses}
	}
	return root, nil
}

func readHeader(kopf *xmltree.Node) Header {
	return Header{
		Date:      kopf.Child("DatumPlan").Text(),
		Timestamp: kopf.Child("zeitstempel").Text(),
		File:      kopf.Child("datei").Text(),
	}
}

func readNotices(zusatz *xmltree.Node) []string {
	return lo.FilterMap(zusatz.Group(tagNotice).All(), func(line *xmltree.Node, _ int) (string, bool) {
		text := line.Text()
		return text, strings.TrimSpace(text) != ""
	})
}

func readLesson(std *xmltree.Node) Lesson {
	return Lesson{
		Period:  readCell(std.Child("St")),
		Subject: readCell(std.Child("Fa")),
		Teacher: readCell(std.Child("Le")),
		Room:    readCell(std.Child("Ra")),
		Info:    readCell(std.Child("If")),
		Number:  std.Child("Nr").Text(),
		Begin:   strings.TrimSpace(std.Child("Beginn").Text()),
		End:     strings.TrimSpace(std.Child("Ende").Text()),
	}
}

func readCell(n *xmltree.Node) Cell {
	return Cell{
		Text:    n.Text(),
		Changed: n.HasAttributes(),
		Present: n != nil,
	}
}
