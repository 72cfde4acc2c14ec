package xmltree

import (
	"github.com/beevik/etree"
)

// Convert turns an element and its descendants into a Node.
func Convert(e *etree.Element) *Node {
	n := newNode(e.FullTag())
	for i := range e.Attr {
		a := &e.Attr[i]
		n.Attrs = append(n.Attrs, Attr{Name: a.FullKey(), Value: a.Value})
	}
	convertChildren(n, e.Child)
	return n
}

// ConvertDocument returns an unnamed Node whose children are the document's
// top level elements.
func ConvertDocument(doc *etree.Document) *Node {
	n := newNode("")
	convertChildren(n, doc.Child)
	return n
}

func convertChildren(n *Node, tokens []etree.Token) {
	for _, tok := range tokens {
		switch t := tok.(type) {
		case *etree.Element:
			n.add(t.FullTag(), Convert(t))
		case *etree.CharData:
			n.addText(t.Data)
		}
		// Comments, directives and processing instructions are dropped.
	}
}
