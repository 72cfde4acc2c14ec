package xmltree

import "strings"

// Kind records whether a tag name occurred once or repeatedly under its parent.
type Kind int

const (
	One Kind = iota
	Many
)

func (k Kind) String() string {
	if k == Many {
		return "many"
	}
	return "one"
}

// Attr is a single attribute, kept in document order.
type Attr struct {
	Name  string
	Value string
}

// Node is the converted form of one XML element, or of a whole document
// when Name is empty.
type Node struct {
	Name  string
	Attrs []Attr
	// Texts holds the raw character data segments in document order.
	Texts []string

	keys     []string
	children map[string]*Group
	// textAt is the number of child keys seen before the first text segment,
	// -1 while the node has no text.
	textAt int
}

// Group holds all children sharing one tag name under a parent.
type Group struct {
	Kind  Kind
	Nodes []*Node
}

func newNode(name string) *Node {
	return &Node{Name: name, textAt: -1}
}

// add stores child under name. The first occurrence is kept as a single
// value; the second promotes the group to a sequence.
func (n *Node) add(name string, child *Node) {
	if n.children == nil {
		n.children = make(map[string]*Group)
	}
	g, ok := n.children[name]
	if !ok {
		n.children[name] = &Group{Kind: One, Nodes: []*Node{child}}
		n.keys = append(n.keys, name)
		return
	}
	g.Kind = Many
	g.Nodes = append(g.Nodes, child)
}

func (n *Node) addText(s string) {
	if n.textAt < 0 {
		n.textAt = len(n.keys)
	}
	n.Texts = append(n.Texts, s)
}

// HasAttributes reports whether the element carried any attribute.
func (n *Node) HasAttributes() bool {
	return n != nil && len(n.Attrs) > 0
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text returns the concatenated character data of the node, untrimmed.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Texts, "")
}

// HasText reports whether the node has at least one text segment.
func (n *Node) HasText() bool {
	return n != nil && len(n.Texts) > 0
}

// IsLeaf reports whether the node has neither attributes nor element children.
func (n *Node) IsLeaf() bool {
	return n != nil && len(n.Attrs) == 0 && len(n.keys) == 0
}

// Leaf returns the raw text of a leaf node.
func (n *Node) Leaf() (string, bool) {
	if !n.IsLeaf() {
		return "", false
	}
	return n.Text(), true
}

// Keys returns the child tag names in order of first occurrence.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

// Group returns the children stored under name, or nil.
func (n *Node) Group(name string) *Group {
	if n == nil || n.children == nil {
		return nil
	}
	return n.children[name]
}

// Child returns the first child stored under name, or nil.
func (n *Node) Child(name string) *Node {
	return n.Group(name).First()
}

// Path follows Child through each name in turn.
func (n *Node) Path(names ...string) *Node {
	cur := n
	for _, name := range names {
		cur = cur.Child(name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Len returns the number of nodes in the group; zero for a nil group.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// First returns the first node in document order, or nil.
func (g *Group) First() *Node {
	if g == nil || len(g.Nodes) == 0 {
		return nil
	}
	return g.Nodes[0]
}

// All returns the group as a sequence regardless of its kind.
func (g *Group) All() []*Node {
	if g == nil {
		return nil
	}
	nodes := make([]*Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	return nodes
}
