package xmltree

import (
	"bytes"
	"encoding/json"
)

// Reserved keys of the legacy JSON shape.
const (
	AttributesKey = "@attributes"
	TextKey       = "#text"
)

// MarshalJSON writes the node in the legacy mapping shape: attributes under
// "@attributes", text under "#text", and a tag that occurred more than once
// as an array.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	buf.WriteByte('{')
	first := true
	field := func(key string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		return writeString(buf, key, ':')
	}

	if len(n.Attrs) > 0 {
		if err := field(AttributesKey); err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, a := range n.Attrs {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, a.Name, ':'); err != nil {
				return err
			}
			if err := writeString(buf, a.Value, 0); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}

	for i := 0; i <= len(n.keys); i++ {
		if i == n.textAt {
			if err := field(TextKey); err != nil {
				return err
			}
			if err := n.writeTexts(buf); err != nil {
				return err
			}
		}
		if i == len(n.keys) {
			break
		}

		key := n.keys[i]
		if err := field(key); err != nil {
			return err
		}
		g := n.children[key]
		if g.Kind == One {
			if err := g.Nodes[0].writeJSON(buf); err != nil {
				return err
			}
			continue
		}
		buf.WriteByte('[')
		for j, child := range g.Nodes {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := child.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}

	buf.WriteByte('}')
	return nil
}

func (n *Node) writeTexts(buf *bytes.Buffer) error {
	if len(n.Texts) == 1 {
		return writeString(buf, n.Texts[0], 0)
	}
	buf.WriteByte('[')
	for i, t := range n.Texts {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, t, 0); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeString(buf *bytes.Buffer, s string, suffix byte) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	if suffix != 0 {
		buf.WriteByte(suffix)
	}
	return nil
}
