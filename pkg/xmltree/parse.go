package xmltree

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument is returned when the input holds no root element.
var ErrEmptyDocument = errors.New("XML document has no root element")

// Parse reads an XML document and converts it. Non UTF-8 encodings declared
// in the prolog are decoded before parsing.
func Parse(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, ErrEmptyDocument
	}

	return ConvertDocument(doc), nil
}

// ParseString is Parse for in-memory documents.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}
