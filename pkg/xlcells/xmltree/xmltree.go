// Package xmltree builds a small namespace-stripped element tree from XML text.
//
// It offers the handful of navigation calls the worksheet decoder needs:
// first child by name, next sibling by name, attribute by name and raw text.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrMalformedXML indicates the input could not be tokenized.
var ErrMalformedXML = errors.New("malformed xml")

// Attr is an attribute with its namespace prefix removed.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of the tree. The document itself is represented by a
// root node with an empty Name whose children are the top-level elements.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node

	parent *Node
	index  int
	text   []byte
}

// Parse reads a whole XML document into a tree.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	root := &Node{}
	cur := root
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			n := &Node{
				Name:   t.Name.Local,
				parent: cur,
				index:  len(cur.Children),
			}
			if len(t.Attr) > 0 {
				n.Attrs = make([]Attr, len(t.Attr))
				for i, a := range t.Attr {
					n.Attrs[i] = Attr{Name: a.Name.Local, Value: a.Value}
				}
			}
			cur.Children = append(cur.Children, n)
			cur = n
		case xml.EndElement:
			if cur.parent != nil {
				cur = cur.parent
			}
		case xml.CharData:
			if cur != root {
				cur.text = append(cur.text, t...)
			}
		}
	}

	return root, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Node, error) {
	return Parse(bytes.NewReader(data))
}

// FirstChild returns the first child element called name, or the first child
// element of any name when name is empty. It is safe to call on a nil node.
func (n *Node) FirstChild(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if name == "" || c.Name == name {
			return c
		}
	}
	return nil
}

// NextSibling returns the next element after n with the given name (any name
// when empty).
func (n *Node) NextSibling(name string) *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	for _, c := range n.parent.Children[n.index+1:] {
		if name == "" || c.Name == name {
			return c
		}
	}
	return nil
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

// Text returns the character data directly inside n, entities decoded.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return string(n.text)
}

// HasChildElements reports whether n contains at least one element.
func (n *Node) HasChildElements() bool {
	return n != nil && len(n.Children) > 0
}

// Path follows a chain of first-child names, e.g. Path("worksheet", "sheetData").
func (n *Node) Path(names ...string) *Node {
	for _, name := range names {
		n = n.FirstChild(name)
	}
	return n
}
