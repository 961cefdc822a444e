// Package xmltree builds a small labelled tree from XML-style markup.
//
// It is the structural engine behind the NIDL and NADL dialects: strict
// enough to reject unbalanced or truncated input, loose about namespaces so
// prefixed tags (nad:section) and bare tags (section) match the same name.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNoRoot        = errors.New("no root element")
	ErrMultipleRoots = errors.New("multiple root elements")
)

// Node is an element or a text run.
type Node struct {
	Name     string // Local element name; empty for text nodes
	Space    string // Namespace or unresolved prefix
	Attrs    []xml.Attr
	Children []*Node
	Data     string // Text content for text nodes
}

// IsText reports whether n is a text run.
func (n *Node) IsText() bool {
	return n.Name == ""
}

// Parse reads a single-rooted document and returns its root element.
func Parse(src string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(src))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local, Space: t.Name.Space, Attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, ErrMultipleRoots
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("parse markup: text outside root element")
				}
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Node{Data: string(t)})
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("parse markup: unclosed element <%s>", stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// Attr returns the value of the attribute with the given local name, or "".
func (n *Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// LookupAttr returns the attribute value and whether it was present.
func (n *Node) LookupAttr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text concatenates all descendant text in document order.
func (n *Node) Text() string {
	if n.IsText() {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.IsText() {
				sb.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// Find returns the first descendant element named name, in document order.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.walk(func(c *Node) bool {
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every descendant element whose name is in names, in
// document order.
func (n *Node) FindAll(names ...string) []*Node {
	var out []*Node
	n.walk(func(c *Node) bool {
		for _, name := range names {
			if c.Name == name {
				out = append(out, c)
				break
			}
		}
		return true
	})
	return out
}

// walk visits descendant elements depth-first until visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	for _, c := range n.Children {
		if c.IsText() {
			continue
		}
		if !visit(c) {
			return false
		}
		if !c.walk(visit) {
			return false
		}
	}
	return true
}
