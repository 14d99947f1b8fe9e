// Package xmltree parses XML parts into an ordered, namespace-qualified
// element tree.
//
// The tree keeps every element, attribute and text segment in document
// order, including names the caller does not understand, so later stages
// can preserve unknown content instead of discarding it. Parse fails with
// [diag.ErrMalformedXML] and a byte offset on any structural error.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tsawler/docxlayout/diag"
)

// NodeKind distinguishes element nodes from text nodes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

// Name is a namespace-qualified name. Space holds the namespace URI; the
// prefix used in the source is not kept.
type Name struct {
	Space string
	Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// Attr is a single attribute. Namespace declarations are not attributes.
type Attr struct {
	Name  Name
	Value string
}

// Node is an element or a text segment.
type Node struct {
	Kind     NodeKind
	Name     Name // elements only
	Attrs    []Attr
	Children []*Node
	Text     string // text nodes only
	Offset   int64  // byte offset of the start of the node in the part
}

// Parse parses data into a tree rooted at the document element.
func Parse(data []byte) (*Node, error) {
	return parse(bytes.NewReader(data))
}

func parse(r io.Reader) (*Node, error) {
	d := xml.NewDecoder(r)
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)

	for {
		offset := d.InputOffset()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(d.InputOffset(), err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, malformed(offset, "multiple root elements")
			}
			n := &Node{Kind: ElementNode, Name: Name(t.Name), Offset: offset}
			if err := setAttrs(n, t.Attr); err != nil {
				return nil, malformed(offset, err.Error())
			}
			if len(stack) == 0 {
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
				if len(bytes.TrimSpace(t)) != 0 {
					return nil, malformed(offset, "text outside the root element")
				}
				continue
			}
			parent := stack[len(stack)-1]
			if k := len(parent.Children); k > 0 && parent.Children[k-1].Kind == TextNode {
				parent.Children[k-1].Text += string(t)
				continue
			}
			parent.Children = append(parent.Children, &Node{Kind: TextNode, Text: string(t), Offset: offset})
		}
	}

	if root == nil {
		return nil, malformed(d.InputOffset(), "no root element")
	}
	return root, nil
}

func setAttrs(n *Node, attrs []xml.Attr) error {
	if len(attrs) == 0 {
		return nil
	}
	n.Attrs = make([]Attr, 0, len(attrs))
	seen := make(map[Name]bool, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		name := Name(a.Name)
		if seen[name] {
			return fmt.Errorf("duplicate attribute %s on %s", name, n.Name)
		}
		seen[name] = true
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Value})
	}
	return nil
}

func malformed(offset int64, detail string) error {
	return diag.New(diag.KindXMLSyntax, diag.ErrMalformedXML, "", detail).At(offset)
}

// InPart returns err located in the named part when it is a pipeline
// error, or err unchanged otherwise.
func InPart(err error, part string) error {
	var e *diag.Error
	if errors.As(err, &e) && e.Part == "" {
		c := *e
		c.Part = part
		return &c
	}
	return err
}

// Is reports whether n is an element with the given name.
func (n *Node) Is(space, local string) bool {
	return n != nil && n.Kind == ElementNode && n.Name.Local == local && n.Name.Space == space
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(space, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the value of the named attribute, or "" if absent.
func (n *Node) AttrValue(space, local string) string {
	v, _ := n.Attr(space, local)
	return v
}

// Child returns the first child element with the given name.
func (n *Node) Child(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Is(space, local) {
			return c
		}
	}
	return nil
}

// Elements returns the child elements with the given name.
func (n *Node) Elements(space, local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Is(space, local) {
			out = append(out, c)
		}
	}
	return out
}

// ChildElements returns every child element in order.
func (n *Node) ChildElements() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Text
	}
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Kind == TextNode {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

// Walk visits n and its descendants depth first in document order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
