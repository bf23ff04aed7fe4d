// Package resw reads and writes .resw localization resources as a generic
// element tree.
//
// A .resw file is a ResX document: a <root> element holding schema and
// header elements followed by <data name="Key" xml:space="preserve"> entries,
// each with a <value> child carrying the translated string. The tree keeps
// every node it was parsed from so unrelated content survives a round trip.
package resw

import "strings"

// NodeType identifies the kind of a Node.
type NodeType string

const (
	TypeElement     NodeType = "element"
	TypeText        NodeType = "text"
	TypeComment     NodeType = "comment"
	TypeInstruction NodeType = "instruction"
	TypeDirective   NodeType = "directive"
)

// Attr is a single attribute. Name is the qualified name as written in the
// source, including any prefix (for example "xml:space").
type Attr struct {
	Name  string
	Value string
}

// Node is an element, text, comment, processing instruction or directive.
//
// For elements, Name is the qualified tag name and Elements holds the
// children. For every other type Text carries the raw content; for
// instructions Name holds the target.
type Node struct {
	Type       NodeType
	Name       string
	Attributes []Attr
	Elements   []*Node
	Text       string
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute in place, appending it when missing so
// existing attribute order is preserved.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			n.Attributes[i].Value = value
			return
		}
	}
	n.Attributes = append(n.Attributes, Attr{Name: name, Value: value})
}

// Child returns the first child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Elements {
		if c.Type == TypeElement && c.Name == name {
			return c
		}
	}
	return nil
}

// InnerText concatenates the text of all direct text children.
func (n *Node) InnerText() string {
	var b strings.Builder
	for _, c := range n.Elements {
		if c.Type == TypeText {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// SetInnerText replaces all children with a single text node.
func (n *Node) SetInnerText(text string) {
	n.Elements = []*Node{{Type: TypeText, Text: text}}
}

func (n *Node) isWhitespace() bool {
	return n.Type == TypeText && strings.TrimSpace(n.Text) == ""
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		Type: n.Type,
		Name: n.Name,
		Text: n.Text,
	}
	if n.Attributes != nil {
		c.Attributes = append([]Attr(nil), n.Attributes...)
	}
	if n.Elements != nil {
		c.Elements = make([]*Node, len(n.Elements))
		for i, e := range n.Elements {
			c.Elements[i] = e.Clone()
		}
	}
	return c
}
