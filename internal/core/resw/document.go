package resw

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultText is the placeholder value given to newly added keys.
const DefaultText = "Put your text here"

// Element and attribute names used by .resw files.
const (
	ElemData    = "data"
	ElemValue   = "value"
	ElemComment = "comment"
	AttrName    = "name"
	AttrSpace   = "xml:space"
)

// ErrNoRoot is returned when a document has no root element.
var ErrNoRoot = errors.New("resw: document has no root element")

// Document is one parsed .resw file. Nodes holds the top level nodes in
// document order: the XML declaration, comments and the root element.
type Document struct {
	Nodes []*Node

	// enc is the file's encoding when it is not UTF-8; Encode writes the
	// same encoding back.
	enc encoding.Encoding
	bom bool
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Parse reads a .resw document. Namespace prefixes are kept verbatim so the
// document can be written back unchanged.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read resw: %w", err)
	}

	doc := &Document{}
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
		doc.bom = true
	case bytes.HasPrefix(data, bomUTF16LE):
		doc.enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(data, bomUTF16BE):
		doc.enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	if doc.enc != nil {
		if data, err = doc.enc.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("decode utf-16: %w", err)
		}
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = doc.charsetReader

	var stack []*Node

	appendNode := func(n *Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Elements = append(parent.Elements, n)
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse resw: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Type: TypeElement, Name: qualified(t.Name)}
			for _, a := range t.Attr {
				n.Attributes = append(n.Attributes, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			appendNode(n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse resw: unexpected end element %q", qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if top.Name != qualified(t.Name) {
				return nil, fmt.Errorf("parse resw: element %q closed by %q", top.Name, qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 && len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			appendNode(&Node{Type: TypeText, Text: string(t)})
		case xml.Comment:
			appendNode(&Node{Type: TypeComment, Text: string(t)})
		case xml.ProcInst:
			appendNode(&Node{Type: TypeInstruction, Name: t.Target, Text: string(t.Inst)})
		case xml.Directive:
			appendNode(&Node{Type: TypeDirective, Text: string(t)})
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("parse resw: unclosed element %q", stack[len(stack)-1].Name)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}

	return doc, nil
}

// charsetReader transcodes documents declaring a non UTF-8 encoding. A
// utf-16 declaration is only trusted when a BOM was found, in which case the
// data is already UTF-8; otherwise the file was saved as UTF-8 with a stale
// declaration and is read as is.
func (d *Document) charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch l := strings.ToLower(label); {
	case d.enc != nil, strings.HasPrefix(l, "utf-16"), l == "us-ascii", l == "ascii":
		return input, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	d.enc = enc
	return transform.NewReader(input, enc.NewDecoder()), nil
}

func qualified(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// Encode writes the document as XML.
func (d *Document) Encode(w io.Writer) error {
	var b strings.Builder
	for i, n := range d.Nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeNode(&b, n)
	}
	b.WriteByte('\n')

	out := b.String()
	if d.enc != nil {
		var err error
		if out, err = d.enc.NewEncoder().String(out); err != nil {
			return fmt.Errorf("encode resw: %w", err)
		}
	} else if d.bom {
		out = string(bomUTF8) + out
	}

	_, err := io.WriteString(w, out)
	return err
}

// Bytes returns the encoded document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_ = d.Encode(&buf)
	return buf.Bytes()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#xA;",
		"\r", "&#xD;",
		"\t", "&#x9;",
	)
)

func writeNode(b *strings.Builder, n *Node) {
	switch n.Type {
	case TypeText:
		textEscaper.WriteString(b, n.Text)
	case TypeComment:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case TypeInstruction:
		b.WriteString("<?")
		b.WriteString(n.Name)
		if n.Text != "" {
			b.WriteByte(' ')
			b.WriteString(n.Text)
		}
		b.WriteString("?>")
	case TypeDirective:
		b.WriteString("<!")
		b.WriteString(n.Text)
		b.WriteString(">")
	case TypeElement:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attributes {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			attrEscaper.WriteString(b, a.Value)
			b.WriteByte('"')
		}
		if len(n.Elements) == 0 {
			b.WriteString(" />")
			return
		}
		b.WriteByte('>')
		for _, c := range n.Elements {
			writeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Node {
	for _, n := range d.Nodes {
		if n.Type == TypeElement {
			return n
		}
	}
	return nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{Nodes: make([]*Node, len(d.Nodes)), enc: d.enc, bom: d.bom}
	for i, n := range d.Nodes {
		c.Nodes[i] = n.Clone()
	}
	return c
}

// Data returns the root's data elements in document order.
func (d *Document) Data() []*Node {
	root := d.Root()
	if root == nil {
		return nil
	}

	var out []*Node
	for _, n := range root.Elements {
		if n.Type == TypeElement && n.Name == ElemData {
			out = append(out, n)
		}
	}
	return out
}

// Keys returns the name attribute of every data element in document order.
func (d *Document) Keys() []string {
	data := d.Data()
	keys := make([]string, 0, len(data))
	for _, n := range data {
		if name, ok := n.Attr(AttrName); ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// Find returns the first data element named key.
func (d *Document) Find(key string) *Node {
	for _, n := range d.Data() {
		if name, _ := n.Attr(AttrName); name == key {
			return n
		}
	}
	return nil
}

// Has reports whether a data element named key exists.
func (d *Document) Has(key string) bool {
	return d.Find(key) != nil
}

// Value returns the text of key's value element.
func (d *Document) Value(key string) (string, bool) {
	n := d.Find(key)
	if n == nil {
		return "", false
	}
	v := n.Child(ElemValue)
	if v == nil {
		return "", true
	}
	return v.InnerText(), true
}

// SetValue replaces the text of key's value element, creating the value
// element when the data element has none. It reports whether key exists.
func (d *Document) SetValue(key, text string) bool {
	n := d.Find(key)
	if n == nil {
		return false
	}

	v := n.Child(ElemValue)
	if v == nil {
		v = &Node{Type: TypeElement, Name: ElemValue}
		n.Elements = append([]*Node{v}, n.Elements...)
	}
	v.SetInnerText(text)
	return true
}

// NewData builds a data element for key holding text.
func NewData(key, text string) *Node {
	return &Node{
		Type: TypeElement,
		Name: ElemData,
		Attributes: []Attr{
			{Name: AttrName, Value: key},
			{Name: AttrSpace, Value: "preserve"},
		},
		Elements: []*Node{
			{
				Type:     TypeElement,
				Name:     ElemValue,
				Elements: []*Node{{Type: TypeText, Text: text}},
			},
		},
	}
}

// Append adds n as the last child of the root element. When the root is
// indented, n is placed on its own line using the indentation of the
// preceding element and its children are indented one level deeper.
func (d *Document) Append(n *Node) error {
	root := d.Root()
	if root == nil {
		return ErrNoRoot
	}

	children := root.Elements
	if len(children) == 0 || !children[len(children)-1].isWhitespace() {
		root.Elements = append(root.Elements, n)
		return nil
	}

	trailing := children[len(children)-1]
	indent := elementIndent(children)
	if indent == "" {
		root.Elements = append(children[:len(children)-1], n, trailing)
		return nil
	}

	inner := indent + strings.TrimLeft(indent, "\r\n")[:indentUnit(indent)]
	if len(n.Elements) > 0 && !n.Elements[0].isWhitespace() {
		formatted := make([]*Node, 0, len(n.Elements)*2+1)
		for _, c := range n.Elements {
			formatted = append(formatted, &Node{Type: TypeText, Text: inner}, c)
		}
		formatted = append(formatted, &Node{Type: TypeText, Text: indent})
		n.Elements = formatted
	}

	out := make([]*Node, 0, len(children)+2)
	out = append(out, children[:len(children)-1]...)
	out = append(out, &Node{Type: TypeText, Text: indent}, n, trailing)
	root.Elements = out
	return nil
}

// elementIndent returns the whitespace text preceding the last element child.
func elementIndent(children []*Node) string {
	for i := len(children) - 1; i > 0; i-- {
		if children[i].Type == TypeElement {
			if children[i-1].isWhitespace() {
				return children[i-1].Text
			}
			return ""
		}
	}
	return ""
}

// indentUnit guesses one indentation step from an indent string such as
// "\n  " or "\r\n\t".
func indentUnit(indent string) int {
	ws := strings.TrimLeft(indent, "\r\n")
	switch {
	case ws == "":
		return 0
	case ws[0] == '\t':
		return 1
	case len(ws) >= 2:
		return 2
	default:
		return len(ws)
	}
}

// Remove deletes every data element named key together with the whitespace
// preceding it. It returns how many elements were removed.
func (d *Document) Remove(key string) int {
	root := d.Root()
	if root == nil {
		return 0
	}

	removed := 0
	out := make([]*Node, 0, len(root.Elements))
	for _, n := range root.Elements {
		if n.Type == TypeElement && n.Name == ElemData {
			if name, _ := n.Attr(AttrName); name == key {
				if len(out) > 0 && out[len(out)-1].isWhitespace() {
					out = out[:len(out)-1]
				}
				removed++
				continue
			}
		}
		out = append(out, n)
	}
	root.Elements = out
	return removed
}

// Rename changes the name attribute of the first data element named oldKey.
// It reports whether such an element was found.
func (d *Document) Rename(oldKey, newKey string) bool {
	n := d.Find(oldKey)
	if n == nil {
		return false
	}
	n.SetAttr(AttrName, newKey)
	return true
}

// FullKey returns the resource path of key inside filename, the form used by
// ResourceLoader lookups: "/" + base name without ".resw" + "/" + key.
func FullKey(filename, key string) string {
	base := strings.Replace(path.Base(strings.TrimSpace(filename)), ".resw", "", 1)
	return "/" + base + "/" + key
}
