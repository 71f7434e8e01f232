package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zalmoxes-laran/s3dgraphy/errs"
)

// Element is a generic XML element tree node, the same shape the
// teacher's apoc/xml package uses for APOC's xml.parse (Name,
// Attributes, Text, Children), extended here with an ordered attribute
// list instead of a map so that re-serializing a parsed document during
// slipback preserves attribute order, and with a Parent back-pointer so
// passes that need to walk up the tree (locating a node's owning
// <graph>, for instance) don't need to carry their own stack.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*Element
	Parent   *Element
}

// Attr returns the value of attribute name and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr updates attribute name in place if present, else appends it.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.Attrs {
		if a.Name.Local == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// Find returns the first direct child named name.
func (e *Element) Find(name string) (*Element, bool) {
	for _, c := range e.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// FindAll returns every direct child named name.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Walk calls fn for e and every descendant, depth-first pre-order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindDeep returns the first element named name in a depth-first walk
// that starts at e itself (so e matches when it carries that name),
// mirroring the original's ElementTree ".//name" lookups.
func (e *Element) FindDeep(name string) (*Element, bool) {
	var found *Element
	e.Walk(func(c *Element) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	if found == nil {
		return nil, false
	}
	return found, true
}

// FindAllDeep returns every descendant (at any depth) named name, in
// document order, mirroring ".//name" lookups that expect multiple
// matches.
func (e *Element) FindAllDeep(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(d *Element) {
			if d.Name == name {
				out = append(out, d)
			}
		})
	}
	return out
}

// ParseFile parses a GraphML (or any well-formed XML) document from
// path into an Element tree rooted at the document's single top-level
// element.
func ParseFile(path string) (*Element, error) {
	const op = "graphml.ParseFile"

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.NotFound, op, err)
		}
		return nil, errs.New(errs.IOError, op, err)
	}
	root, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, errs.New(errs.ParseError, op, err)
	}
	return root, nil
}

// Parse decodes XML from r into an Element tree, discarding the
// synthetic document root the decoder implies and returning the single
// top-level element.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	root := &Element{Name: "#document"}
	stack := []*Element{root}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{Name: t.Name.Local, Attrs: append([]xml.Attr(nil), t.Attr...)}
			parent := stack[len(stack)-1]
			elem.Parent = parent
			parent.Children = append(parent.Children, elem)
			stack = append(stack, elem)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text != "" {
				cur := stack[len(stack)-1]
				if cur.Text == "" {
					cur.Text = text
				} else {
					cur.Text += text
				}
			}
		}
	}

	if len(root.Children) != 1 {
		return nil, fmt.Errorf("graphml: expected exactly one top-level element, found %d", len(root.Children))
	}
	top := root.Children[0]
	top.Parent = nil
	return top, nil
}

// Write serializes e (and its descendants) to w as XML with a standard
// declaration, the inverse of Parse. Unlike the teacher's apoc/xml,
// which only ever reads, this half is needed for slipback: rewriting
// the adopted identifiers back into the source file in place.
func Write(w io.Writer, e *Element) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := writeElement(enc, e); err != nil {
		return err
	}
	return enc.Flush()
}

func writeElement(enc *xml.Encoder, e *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}, Attr: e.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := writeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}
