// Package dom is a small document tree for the host registration page.
//
// It wraps golang.org/x/net/html nodes with the handful of operations the
// cart panel needs: attribute and class queries, data attributes, select
// control values and full replacement of an element's content.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Element is an element node inside a Document.
type Element struct {
	n *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Render serialises the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String serialises the document, returning "" on failure.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Query returns the first element in document order matching pred.
func (d *Document) Query(pred func(*Element) bool) *Element {
	return find(d.root, pred)
}

// queryAll returns every element matching pred in document order.
func (d *Document) queryAll(pred func(*Element) bool) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if e := (&Element{n: n}); pred(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// QueryAttr returns the first element carrying attribute name.
func (d *Document) QueryAttr(name string) *Element {
	return d.Query(HasAttr(name))
}

// QueryAttrValue returns the first element whose attribute name equals value.
func (d *Document) QueryAttrValue(name, value string) *Element {
	return d.Query(AttrEquals(name, value))
}

// HasAttr matches elements carrying attribute name.
func HasAttr(name string) func(*Element) bool {
	return func(e *Element) bool {
		_, ok := e.Attr(name)
		return ok
	}
}

// AttrEquals matches elements whose attribute name equals value.
func AttrEquals(name, value string) func(*Element) bool {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

func walk(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !fn(c) {
			return false
		}
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func find(root *html.Node, pred func(*Element) bool) *Element {
	var found *Element
	walk(root, func(n *html.Node) bool {
		if e := (&Element{n: n}); pred(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.n.Data }

// Attr returns the value of attribute name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Data returns the data-<key> attribute, or "" when absent.
func (e *Element) Data(key string) string {
	v, _ := e.Attr("data-" + key)
	return v
}

// SetAttr sets or replaces attribute name.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes attribute name if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.n.Attr = attrs
}

// Query searches the element's subtree.
func (e *Element) Query(pred func(*Element) bool) *Element {
	return find(e.n, pred)
}

// QueryAttr returns the first descendant carrying attribute name.
func (e *Element) QueryAttr(name string) *Element {
	return e.Query(HasAttr(name))
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	e.SetAttr("class", strings.Join(append(e.Classes(), class), " "))
}

func (e *Element) RemoveClass(class string) {
	if !e.HasClass(class) {
		return
	}
	var keep []string
	for _, c := range e.Classes() {
		if c != class {
			keep = append(keep, c)
		}
	}
	e.SetAttr("class", strings.Join(keep, " "))
}

// ToggleClass adds class when on is true and removes it otherwise.
func (e *Element) ToggleClass(class string, on bool) {
	if on {
		e.AddClass(class)
		return
	}
	e.RemoveClass(class)
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
			collect(c)
		}
	}
	collect(e.n)
	return b.String()
}

func (e *Element) clear() {
	for c := e.n.FirstChild; c != nil; c = e.n.FirstChild {
		e.n.RemoveChild(c)
	}
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(s string) {
	e.clear()
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// SetInnerHTML replaces all children with the parsed fragment.
func (e *Element) SetInnerHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	e.clear()
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// OuterHTML serialises the element and its subtree.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	if err := html.Render(&b, e.n); err != nil {
		return ""
	}
	return b.String()
}
