package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Options returns the option elements of a select, in order.
func (e *Element) Options() []*Element {
	var out []*Element
	walk(e.n, func(n *html.Node) bool {
		if n.Data == "option" {
			out = append(out, &Element{n: n})
		}
		return true
	})
	return out
}

// SelectedOption follows browser rules for a single select: the last option
// marked selected, otherwise the first option, otherwise nil.
func (e *Element) SelectedOption() *Element {
	opts := e.Options()
	for i := len(opts) - 1; i >= 0; i-- {
		if _, ok := opts[i].Attr("selected"); ok {
			return opts[i]
		}
	}
	if len(opts) == 0 {
		return nil
	}
	return opts[0]
}

// OptionValue returns an option's value attribute, falling back to its text.
func (e *Element) OptionValue() string {
	if v, ok := e.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(e.Text())
}

// Value returns the value of the selected option.
func (e *Element) Value() string {
	if o := e.SelectedOption(); o != nil {
		return o.OptionValue()
	}
	return ""
}

// SetValue selects the first option whose value is v and deselects the
// rest. It reports whether an option matched.
func (e *Element) SetValue(v string) bool {
	matched := false
	for _, o := range e.Options() {
		if !matched && o.OptionValue() == v {
			o.SetAttr("selected", "")
			matched = true
			continue
		}
		o.RemoveAttr("selected")
	}
	return matched
}
