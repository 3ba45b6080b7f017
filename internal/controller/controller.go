// Package controller mounts the registration cart on a host page and keeps
// the cart panel in sync with section picker and removal events.
package controller

import (
	"github.com/fairyhunter13/course-cart-simulator/internal/cart"
	"github.com/fairyhunter13/course-cart-simulator/internal/dom"
	"github.com/fairyhunter13/course-cart-simulator/internal/model"
	"github.com/fairyhunter13/course-cart-simulator/internal/obs"
	"github.com/fairyhunter13/course-cart-simulator/internal/render"
)

// Page hooks.
const (
	AttrPanel       = "data-cart-list"
	AttrItems       = "data-cart-items"
	AttrRemaining   = "data-credit-remaining"
	AttrFeeEstimate = "data-fee-estimate"
	AttrRemove      = "data-remove"
	AttrCourseCode  = "data-course-code"
	PickerClass     = "section-picker"
	ExhaustedClass  = "text-danger"
	EventChange     = "change"
	EventClick      = "click"
)

// Event is a page event delivered to the document-level listener.
type Event struct {
	Type   string
	Target *dom.Element
}

// Controller owns one cart bound to one page.
// It is not safe for concurrent use.
type Controller struct {
	doc       *dom.Document
	panel     *dom.Element
	items     *dom.Element
	remaining *dom.Element
	fee       *dom.Element
	cfg       cart.Config
	cart      *cart.Cart
}

// Mount attaches a controller to doc. When the page has no cart panel the
// returned controller is inert and ignores every event.
func Mount(doc *dom.Document) *Controller {
	c := &Controller{doc: doc, cart: cart.New()}
	c.panel = doc.QueryAttr(AttrPanel)
	if c.panel == nil {
		return c
	}
	c.items = c.panel.QueryAttr(AttrItems)
	c.remaining = c.panel.QueryAttr(AttrRemaining)
	c.fee = c.panel.QueryAttr(AttrFeeEstimate)
	c.cfg = cart.NewConfig(c.panel.Data("credits-remaining"), c.panel.Data("currency"))
	c.Render()
	return c
}

// Inert reports whether the page has no cart panel.
func (c *Controller) Inert() bool { return c.panel == nil }

func (c *Controller) Config() cart.Config { return c.cfg }

func (c *Controller) Document() *dom.Document { return c.doc }

// Panel returns the cart panel element, nil when inert.
func (c *Controller) Panel() *dom.Element { return c.panel }

// Dispatch routes a page event by inspecting its target. It reports whether
// the cart changed.
func (c *Controller) Dispatch(ev Event) bool {
	if c.Inert() || ev.Target == nil {
		return false
	}
	switch ev.Type {
	case EventChange:
		if ev.Target.Tag() != "select" || !ev.Target.HasClass(PickerClass) {
			return false
		}
		return c.onChange(ev.Target)
	case EventClick:
		key, ok := ev.Target.Attr(AttrRemove)
		if !ok || key == "" {
			return false
		}
		return c.RemoveItem(key)
	}
	return false
}

func (c *Controller) onChange(picker *dom.Element) bool {
	opt := picker.SelectedOption()
	value := picker.Value()
	if opt == nil || value == "" {
		return c.SelectSection(picker.Data("course-code"), model.Selection{})
	}
	code := picker.Data("course-code")
	if code == "" {
		code = value
	}
	credits := picker.Data("credits")
	if credits == "" {
		credits = opt.Data("credits")
	}
	return c.SelectSection(code, model.Selection{
		SectionID:    value,
		SectionLabel: opt.Data("section-label"),
		Schedule:     opt.Data("schedule"),
		Credits:      credits,
		Fee:          opt.Data("fee"),
		CourseTitle:  picker.Data("course-title"),
	})
}

// SelectSection upserts the chosen section for courseCode, or drops the
// course when sel is the placeholder. It reports whether the cart changed.
func (c *Controller) SelectSection(courseCode string, sel model.Selection) bool {
	if c.Inert() {
		return false
	}
	if sel.Empty() {
		if courseCode == "" || !c.cart.Remove(courseCode) {
			return false
		}
		obs.Logger.Debug("cart_section_cleared", "course_code", courseCode)
		c.Render()
		return true
	}
	prev, replaced := c.cart.Get(courseCode)
	c.cart.Upsert(cart.NewLineItem(courseCode, sel))
	if replaced {
		obs.Logger.Debug("cart_section_switched", "course_code", courseCode, "from", prev.SectionID, "to", sel.SectionID)
	} else {
		obs.Logger.Debug("cart_section_selected", "course_code", courseCode, "section_id", sel.SectionID)
	}
	c.Render()
	return true
}

// RemoveItem drops courseCode from the cart and resets its picker to the
// placeholder. Unknown codes are ignored.
func (c *Controller) RemoveItem(courseCode string) bool {
	if c.Inert() || !c.cart.Remove(courseCode) {
		return false
	}
	if picker := c.Picker(courseCode); picker != nil {
		picker.SetValue("")
	}
	obs.Logger.Debug("cart_item_removed", "course_code", courseCode)
	c.Render()
	return true
}

// Picker finds the section picker governing courseCode.
func (c *Controller) Picker(courseCode string) *dom.Element {
	return c.doc.Query(func(e *dom.Element) bool {
		v, ok := e.Attr(AttrCourseCode)
		return ok && v == courseCode && e.Tag() == "select" && e.HasClass(PickerClass)
	})
}

// RemoveButton finds the rendered removal control for courseCode.
func (c *Controller) RemoveButton(courseCode string) *dom.Element {
	if c.Inert() {
		return nil
	}
	return c.panel.Query(dom.AttrEquals(AttrRemove, courseCode))
}

// Render replaces the panel's rendered output with the current cart state.
// Missing regions are skipped.
func (c *Controller) Render() {
	if c.Inert() {
		return
	}
	t := c.cart.Totals(c.cfg.CreditLimit)
	if c.items != nil {
		frag, err := render.Items(c.cart.Items(), c.cfg.Currency)
		if err == nil {
			err = c.items.SetInnerHTML(frag)
		}
		if err != nil {
			obs.Logger.Warn("cart_render_failed", "error", err)
		}
	}
	if c.remaining != nil {
		c.remaining.SetText(cart.FormatCredits(t.CreditsRemaining))
		c.remaining.ToggleClass(ExhaustedClass, t.Exhausted())
	}
	if c.fee != nil {
		c.fee.SetText(cart.FormatCurrency(c.cfg.Currency, t.FeeTotal))
	}
}

// Summary snapshots the cart and totals.
func (c *Controller) Summary() model.Summary {
	return c.cart.Summary(c.cfg)
}
