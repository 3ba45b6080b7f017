// Package cart holds the in-memory registration cart and its derived totals.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/course-cart-simulator/internal/model"
)

// DefaultCurrency is used when the panel does not configure one.
const DefaultCurrency = "USD"

// Config is the panel configuration, read once at mount time.
type Config struct {
	CreditLimit decimal.Decimal
	Currency    string
}

// NewConfig builds a Config from raw attribute values, substituting defaults.
func NewConfig(creditLimit, currency string) Config {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Config{CreditLimit: ParseAmount(creditLimit), Currency: currency}
}

// Totals are the aggregates derived from the current cart contents.
type Totals struct {
	CreditsUsed      decimal.Decimal
	FeeTotal         decimal.Decimal
	CreditsRemaining decimal.Decimal
}

// Exhausted reports whether no credits remain.
func (t Totals) Exhausted() bool { return !t.CreditsRemaining.IsPositive() }

// Cart maps course codes to line items and keeps display order.
// A Cart is not safe for concurrent use.
type Cart struct {
	order []string
	items map[string]model.LineItem
}

func New() *Cart {
	return &Cart{items: make(map[string]model.LineItem)}
}

// NewLineItem builds a line item from a selection. Numeric fields that are
// missing or malformed become zero.
func NewLineItem(courseCode string, sel model.Selection) model.LineItem {
	return model.LineItem{
		CourseCode:   courseCode,
		CourseTitle:  sel.CourseTitle,
		Credits:      ParseAmount(sel.Credits),
		SectionID:    sel.SectionID,
		SectionLabel: sel.SectionLabel,
		Schedule:     sel.Schedule,
		Fee:          ParseAmount(sel.Fee),
	}
}

// Upsert stores item under its course code. An existing entry for the same
// course is replaced in place and keeps its position.
func (c *Cart) Upsert(item model.LineItem) {
	if _, ok := c.items[item.CourseCode]; !ok {
		c.order = append(c.order, item.CourseCode)
	}
	c.items[item.CourseCode] = item
}

// Remove deletes the entry for code and reports whether one existed.
func (c *Cart) Remove(code string) bool {
	if _, ok := c.items[code]; !ok {
		return false
	}
	delete(c.items, code)
	for i, k := range c.order {
		if k == code {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Cart) Has(code string) bool {
	_, ok := c.items[code]
	return ok
}

func (c *Cart) Get(code string) (model.LineItem, bool) {
	it, ok := c.items[code]
	return it, ok
}

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the line items in display order.
func (c *Cart) Items() []model.LineItem {
	out := make([]model.LineItem, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.items[k])
	}
	return out
}

// Totals computes the aggregates against the given credit limit.
// Remaining credits are clamped at zero.
func (c *Cart) Totals(limit decimal.Decimal) Totals {
	used, fees := decimal.Zero, decimal.Zero
	for _, it := range c.items {
		used = used.Add(it.Credits)
		fees = fees.Add(it.Fee)
	}
	return Totals{
		CreditsUsed:      used,
		FeeTotal:         fees,
		CreditsRemaining: decimal.Max(limit.Sub(used), decimal.Zero),
	}
}

// Summary snapshots the cart with totals and display strings.
func (c *Cart) Summary(cfg Config) model.Summary {
	t := c.Totals(cfg.CreditLimit)
	return model.Summary{
		Items:            c.Items(),
		Currency:         cfg.Currency,
		CreditLimit:      cfg.CreditLimit,
		CreditsUsed:      t.CreditsUsed,
		CreditsRemaining: t.CreditsRemaining,
		FeeTotal:         t.FeeTotal,
		Exhausted:        t.Exhausted(),
		RemainingDisplay: FormatCredits(t.CreditsRemaining),
		FeeDisplay:       FormatCurrency(cfg.Currency, t.FeeTotal),
	}
}
