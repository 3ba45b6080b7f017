// Package model defines domain types used by the service.
package model

import "github.com/shopspring/decimal"

// LineItem is one course's currently selected section.
type LineItem struct {
	CourseCode   string          `json:"course_code"`
	CourseTitle  string          `json:"course_title"`
	Credits      decimal.Decimal `json:"credits"`
	SectionID    string          `json:"section_id"`
	SectionLabel string          `json:"section_label"`
	Schedule     string          `json:"schedule"`
	Fee          decimal.Decimal `json:"fee"`
}

// Selection carries the raw attributes of a chosen section option.
// An empty SectionID is the placeholder option ("no section chosen").
type Selection struct {
	SectionID    string
	SectionLabel string
	Schedule     string
	Credits      string
	Fee          string
	CourseTitle  string
}

// Empty reports whether the selection is the placeholder.
func (s Selection) Empty() bool { return s.SectionID == "" }

// Summary is a read-only snapshot of the cart and its derived totals.
type Summary struct {
	Items            []LineItem      `json:"items"`
	Currency         string          `json:"currency"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	CreditsUsed      decimal.Decimal `json:"credits_used"`
	CreditsRemaining decimal.Decimal `json:"credits_remaining"`
	FeeTotal         decimal.Decimal `json:"fee_total"`
	Exhausted        bool            `json:"exhausted"`
	RemainingDisplay string          `json:"remaining_display"`
	FeeDisplay       string          `json:"fee_display"`
}
