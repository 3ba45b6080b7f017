// Package render produces the cart panel's item list markup.
package render

import (
	"html/template"
	"strings"

	"github.com/fairyhunter13/course-cart-simulator/internal/cart"
	"github.com/fairyhunter13/course-cart-simulator/internal/model"
)

// EmptyMessage is shown when no sections are selected.
const EmptyMessage = "Select a section to start."

var itemsTmpl = template.Must(template.New("items").Parse(
	`{{if not .Items}}<p class="text-muted small mb-0">` + EmptyMessage + `</p>{{else}}{{range .Items}}` +
		`<div class="cart-item" data-key="{{.Code}}">` +
		`<div class="d-flex justify-content-between">` +
		`<div><strong>{{.Code}}</strong><p class="mb-0 text-muted small">{{.SectionLabel}} · {{.Schedule}}</p></div>` +
		`<div class="text-end"><p class="mb-0">{{.Credits}} cr</p><p class="mb-0 text-muted small">{{.Fee}}</p></div>` +
		`</div>` +
		`<button type="button" class="btn btn-link btn-sm text-danger p-0 mt-2" data-remove="{{.Code}}">Remove</button>` +
		`</div>{{end}}{{end}}`))

type itemView struct {
	Code         string
	SectionLabel string
	Schedule     string
	Credits      string
	Fee          string
}

// Items renders one entry per line item in the given order, or the empty
// placeholder when there are none.
func Items(items []model.LineItem, currency string) (string, error) {
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		views = append(views, itemView{
			Code:         it.CourseCode,
			SectionLabel: it.SectionLabel,
			Schedule:     it.Schedule,
			Credits:      it.Credits.String(),
			Fee:          cart.FormatCurrency(currency, it.Fee),
		})
	}
	var b strings.Builder
	if err := itemsTmpl.Execute(&b, struct{ Items []itemView }{views}); err != nil {
		return "", err
	}
	return b.String(), nil
}
