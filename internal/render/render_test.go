package render

import (
	"strings"
	"testing"

	"github.com/fairyhunter13/course-cart-simulator/internal/cart"
	"github.com/fairyhunter13/course-cart-simulator/internal/model"
)

func TestItemsEmpty(t *testing.T) {
	out, err := Items(nil, "USD")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, EmptyMessage) {
		t.Fatalf("expected placeholder, got %s", out)
	}
}

func TestItemsOrderAndFormatting(t *testing.T) {
	items := []model.LineItem{
		cart.NewLineItem("MATH201", model.Selection{SectionID: "2", SectionLabel: "Section 02", Schedule: "Tue 10:00", Credits: "4", Fee: "80.5"}),
		cart.NewLineItem("CS101", model.Selection{SectionID: "1", SectionLabel: "Section 01", Schedule: "Mon 09:00", Credits: "3", Fee: "120"}),
	}
	out, err := Items(items, "USD")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, EmptyMessage) {
		t.Fatalf("placeholder must not render with items")
	}
	i, j := strings.Index(out, "MATH201"), strings.Index(out, "CS101")
	if i < 0 || j < 0 || i > j {
		t.Fatalf("items out of order: %s", out)
	}
	for _, want := range []string{"USD 80.50", "USD 120.00", "4 cr", "Section 02 · Tue 10:00", `data-remove="CS101"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestItemsEscapesValues(t *testing.T) {
	items := []model.LineItem{cart.NewLineItem("X<1>", model.Selection{SectionID: "1", SectionLabel: "<b>x</b>"})}
	out, err := Items(items, "USD")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<b>x</b>") {
		t.Fatalf("label not escaped: %s", out)
	}
}
