package reply

import (
	"strings"
	"testing"

	"github.com/nhle/mail-assistant/internal/model"
)

func TestComposeGreeting(t *testing.T) {
	tests := []struct {
		name     string
		category model.Category
		to       string
		wantLine string
	}{
		{"named recipient", model.CategoryBilling, "Jane Doe", "Hi Jane Doe,"},
		{"empty name defaults", model.CategorySupport, "", "Hi there,"},
		{"order template", model.CategoryOrder, "Bob", "Hi Bob,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Compose(tt.category, tt.to)
			if !strings.HasPrefix(body, tt.wantLine) {
				t.Errorf("Compose() = %q, want prefix %q", body, tt.wantLine)
			}
		})
	}
}

func TestComposePerCategoryContent(t *testing.T) {
	tests := []struct {
		category model.Category
		marker   string
	}{
		{model.CategoryBilling, "billing/payment"},
		{model.CategoryOrder, "order status"},
		{model.CategorySupport, "support request"},
		{model.CategoryLead, "scope, timeline, and budget"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			body := Compose(tt.category, "there")
			if !strings.Contains(body, tt.marker) {
				t.Errorf("Compose(%q) missing marker %q in %q",
					tt.category, tt.marker, body)
			}
		})
	}
}

func TestComposeFallback(t *testing.T) {
	generic := Compose(model.CategoryOther, "Ann")

	for _, cat := range []model.Category{
		model.CategoryOther,
		model.CategoryUnclassified,
		model.Category("Something Else"),
	} {
		if got := Compose(cat, "Ann"); got != generic {
			t.Errorf("Compose(%q) = %q, want generic template", cat, got)
		}
	}
}

func TestComposePure(t *testing.T) {
	first := Compose(model.CategoryLead, "Sam")
	for i := 0; i < 5; i++ {
		if got := Compose(model.CategoryLead, "Sam"); got != first {
			t.Fatalf("Compose() not stable: got %q, want %q", got, first)
		}
	}
}

func TestComposeKeepsClosingPlaceholder(t *testing.T) {
	for _, cat := range model.Categories {
		body := Compose(cat, "there")
		if !strings.Contains(body, "[Your Name]") {
			t.Errorf("Compose(%q) missing closing placeholder", cat)
		}
	}
}
