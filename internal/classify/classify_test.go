package classify

import (
	"testing"

	"github.com/nhle/mail-assistant/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		body       string
		wantCat    model.Category
		wantUrgent bool
	}{
		{
			name:    "billing keyword in subject",
			subject: "Invoice #102 overdue",
			wantCat: model.CategoryBilling,
		},
		{
			name:    "order keyword in body",
			subject: "Question",
			body:    "My order hasn't shipped",
			wantCat: model.CategoryOrder,
		},
		{
			name:    "support keyword",
			subject: "Can you fix this bug?",
			wantCat: model.CategorySupport,
		},
		{
			name:    "lead keyword",
			subject: "Request for a quote",
			body:    "We would like pricing for a project.",
			wantCat: model.CategoryLead,
		},
		{
			name:    "no keywords",
			subject: "Lunch on Friday?",
			body:    "See you then.",
			wantCat: model.CategoryOther,
		},
		{
			name:       "urgent without category",
			subject:    "URGENT: call me back",
			wantCat:    model.CategoryOther,
			wantUrgent: true,
		},
		{
			name:       "urgent keyword is case-insensitive",
			subject:    "please respond ASAP",
			wantCat:    model.CategoryOther,
			wantUrgent: true,
		},
		{
			name:       "billing wins over urgency keyword",
			subject:    "urgent invoice",
			wantCat:    model.CategoryBilling,
			wantUrgent: true,
		},
		{
			name:    "empty subject and body",
			wantCat: model.CategoryOther,
		},
		{
			name:    "multi-word support keyword",
			body:    "the login page is not working",
			wantCat: model.CategorySupport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, urgent := Classify(tt.subject, tt.body)
			if cat != tt.wantCat {
				t.Errorf("Classify() category = %q, want %q", cat, tt.wantCat)
			}
			if urgent != tt.wantUrgent {
				t.Errorf("Classify() urgent = %v, want %v", urgent, tt.wantUrgent)
			}
		})
	}
}

// TestClassifyPriority exercises conflicting inputs: when a text
// matches several keyword sets, the earliest-listed set wins.
func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Category
	}{
		{"billing beats order", "invoice for your order", model.CategoryBilling},
		{"billing beats support", "billing error", model.CategoryBilling},
		{"billing beats lead", "payment for the project", model.CategoryBilling},
		{"order beats support", "order tracking problem", model.CategoryOrder},
		{"order beats lead", "purchase proposal", model.CategoryOrder},
		{"support beats lead", "help with our project", model.CategorySupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, _ := Classify(tt.text, "")
			if cat != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, cat, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	subject := "URGENT invoice overdue"
	body := "please pay immediately"

	firstCat, firstUrgent := Classify(subject, body)
	for i := 0; i < 10; i++ {
		cat, urgent := Classify(subject, body)
		if cat != firstCat || urgent != firstUrgent {
			t.Fatalf("Classify() not deterministic: got (%q, %v), want (%q, %v)",
				cat, urgent, firstCat, firstUrgent)
		}
	}
}
