// Package classify assigns a business category and an urgency flag to
// a message based on fixed keyword sets.
package classify

import (
	"strings"

	"github.com/nhle/mail-assistant/internal/model"
)

// Keyword sets, checked in strict priority order. A text matching more
// than one set gets the category of the earliest-listed set.
var (
	billingKeywords = []string{
		"invoice", "payment", "bill", "billing", "due", "overdue",
	}
	orderKeywords = []string{
		"order", "shipment", "tracking", "delivery", "purchase",
	}
	supportKeywords = []string{
		"issue", "error", "bug", "problem", "support", "help",
		"not working", "failed",
	}
	leadKeywords = []string{
		"quote", "pricing", "project", "proposal", "hire",
		"collaboration", "work with you", "service",
	}
	urgentKeywords = []string{
		"urgent", "asap", "immediately", "critical", "important",
	}
)

// priority pairs each keyword set with its category, in match order.
var priority = []struct {
	keywords []string
	category model.Category
}{
	{billingKeywords, model.CategoryBilling},
	{orderKeywords, model.CategoryOrder},
	{supportKeywords, model.CategorySupport},
	{leadKeywords, model.CategoryLead},
}

// Classify maps a message's subject and body to a category and an
// urgency flag. It is a pure function of its inputs: the subject and
// body are joined with a single space, lower-cased, and tested for
// substring membership against the keyword sets. Urgency is derived
// independently of which category matched.
func Classify(subject, body string) (model.Category, bool) {
	text := strings.ToLower(subject + " " + body)

	category := model.CategoryOther
	for _, p := range priority {
		if containsAny(text, p.keywords) {
			category = p.category
			break
		}
	}

	return category, containsAny(text, urgentKeywords)
}

// containsAny reports whether text contains any of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
