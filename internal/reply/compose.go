// Package reply builds templated reply bodies for classified messages.
package reply

import (
	"strings"

	"github.com/nhle/mail-assistant/internal/model"
)

// Each template has two substitution points: the greeting name and a
// literal "[Your Name]" closing placeholder that the sender fills in
// themselves. The placeholder is not resolved here.
var templates = map[model.Category]string{
	model.CategoryBilling: `Hi %NAME%,

Thank you for your message about billing/payment. We have received your request and will review the details shortly.

If this is about a specific invoice, please include the invoice number or date.

Best regards,
[Your Name]
`,
	model.CategoryOrder: `Hi %NAME%,

Thank you for contacting us about your order.

We will check the order status and get back to you. If you have an order ID or tracking number, please include it.

Best regards,
[Your Name]
`,
	model.CategorySupport: `Hi %NAME%,

Thank you for reaching out! We have received your support request.

We will review the issue and respond with an update as soon as possible.

Best regards,
[Your Name]
`,
	model.CategoryLead: `Hi %NAME%,

Thank you for your interest!

Please share some details about your requirement (scope, timeline, and budget) so we can suggest the best next steps.

Best regards,
[Your Name]
`,
}

// genericTemplate is the fallback for CategoryOther, unclassified
// messages and any unknown label.
const genericTemplate = `Hi %NAME%,

Thank you for your email. We have received your message and will look into it shortly.

Best regards,
[Your Name]
`

// Compose returns the reply body for a category, greeting the given
// recipient name. An empty name defaults to "there". Compose is a
// lookup, not a generator: identical inputs always yield byte-identical
// output.
func Compose(category model.Category, name string) string {
	if name == "" {
		name = "there"
	}

	tpl, ok := templates[category]
	if !ok {
		tpl = genericTemplate
	}

	return strings.ReplaceAll(tpl, "%NAME%", name)
}
