package mailbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/theme"
)

// MessageItem wraps a model.Message so it can be used in a bubbles/list.
type MessageItem struct {
	Message *model.Message
}

// FilterValue returns the string used for fuzzy filtering.
func (i MessageItem) FilterValue() string {
	return i.Message.Subject + " " + i.Message.Sender
}

// Title returns the message subject for the list.
func (i MessageItem) Title() string {
	if i.Message.Subject == "" {
		return "(no subject)"
	}
	return i.Message.Subject
}

// Description returns a short summary line for the list.
func (i MessageItem) Description() string {
	parts := []string{
		i.Message.Sender,
		string(i.Message.Category),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering message rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single message line: replied marker, urgency flag,
// category badge, subject, sender and attachment count.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MessageItem)
	if !ok {
		return
	}

	msg := mi.Message
	isSelected := index == m.Index()

	var prefix string
	if msg.Replied {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	urgentBadge := ""
	if msg.Urgent {
		urgentBadge = theme.UrgentStyle.Render("!") + " "
	}

	categoryBadge := theme.CategoryStyle(string(msg.Category)).
		Render(string(msg.Category))

	attachBadge := ""
	if n := len(msg.Attachments); n > 0 {
		attachBadge = theme.AttachmentStyle.Render(
			fmt.Sprintf(" [%d att]", n),
		)
	}

	sender := msg.Sender
	if sender == "" {
		sender = "(unknown sender)"
	}

	line := fmt.Sprintf(
		"%s %s%s %s | %s%s",
		prefix, urgentBadge, categoryBadge,
		mi.Title(), sender, attachBadge,
	)

	if msg.Replied {
		line = theme.RepliedStyle.Render(line)
	}

	if isSelected {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
	} else {
		fmt.Fprint(w, theme.ListItemStyle.Render(line))
	}
}
