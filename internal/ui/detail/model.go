package detail

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-assistant/internal/keys"
	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/theme"
)

// BackMsg signals the parent to navigate back to the inbox view.
type BackMsg struct{}

// ReplyMsg signals the parent to send a reply to the shown message.
type ReplyMsg struct {
	ID string
}

// Model is the message detail view component.
type Model struct {
	msg      *model.Message
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetMessage sets the message to display and scrolls back to the top.
func (m *Model) SetMessage(msg *model.Message) {
	m.msg = msg
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(keyMsg, m.keys.Reply):
			if m.msg != nil {
				id := m.msg.ID
				return m, func() tea.Msg {
					return ReplyMsg{ID: id}
				}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.msg == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No message selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.msg == nil {
		return ""
	}

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorGray)

	var b strings.Builder

	subject := m.msg.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(subject)
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("From: "))
	b.WriteString(m.msg.Sender)
	b.WriteString("\n")

	if m.msg.Date != "" {
		b.WriteString(labelStyle.Render("Date: "))
		b.WriteString(m.msg.Date)
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Category: "))
	b.WriteString(
		theme.CategoryStyle(string(m.msg.Category)).
			Render(string(m.msg.Category)),
	)
	if m.msg.Urgent {
		b.WriteString(" ")
		b.WriteString(theme.UrgentStyle.Render("URGENT"))
	}
	b.WriteString("\n")

	if m.msg.Replied {
		b.WriteString(labelStyle.Render("Replied: "))
		b.WriteString("yes")
		b.WriteString("\n")
	}

	if len(m.msg.Attachments) > 0 {
		b.WriteString(labelStyle.Render(
			fmt.Sprintf("Attachments (%d):", len(m.msg.Attachments)),
		))
		b.WriteString("\n")
		for _, path := range m.msg.Attachments {
			b.WriteString("  ")
			b.WriteString(theme.AttachmentStyle.Render(
				filepath.Base(path),
			))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	body := m.msg.Body
	if body == "" {
		body = theme.HelpStyle.Render("(no plaintext body)")
	}
	b.WriteString(body)

	return b.String()
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.msg != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
