package mailbox

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-assistant/internal/keys"
	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/theme"
)

// SelectedMessageMsg is sent when the user opens a message.
type SelectedMessageMsg struct {
	ID string
}

// Model is the inbox list view component. The message set is pushed in
// by the parent after each fetch; the view holds no connection of its
// own.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	messages    []*model.Message
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new inbox list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Inbox"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search subject or sender..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command for the inbox view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetMessages replaces the displayed message set and reapplies any
// active search query.
func (m *Model) SetMessages(msgs []*model.Message) tea.Cmd {
	m.messages = msgs
	return m.applyQuery()
}

// Refresh re-renders the current message set, picking up in-place
// category and replied-state changes.
func (m *Model) Refresh() tea.Cmd {
	return m.applyQuery()
}

// Searching reports whether the search input currently owns key input.
func (m Model) Searching() bool {
	return m.searchMode
}

// SelectedMessage returns the message under the cursor, or nil when
// the list is empty.
func (m Model) SelectedMessage() *model.Message {
	item, ok := m.list.SelectedItem().(MessageItem)
	if !ok {
		return nil
	}
	return item.Message
}

// applyQuery rebuilds the list items from the message set, keeping
// only those matching the search query.
func (m *Model) applyQuery() tea.Cmd {
	q := strings.ToLower(m.query)
	var items []list.Item
	for _, msg := range m.messages {
		if q != "" {
			hay := strings.ToLower(msg.Subject + " " + msg.Sender)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		items = append(items, MessageItem{Message: msg})
	}
	return m.list.SetItems(items)
}

// Update handles messages for the inbox view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(keyMsg)
		}
		return m.handleNormalKeys(keyMsg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		return m, m.applyQuery()

	case "esc":
		m.searchMode = false
		m.searchInput.SetValue(m.query)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal list mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Select):
		if sel := m.SelectedMessage(); sel != nil {
			id := sel.ID
			return m, func() tea.Msg {
				return SelectedMessageMsg{ID: id}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the inbox view.
func (m Model) View() string {
	if len(m.messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render(
			"No messages. Press f to fetch mail.",
		)
	}

	if m.searchMode {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.searchInput.View(),
			m.list.View(),
		)
	}
	return m.list.View()
}

// SetSize updates the inbox view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
