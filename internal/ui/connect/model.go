package connect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/theme"
)

// SubmitMsg carries the completed account form back to the parent.
type SubmitMsg struct {
	Account  model.AccountConfig
	Password string
}

// CancelMsg signals the parent the form was aborted.
type CancelMsg struct{}

// formValues holds the field values huh binds to. It lives behind a
// pointer so every copy of the model shares the same storage; binding
// to fields of a by-value Bubble Tea model would write into a stale
// copy.
type formValues struct {
	address  string
	imapHost string
	imapPort string
	smtpHost string
	smtpPort string
	password string
	tls      bool
}

// Model is the account connection form view.
type Model struct {
	form *huh.Form
	vals *formValues

	connecting bool
	progress   string
	errMsg     string
	spinner    spinner.Model

	width, height int
}

// New creates a new connection form model prefilled from the given
// account settings. The password comes from the keyring when a saved
// one exists, otherwise it is empty.
func New(account model.AccountConfig, password string, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		vals: &formValues{
			address:  account.Address,
			imapHost: account.IMAPHost,
			imapPort: account.IMAPPort,
			smtpHost: account.SMTPHost,
			smtpPort: account.SMTPPort,
			password: password,
			tls:      account.TLS,
		},
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	v := m.vals
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email Address").
				Description("Used as login for both servers").
				Placeholder("user@example.com").
				Value(&v.address).
				Validate(validateAddress),
			huh.NewInput().
				Title("IMAP Host").
				Description("Mail retrieval server hostname").
				Placeholder("imap.example.com").
				Value(&v.imapHost).
				Validate(validateRequired("IMAP Host")),
			huh.NewInput().
				Title("IMAP Port").
				Description("e.g. 993 for TLS, 143 for STARTTLS").
				Placeholder("993").
				Value(&v.imapPort).
				Validate(validatePort),
			huh.NewInput().
				Title("SMTP Host").
				Description("Mail submission server hostname").
				Placeholder("smtp.example.com").
				Value(&v.smtpHost).
				Validate(validateRequired("SMTP Host")),
			huh.NewInput().
				Title("SMTP Port").
				Description("e.g. 465 for TLS, 587 for STARTTLS").
				Placeholder("465").
				Value(&v.smtpPort).
				Validate(validatePort),
			huh.NewInput().
				Title("Password").
				Description("Account password or app password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(validateRequired("Password")),
			huh.NewConfirm().
				Title("Use TLS").
				Description("Implicit TLS; off upgrades via STARTTLS").
				Affirmative("Yes").
				Negative("No").
				Value(&v.tls),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// StartConnecting switches the view into its progress state.
func (m *Model) StartConnecting() tea.Cmd {
	m.connecting = true
	m.errMsg = ""
	m.progress = "Connecting..."
	return m.spinner.Tick
}

// SetProgress updates the progress line shown while connecting.
func (m *Model) SetProgress(status string) {
	m.progress = status
}

// Reset rebuilds the form for re-entry, keeping the current values.
// A huh form that reached a terminal state never accepts input again.
func (m *Model) Reset() tea.Cmd {
	m.connecting = false
	m.errMsg = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetError returns the view to form mode with the failure shown above
// the form. The entered values are kept.
func (m *Model) SetError(errMsg string) tea.Cmd {
	m.connecting = false
	m.errMsg = errMsg
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the connection form view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.connecting {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		v := m.vals
		account := model.AccountConfig{
			Address:  strings.TrimSpace(v.address),
			IMAPHost: strings.TrimSpace(v.imapHost),
			IMAPPort: strings.TrimSpace(v.imapPort),
			SMTPHost: strings.TrimSpace(v.smtpHost),
			SMTPPort: strings.TrimSpace(v.smtpPort),
			TLS:      v.tls,
		}
		password := v.password
		return m, func() tea.Msg {
			return SubmitMsg{Account: account, Password: password}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg {
			return CancelMsg{}
		}
	}

	return m, cmd
}

// View renders the connection form or the in-progress state.
func (m Model) View() string {
	if m.connecting {
		line := fmt.Sprintf("%s %s", m.spinner.View(), m.progress)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(line)
	}

	parts := []string{}
	if m.errMsg != "" {
		parts = append(parts, theme.UrgentStyle.Render(m.errMsg), "")
	}
	parts = append(parts, m.form.View())

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form = m.form.WithWidth(m.formWidth())
}

func validateRequired(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateAddress(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("Email Address is required")
	}
	if !strings.Contains(v, "@") {
		return fmt.Errorf("not a valid email address")
	}
	return nil
}

func validatePort(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("port is required")
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
