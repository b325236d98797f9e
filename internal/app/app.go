package app

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-assistant/internal/credential"
	"github.com/nhle/mail-assistant/internal/keys"
	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/replylog"
	"github.com/nhle/mail-assistant/internal/sched"
	"github.com/nhle/mail-assistant/internal/session"
	"github.com/nhle/mail-assistant/internal/store"
	"github.com/nhle/mail-assistant/internal/ui"
	"github.com/nhle/mail-assistant/internal/ui/connect"
	"github.com/nhle/mail-assistant/internal/ui/detail"
	helpview "github.com/nhle/mail-assistant/internal/ui/help"
	"github.com/nhle/mail-assistant/internal/ui/mailbox"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewConnect ViewState = iota
	ViewInbox
	ViewDetail
	ViewHelp
)

// runtime holds the state shared between the UI goroutine, the async
// command goroutines and the auto-check scheduler. Operations on the
// session are serialized through mu.
type runtime struct {
	mu   sync.Mutex
	sess *session.Session
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and the mail session lifecycle.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	cfg     *model.AppConfig
	cfgPath string
	store   *store.SQLiteStore
	log     *replylog.Writer
	rt      *runtime

	connectView connect.Model
	inbox       mailbox.Model
	detail      detail.Model
	helpView    helpview.Model

	scheduler *sched.Scheduler
	events    chan tea.Msg

	connected   bool
	accountAddr string

	busy      bool
	statusMsg string
	ready     bool
}

// New creates the root application model. The connection form is
// prefilled from the config file, falling back to the most recently
// used stored profile, and the saved password when the keyring holds
// one for that address.
func New(cfg *model.AppConfig, cfgPath string, s *store.SQLiteStore) Model {
	k := keys.DefaultKeyMap()
	events := make(chan tea.Msg, 16)
	rt := &runtime{}

	account := cfg.Account
	if account.Address == "" && s != nil {
		if profiles, err := s.GetProfiles(context.Background()); err == nil &&
			len(profiles) > 0 {
			account = profiles[0].AccountConfig()
		}
	}

	password := ""
	if account.Address != "" {
		if saved, err := credential.Get(account.Address); err == nil {
			password = saved
		}
	}

	logWriter := replylog.NewWriter(cfg.LogDir)

	m := Model{
		currentView: ViewConnect,
		keys:        k,
		cfg:         cfg,
		cfgPath:     cfgPath,
		store:       s,
		log:         logWriter,
		rt:          rt,
		connectView: connect.New(account, password, 80, 24),
		inbox:       mailbox.New(k, 80, 24),
		detail:      detail.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		events:      events,
	}
	m.scheduler = sched.New(newAutoCycle(rt, cfg, events))
	return m
}

// Init starts the connection form and the event listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.connectView.Init(), m.waitEvent())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.connectView.SetSize(contentWidth, contentHeight)
		m.inbox.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case connect.SubmitMsg:
		m.busy = true
		m.statusMsg = ""
		startCmd := m.connectView.StartConnecting()
		return m, tea.Batch(
			startCmd,
			m.connectCmd(msg.Account, msg.Password),
		)

	case connect.CancelMsg:
		// Nothing to fall back to without a session.
		if !m.connected {
			return m, m.quit()
		}
		m.currentView = ViewInbox
		return m, nil

	case connectResultMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.connectView.SetError(msg.err.Error())
		}
		old := m.swapSession(msg.sess)
		if old != nil {
			_ = old.Close()
		}
		m.connected = true
		m.accountAddr = msg.sess.Account().Address
		m.currentView = ViewInbox
		m.statusMsg = "Connected as " + msg.sess.Account().Address
		return m, tea.Batch(
			m.saveAccount(msg.sess.Account()),
			m.inbox.SetMessages(nil),
		)

	case progressEventMsg:
		m.connectView.SetProgress(msg.status)
		m.statusMsg = msg.status
		return m, m.waitEvent()

	case autoCycleEventMsg:
		if msg.err != nil {
			m.statusMsg = "Auto-check failed: " + msg.err.Error()
			return m, m.waitEvent()
		}
		m.statusMsg = fmt.Sprintf(
			"Auto-check: %d messages classified", msg.fetched,
		)
		return m, tea.Batch(
			m.waitEvent(),
			m.inbox.SetMessages(m.sessionMessages()),
		)

	case fetchResultMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = "Fetch failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Fetched %d messages", msg.count)
		if msg.skipped > 0 {
			m.statusMsg += fmt.Sprintf(" (%d skipped)", msg.skipped)
		}
		return m, m.inbox.SetMessages(m.sessionMessages())

	case replyResultMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = "Reply failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Reply sent"
		}
		if sel := m.findMessage(msg.id); sel != nil {
			m.detail.SetMessage(sel)
		}
		return m, m.inbox.Refresh()

	case replyAllResultMsg:
		m.busy = false
		m.statusMsg = fmt.Sprintf(
			"Replies sent: %d, failed: %d", msg.sent, msg.failed,
		)
		return m, m.inbox.Refresh()

	case reportResultMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMsg = "Report failed: " + msg.err.Error()
		} else {
			m.statusMsg = "Report written to " + msg.path
		}
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.statusMsg = "Saving account failed: " + msg.err.Error()
		}
		return m, nil

	case mailbox.SelectedMessageMsg:
		if sel := m.findMessage(msg.ID); sel != nil {
			m.previousView = m.currentView
			m.currentView = ViewDetail
			m.detail.SetMessage(sel)
		}
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewInbox
		return m, nil

	case detail.ReplyMsg:
		return m.startReply(msg.ID)

	case tea.KeyMsg:
		if mdl, cmd, handled := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that apply across views. The third
// return value reports whether the key was consumed.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	// The connect form owns all key input while visible.
	if m.currentView == ViewConnect {
		return m, nil, false
	}
	if m.inbox.Searching() && m.currentView == ViewInbox {
		return m, nil, false
	}

	switch msg.String() {
	case "ctrl+c":
		return m, m.quit(), true

	case "q":
		return m, m.quit(), true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil, true

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case "f":
		if m.currentView == ViewInbox && !m.busy {
			m.busy = true
			m.statusMsg = "Fetching..."
			return m, m.fetchCmd(m.cfg.FetchLimit), true
		}
		return m, nil, true

	case "c":
		if m.currentView == ViewInbox {
			m.classifyAll()
			m.statusMsg = "Classified"
			return m, m.inbox.Refresh(), true
		}
		return m, nil, false

	case "r":
		if m.currentView == ViewInbox && !m.busy {
			if sel := m.inbox.SelectedMessage(); sel != nil {
				mdl, cmd := m.startReply(sel.ID)
				return mdl, cmd, true
			}
			return m, nil, true
		}
		return m, nil, false

	case "R":
		if m.currentView == ViewInbox && !m.busy {
			m.busy = true
			m.statusMsg = "Replying to all unreplied..."
			return m, m.replyAllCmd(), true
		}
		return m, nil, true

	case "g":
		if !m.busy {
			m.busy = true
			m.statusMsg = "Generating report..."
			return m, m.reportCmd(), true
		}
		return m, nil, true

	case "t":
		if m.scheduler.Enabled() {
			m.scheduler.Disable()
			m.statusMsg = "Auto-check off"
		} else {
			m.scheduler.Enable(m.cfg.AutoCheck.IntervalMin)
			m.statusMsg = fmt.Sprintf(
				"Auto-check on (%s)", m.scheduler.Interval(),
			)
		}
		return m, nil, true

	case "o":
		if m.currentView == ViewInbox {
			m.previousView = m.currentView
			m.currentView = ViewConnect
			return m, m.connectView.Reset(), true
		}
		return m, nil, false
	}

	return m, nil, false
}

// startReply kicks off an async reply to the message with the given ID.
func (m Model) startReply(id string) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	sel := m.findMessage(id)
	if sel == nil {
		return m, nil
	}
	if sel.Replied {
		m.statusMsg = "Already replied"
		return m, nil
	}
	m.busy = true
	m.statusMsg = "Sending reply..."
	return m, m.replyCmd(id)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewConnect:
		m.connectView, cmd = m.connectView.Update(msg)
	case ViewInbox:
		m.inbox, cmd = m.inbox.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Mail Assistant", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewConnect:
		return m.connectView.View()
	case ViewInbox:
		return m.inbox.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	}
	return ""
}

// headerStatus builds the right-hand side of the header bar.
func (m Model) headerStatus() string {
	if !m.connected {
		return "not connected"
	}
	status := m.accountAddr
	if m.scheduler.Enabled() {
		status += fmt.Sprintf(" | auto %s", m.scheduler.Interval())
	}
	return status
}

// statusHints builds the bottom status bar. A transient status message
// takes precedence over the key hints.
func (m Model) statusHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	switch m.currentView {
	case ViewConnect:
		return "enter: submit | esc: cancel"
	case ViewDetail:
		return "r: reply | esc: back | q: quit"
	case ViewHelp:
		return "esc: close help"
	default:
		return "f: fetch | c: classify | r: reply | R: reply all | " +
			"g: report | t: auto-check | ?: help | q: quit"
	}
}

// quit tears down the scheduler and the session before exiting.
func (m Model) quit() tea.Cmd {
	m.scheduler.Disable()
	if old := m.swapSession(nil); old != nil {
		_ = old.Close()
	}
	return tea.Quit
}

// swapSession installs a new session and returns the previous one.
func (m Model) swapSession(s *session.Session) *session.Session {
	m.rt.mu.Lock()
	defer m.rt.mu.Unlock()
	old := m.rt.sess
	m.rt.sess = s
	return old
}

// sessionMessages returns the current message set, or nil without a
// session.
func (m Model) sessionMessages() []*model.Message {
	m.rt.mu.Lock()
	defer m.rt.mu.Unlock()
	if m.rt.sess == nil {
		return nil
	}
	return m.rt.sess.Messages()
}

// findMessage looks a message up by its ID in the current set.
func (m Model) findMessage(id string) *model.Message {
	for _, msg := range m.sessionMessages() {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// classifyAll runs the classifier over the held message set.
func (m Model) classifyAll() {
	m.rt.mu.Lock()
	defer m.rt.mu.Unlock()
	if m.rt.sess != nil {
		m.rt.sess.ClassifyAll()
	}
}
