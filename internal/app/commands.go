package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-assistant/internal/credential"
	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/sched"
	"github.com/nhle/mail-assistant/internal/session"
)

// connectResultMsg carries the outcome of an async connect attempt.
type connectResultMsg struct {
	sess *session.Session
	err  error
}

// fetchResultMsg carries the outcome of an async fetch.
type fetchResultMsg struct {
	count   int
	skipped int
	err     error
}

// replyResultMsg carries the outcome of a single async reply.
type replyResultMsg struct {
	id  string
	err error
}

// replyAllResultMsg carries the outcome of a bulk reply pass.
type replyAllResultMsg struct {
	sent   int
	failed int
}

// reportResultMsg carries the outcome of PDF report generation.
type reportResultMsg struct {
	path string
	err  error
}

// profileSavedMsg carries the outcome of persisting account settings.
type profileSavedMsg struct {
	err error
}

// progressEventMsg relays connect/fetch progress from a worker
// goroutine into the UI loop.
type progressEventMsg struct {
	fraction float64
	status   string
}

// autoCycleEventMsg relays the outcome of one unattended auto-check
// cycle into the UI loop.
type autoCycleEventMsg struct {
	fetched int
	err     error
}

// pushEvent delivers an event without ever blocking the producer; a
// full buffer drops the event rather than stalling a mail operation.
func pushEvent(events chan tea.Msg, msg tea.Msg) {
	select {
	case events <- msg:
	default:
	}
}

// waitEvent blocks until a worker goroutine publishes an event. The
// Update loop re-arms it after consuming each event.
func (m Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

// sessionOptions assembles the collaborator set for a new session.
func (m Model) sessionOptions() session.Options {
	events := m.events
	return session.Options{
		Log:       m.log,
		AttachDir: m.cfg.AttachDir,
		Secrets:   credential.Store{},
		Progress: func(fraction float64, status string) {
			pushEvent(events, progressEventMsg{
				fraction: fraction,
				status:   status,
			})
		},
	}
}

// connectCmd dials both mail servers off the UI goroutine. It touches
// no shared state; the resulting session is installed by Update.
func (m Model) connectCmd(account model.AccountConfig, password string) tea.Cmd {
	opts := m.sessionOptions()
	return func() tea.Msg {
		sess, err := session.Connect(
			context.Background(), account, password, opts,
		)
		return connectResultMsg{sess: sess, err: err}
	}
}

// fetchCmd downloads the most recent messages off the UI goroutine.
func (m Model) fetchCmd(limit int) tea.Cmd {
	rt := m.rt
	return func() tea.Msg {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		if rt.sess == nil {
			return fetchResultMsg{err: fmt.Errorf("not connected")}
		}
		msgs, diags, err := rt.sess.Fetch(context.Background(), limit)
		return fetchResultMsg{
			count:   len(msgs),
			skipped: len(diags),
			err:     err,
		}
	}
}

// replyCmd sends a templated reply to one message off the UI goroutine.
func (m Model) replyCmd(id string) tea.Cmd {
	rt := m.rt
	return func() tea.Msg {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		if rt.sess == nil {
			return replyResultMsg{id: id, err: fmt.Errorf("not connected")}
		}
		var target *model.Message
		for _, msg := range rt.sess.Messages() {
			if msg.ID == id {
				target = msg
				break
			}
		}
		if target == nil {
			return replyResultMsg{id: id, err: fmt.Errorf("message gone")}
		}
		err := rt.sess.Reply(
			context.Background(), target,
			rt.sess.Account().Address, model.LogModeManual,
		)
		return replyResultMsg{id: id, err: err}
	}
}

// replyAllCmd replies to every unreplied message, counting per-message
// failures instead of aborting on them.
func (m Model) replyAllCmd() tea.Cmd {
	rt := m.rt
	return func() tea.Msg {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		if rt.sess == nil {
			return replyAllResultMsg{}
		}
		rt.sess.ClassifyAll()
		var res replyAllResultMsg
		from := rt.sess.Account().Address
		for _, msg := range rt.sess.Messages() {
			if msg.Replied {
				continue
			}
			err := rt.sess.Reply(
				context.Background(), msg, from, model.LogModeAuto,
			)
			if err != nil {
				res.failed++
				continue
			}
			res.sent++
		}
		return res
	}
}

// reportCmd renders the PDF summary report off the UI goroutine.
func (m Model) reportCmd() tea.Cmd {
	log := m.log
	return func() tea.Msg {
		path, err := log.WriteReport()
		return reportResultMsg{path: path, err: err}
	}
}

// saveAccount persists the connected account to the config file and
// the profile store so the next start prefills the form.
func (m Model) saveAccount(account model.AccountConfig) tea.Cmd {
	cfg := m.cfg
	cfgPath := m.cfgPath
	s := m.store
	return func() tea.Msg {
		cfg.Account = account
		if err := model.SaveConfig(cfgPath, cfg); err != nil {
			return profileSavedMsg{err: err}
		}
		if s == nil {
			return profileSavedMsg{}
		}
		err := s.UpsertProfile(
			context.Background(), model.ProfileFromConfig(account),
		)
		return profileSavedMsg{err: err}
	}
}

// newAutoCycle builds the scheduler cycle: fetch the most recent
// messages and classify them, then publish a summary event. Sending
// stays user-initiated; the cycle never replies on its own.
func newAutoCycle(
	rt *runtime,
	cfg *model.AppConfig,
	events chan tea.Msg,
) sched.CycleFunc {
	return func(ctx context.Context) error {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		if rt.sess == nil {
			return nil
		}

		msgs, _, err := rt.sess.Fetch(ctx, cfg.AutoCheck.FetchLimit)
		if err != nil {
			pushEvent(events, autoCycleEventMsg{err: err})
			return err
		}

		rt.sess.ClassifyAll()

		pushEvent(events, autoCycleEventMsg{fetched: len(msgs)})
		return nil
	}
}
