// Package session owns the assistant's connected state: one retrieval
// connection, one submission connection and the in-memory message set,
// orchestrated through the fetch, classify and reply operations.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/mail-assistant/internal/classify"
	"github.com/nhle/mail-assistant/internal/mail"
	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/reply"
	"github.com/nhle/mail-assistant/internal/replylog"
)

// Mailbox lists and downloads messages from the selected inbox.
// *mail.IMAPSession is the production implementation.
type Mailbox interface {
	ListUIDs(ctx context.Context) ([]uint32, error)
	FetchRaw(ctx context.Context, uid uint32) ([]byte, error)
	Close() error
}

// Sender submits a composed message. *mail.SMTPSession is the
// production implementation.
type Sender interface {
	Send(from, to, message string) error
	Close() error
}

// SecretStore persists the account secret after a successful connect.
type SecretStore interface {
	Set(account, secret string) error
}

// ProgressFunc receives fractional progress updates during a fetch.
type ProgressFunc func(fraction float64, status string)

// Options configures a Session beyond its two connections.
type Options struct {
	// Log receives one record per sent reply.
	Log *replylog.Writer

	// AttachDir is the root directory for saved attachments.
	AttachDir string

	// Progress, when set, is called with idx/count fractions while
	// fetching.
	Progress ProgressFunc

	// Secrets, when set, stores the password keyed by the account
	// address after a successful connect.
	Secrets SecretStore

	// Now is the clock used for log timestamps; defaults to time.Now.
	Now func() time.Time
}

// Session is the single logical assistant session. Its operations are
// intended to be invoked one at a time; the caller provides the
// serialization.
type Session struct {
	account  model.AccountConfig
	mailbox  Mailbox
	sender   Sender
	opts     Options
	messages []*model.Message
}

// New assembles a Session from already-connected collaborators.
func New(
	account model.AccountConfig,
	mailbox Mailbox,
	sender Sender,
	opts Options,
) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{
		account: account,
		mailbox: mailbox,
		sender:  sender,
		opts:    opts,
	}
}

// Connect opens the retrieval and submission sessions and attempts
// login on both. Either failure fails the whole attempt: no partially
// connected session is ever handed back. On success the secret is
// persisted in the configured secret store, keyed by address.
func Connect(
	ctx context.Context,
	account model.AccountConfig,
	password string,
	opts Options,
) (*Session, error) {
	report := func(frac float64, status string) {
		if opts.Progress != nil {
			opts.Progress(frac, status)
		}
	}

	report(0.2, "Connecting IMAP...")
	mailbox, err := mail.ConnectIMAP(
		account.IMAPHost, account.IMAPPort,
		account.Address, password, account.TLS,
	)
	if err != nil {
		return nil, &ConnectionError{Protocol: "imap", Err: err}
	}

	report(0.6, "Connecting SMTP...")
	sender, err := mail.ConnectSMTP(
		account.SMTPHost, account.SMTPPort,
		account.Address, password, account.TLS,
	)
	if err != nil {
		_ = mailbox.Close()
		return nil, &ConnectionError{Protocol: "smtp", Err: err}
	}

	if opts.Secrets != nil {
		if err := opts.Secrets.Set(account.Address, password); err != nil {
			_ = mailbox.Close()
			_ = sender.Close()
			return nil, fmt.Errorf("storing credential: %w", err)
		}
	}

	report(1.0, "Connected")
	return New(account, mailbox, sender, opts), nil
}

// Account returns the account this session is connected as.
func (s *Session) Account() model.AccountConfig {
	return s.account
}

// Messages returns the currently held message set, newest first.
func (s *Session) Messages() []*model.Message {
	return s.messages
}

// Fetch lists the inbox, takes at most the `limit` most recent
// messages (highest UIDs) and downloads them newest-first, normalizing
// each one. A failure fetching a single message is skipped and
// recorded as a diagnostic; a failure at the listing step aborts the
// whole fetch. The session's held message set is replaced, not
// extended.
func (s *Session) Fetch(
	ctx context.Context, limit int,
) ([]*model.Message, []mail.Diagnostic, error) {
	uids, err := s.mailbox.ListUIDs(ctx)
	if err != nil {
		return nil, nil, &FetchError{Err: err}
	}

	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	var (
		fetched []*model.Message
		diags   []mail.Diagnostic
	)

	n := len(uids)
	for i := n - 1; i >= 0; i-- {
		uid := uids[i]
		idx := n - i
		if s.opts.Progress != nil {
			s.opts.Progress(float64(idx)/float64(n),
				fmt.Sprintf("Fetching %d/%d...", idx, n))
		}

		raw, err := s.mailbox.FetchRaw(ctx, uid)
		if err != nil {
			diags = append(diags, mail.Diagnostic{
				MessageID: fmt.Sprintf("%d", uid),
				Stage:     "fetch",
				Err:       err,
			})
			continue
		}

		msg, msgDiags := mail.Normalize(raw, fmt.Sprintf("%d", uid), s.opts.AttachDir)
		diags = append(diags, msgDiags...)
		fetched = append(fetched, msg)
	}

	s.messages = fetched
	return fetched, diags, nil
}

// ClassifyAll applies the keyword classifier to every held message in
// place. Classification is a pure string function and cannot fail.
func (s *Session) ClassifyAll() {
	for _, m := range s.messages {
		m.Category, m.Urgent = classify.Classify(m.Subject, m.Body)
	}
}

// Reply sends a templated reply to the given message's sender and
// appends one log record tagged with mode. The message is classified
// first if it is still unclassified. On any send failure the message
// stays unreplied and nothing is logged.
func (s *Session) Reply(
	ctx context.Context,
	msg *model.Message,
	fromAddr string,
	mode model.LogMode,
) error {
	if s.sender == nil {
		return &SendError{Err: fmt.Errorf("no submission session")}
	}

	name, addr, err := mail.ParseSender(msg.Sender)
	if err != nil {
		return &SendError{Err: err}
	}

	if msg.Category == model.CategoryUnclassified {
		msg.Category, msg.Urgent = classify.Classify(msg.Subject, msg.Body)
	}

	body := reply.Compose(msg.Category, name)
	raw := mail.BuildReply(fromAddr, addr, "Re: "+msg.Subject, body)

	if err := s.sender.Send(fromAddr, addr, raw); err != nil {
		return &SendError{Err: err}
	}

	msg.Replied = true

	if s.opts.Log != nil {
		rec := model.LogRecord{
			Timestamp:   s.opts.Now(),
			From:        msg.Sender,
			Subject:     msg.Subject,
			Category:    msg.Category,
			Urgent:      msg.Urgent,
			Attachments: len(msg.Attachments),
			Mode:        mode,
		}
		if err := s.opts.Log.Append(rec); err != nil {
			return fmt.Errorf("reply sent but not logged: %w", err)
		}
	}

	return nil
}

// Close drops both connections. The session is unusable afterwards.
func (s *Session) Close() error {
	var firstErr error
	if s.mailbox != nil {
		if err := s.mailbox.Close(); err != nil {
			firstErr = err
		}
	}
	if s.sender != nil {
		if err := s.sender.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
