// Package mail wraps the IMAP retrieval and SMTP submission protocols
// and normalizes raw messages into the application model.
package mail

import (
	"context"
	"fmt"
	"sort"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPSession is a logged-in IMAP connection with INBOX selected. It
// stays open for the lifetime of the assistant session; callers are
// expected to serialize access.
type IMAPSession struct {
	client *imapclient.Client
}

// ConnectIMAP dials the retrieval server, authenticates and selects
// INBOX. When useTLS is false the connection upgrades via STARTTLS.
func ConnectIMAP(
	host, port, username, password string, useTLS bool,
) (*IMAPSession, error) {
	addr := host + ":" + port

	var client *imapclient.Client
	var err error

	if useTLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(username, password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("IMAP login for %s: %w", username, err)
	}

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("selecting INBOX: %w", err)
	}

	return &IMAPSession{client: client}, nil
}

// ListUIDs returns every message UID in INBOX in ascending order.
// "Most recent" means highest UID.
func (s *IMAPSession) ListUIDs(_ context.Context) ([]uint32, error) {
	searchData, err := s.client.UIDSearch(&imap.SearchCriteria{}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching INBOX: %w", err)
	}

	raw := searchData.AllUIDs()
	uids := make([]uint32, 0, len(raw))
	for _, uid := range raw {
		uids = append(uids, uint32(uid))
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	return uids, nil
}

// FetchRaw downloads the full RFC 822 content of one message.
func (s *IMAPSession) FetchRaw(_ context.Context, uid uint32) ([]byte, error) {
	uidSet := imap.UIDSetNum(imap.UID(uid))

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOpts := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := s.client.Fetch(uidSet, fetchOpts)
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return nil, fmt.Errorf("message UID %d not found", uid)
	}

	buf, err := msg.Collect()
	if err != nil {
		return nil, fmt.Errorf("collecting message UID %d: %w", uid, err)
	}

	raw := buf.FindBodySection(bodySection)
	if raw == nil {
		return nil, fmt.Errorf("message UID %d has no body section", uid)
	}

	// An error means fetch failure to callers; never pair it with a
	// partial payload.
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("closing fetch for UID %d: %w", uid, err)
	}

	return raw, nil
}

// Close logs out and drops the connection.
func (s *IMAPSession) Close() error {
	return s.client.Logout().Wait()
}
