package session

import (
	"errors"
	"fmt"
)

// ConnectionError indicates that dialing or logging in to either the
// retrieval or the submission server failed. A failure on one protocol
// fails the whole connect attempt.
type ConnectionError struct {
	Protocol string // "imap" or "smtp"
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error (%s): %v", e.Protocol, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsConnectionError reports whether err (or any error in its chain) is
// a ConnectionError.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}

// FetchError indicates the mailbox listing step failed. Per-message
// fetch failures are not FetchErrors; they are skipped and recorded as
// diagnostics.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err (or any error in its chain) is a
// FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// SendError indicates a reply could not be sent: the submission
// transaction failed or the recipient address was unparseable.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send error: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// IsSendError reports whether err (or any error in its chain) is a
// SendError.
func IsSendError(err error) bool {
	var sendErr *SendError
	return errors.As(err, &sendErr)
}
