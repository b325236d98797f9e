package mail

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/nhle/mail-assistant/internal/model"
)

// Diagnostic records a swallowed per-item failure during fetch or
// normalization. Normalization itself never fails: a bad header, part
// or attachment degrades to an empty or skipped result and leaves a
// diagnostic behind so callers can still observe it.
type Diagnostic struct {
	MessageID string
	Stage     string
	Err       error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("message %s: %s: %v", d.MessageID, d.Stage, d.Err)
}

// Normalize parses a raw RFC 822 message into a model.Message. Headers
// are decoded per encoded-word segment with undecodable bytes ignored
// (go-message's charset handling). The body is the first text/plain
// part that is not an attachment, or "" when none exists; there is no
// HTML fallback. Every attachment part is written to a per-message
// directory under attachDir; a failure writing one attachment skips it
// and does not abort the others.
func Normalize(raw []byte, id, attachDir string) (*model.Message, []Diagnostic) {
	msg := &model.Message{
		ID:       id,
		Category: model.CategoryUnclassified,
	}
	var diags []Diagnostic

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if mr == nil {
		diags = append(diags, Diagnostic{id, "parse", err})
		return msg, diags
	}
	defer mr.Close()
	if err != nil {
		// Header-level decode trouble; the reader still yields a
		// best-effort view of the message.
		diags = append(diags, Diagnostic{id, "header", err})
	}

	if subject, err := mr.Header.Subject(); err == nil || subject != "" {
		msg.Subject = subject
	}
	if from, err := mr.Header.Text("From"); err == nil || from != "" {
		msg.Sender = from
	}
	if date, err := mr.Header.Text("Date"); err == nil || date != "" {
		msg.Date = date
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			diags = append(diags, Diagnostic{id, "part", err})
			break
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			ctype, _, _ := h.ContentType()
			if msg.Body != "" || !strings.HasPrefix(ctype, "text/plain") {
				continue
			}
			body, err := io.ReadAll(part.Body)
			if err != nil {
				diags = append(diags, Diagnostic{id, "body", err})
				continue
			}
			msg.Body = string(body)

		case *mail.AttachmentHeader:
			path, err := saveAttachment(h, part.Body, id, attachDir)
			if err != nil {
				diags = append(diags, Diagnostic{id, "attachment", err})
				continue
			}
			msg.Attachments = append(msg.Attachments, path)
		}
	}

	return msg, diags
}

// saveAttachment writes one attachment part into the per-message
// directory, generating a timestamp-based name when the part carries
// no decodable filename.
func saveAttachment(
	h *mail.AttachmentHeader, body io.Reader, id, attachDir string,
) (string, error) {
	filename, _ := h.Filename()
	if filename == "" {
		filename = fmt.Sprintf("file_%d.bin", time.Now().Unix())
	}
	// Strip any directory components a hostile filename may carry.
	filename = filepath.Base(filename)

	dir := filepath.Join(attachDir, "email_"+id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating attachment dir %s: %w", dir, err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading attachment %s: %w", filename, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing attachment %s: %w", path, err)
	}

	return path, nil
}
