package mail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/mail-assistant/internal/model"
)

// crlf rewrites test fixtures to the CRLF line endings MIME requires.
func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func TestNormalizeMultipart(t *testing.T) {
	raw := crlf(`From: "Jane Doe" <jane@example.com>
To: me@example.com
Subject: =?utf-8?q?Invoice_=23102_overdue?=
Date: Mon, 02 Feb 2026 10:00:00 +0000
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="BOUNDARY"

--BOUNDARY
Content-Type: text/plain; charset=utf-8

Please settle the invoice.
--BOUNDARY
Content-Type: text/html; charset=utf-8

<p>Please settle the invoice.</p>
--BOUNDARY
Content-Type: application/octet-stream
Content-Disposition: attachment; filename="notes.txt"

attached notes
--BOUNDARY--
`)

	attachDir := t.TempDir()
	msg, diags := Normalize(raw, "42", attachDir)

	if len(diags) != 0 {
		t.Fatalf("Normalize() diagnostics = %v, want none", diags)
	}
	if msg.ID != "42" {
		t.Errorf("ID = %q, want %q", msg.ID, "42")
	}
	if msg.Subject != "Invoice #102 overdue" {
		t.Errorf("Subject = %q, want decoded encoded-word", msg.Subject)
	}
	if !strings.Contains(msg.Sender, "jane@example.com") {
		t.Errorf("Sender = %q, want it to contain the address", msg.Sender)
	}
	if got := strings.TrimRight(msg.Body, "\r\n"); got != "Please settle the invoice." {
		t.Errorf("Body = %q", msg.Body)
	}
	if msg.Category != model.CategoryUnclassified {
		t.Errorf("Category = %q, want %q", msg.Category, model.CategoryUnclassified)
	}
	if msg.Urgent {
		t.Error("Urgent = true before classification")
	}

	if len(msg.Attachments) != 1 {
		t.Fatalf("Attachments = %v, want exactly one", msg.Attachments)
	}
	wantPath := filepath.Join(attachDir, "email_42", "notes.txt")
	if msg.Attachments[0] != wantPath {
		t.Errorf("attachment path = %q, want %q", msg.Attachments[0], wantPath)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("reading saved attachment: %v", err)
	}
	if got := strings.TrimRight(string(data), "\r\n"); got != "attached notes" {
		t.Errorf("attachment content = %q", got)
	}
}

func TestNormalizeFirstPlainPartWins(t *testing.T) {
	raw := crlf(`From: a@b.com
Subject: two plain parts
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="B"

--B
Content-Type: text/plain

first part
--B
Content-Type: text/plain

second part
--B--
`)

	msg, _ := Normalize(raw, "1", t.TempDir())
	if got := strings.TrimRight(msg.Body, "\r\n"); got != "first part" {
		t.Errorf("Body = %q, want the first text/plain part", msg.Body)
	}
}

func TestNormalizeSinglePart(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		raw := crlf(`From: a@b.com
Subject: plain
Content-Type: text/plain; charset=utf-8

just a body
`)
		msg, diags := Normalize(raw, "7", t.TempDir())
		if len(diags) != 0 {
			t.Fatalf("diagnostics = %v", diags)
		}
		if got := strings.TrimRight(msg.Body, "\r\n"); got != "just a body" {
			t.Errorf("Body = %q", msg.Body)
		}
	})

	t.Run("html only yields empty body", func(t *testing.T) {
		raw := crlf(`From: a@b.com
Subject: html
Content-Type: text/html; charset=utf-8

<p>no plain text here</p>
`)
		msg, _ := Normalize(raw, "8", t.TempDir())
		if msg.Body != "" {
			t.Errorf("Body = %q, want empty (no HTML extraction)", msg.Body)
		}
	})
}

func TestNormalizeAttachmentWithoutFilename(t *testing.T) {
	raw := crlf(`From: a@b.com
Subject: nameless attachment
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="B"

--B
Content-Type: text/plain

body
--B
Content-Type: application/octet-stream
Content-Disposition: attachment

payload
--B--
`)

	msg, diags := Normalize(raw, "9", t.TempDir())
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v", diags)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("Attachments = %v, want a generated-name file", msg.Attachments)
	}
	base := filepath.Base(msg.Attachments[0])
	if !strings.HasPrefix(base, "file_") || !strings.HasSuffix(base, ".bin") {
		t.Errorf("generated name = %q, want file_<ts>.bin form", base)
	}
}

func TestNormalizeGarbageNeverPanics(t *testing.T) {
	msg, _ := Normalize([]byte("\x00\x01 not a mime message"), "13", t.TempDir())
	if msg == nil {
		t.Fatal("Normalize() returned nil message")
	}
	if msg.ID != "13" {
		t.Errorf("ID = %q, want preserved", msg.ID)
	}
	if msg.Category != model.CategoryUnclassified {
		t.Errorf("Category = %q, want %q", msg.Category, model.CategoryUnclassified)
	}
}
