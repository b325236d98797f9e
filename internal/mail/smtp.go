package mail

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const smtpDialTimeout = 30 * time.Second

// SMTPSession is an authenticated SMTP connection held open for the
// lifetime of the assistant session.
type SMTPSession struct {
	client *smtp.Client
}

// ConnectSMTP dials the submission server and authenticates. With
// useTLS the connection is implicit TLS; otherwise it upgrades via
// STARTTLS before authenticating.
func ConnectSMTP(
	host, port, username, password string, useTLS bool,
) (*SMTPSession, error) {
	addr := host + ":" + port

	var client *smtp.Client
	if useTLS {
		tlsConfig := &tls.Config{ServerName: host}
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("TLS dial to %s: %w", addr, err)
		}
		client, err = smtp.NewClient(conn, host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("creating SMTP client: %w", err)
		}
	} else {
		conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
		if err != nil {
			return nil, fmt.Errorf("dial to %s: %w", addr, err)
		}
		client, err = smtp.NewClient(conn, host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("creating SMTP client: %w", err)
		}
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP STARTTLS: %w", err)
		}
	}

	auth := smtp.PlainAuth("", username, password, host)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, fmt.Errorf("SMTP auth: %w", err)
	}

	return &SMTPSession{client: client}, nil
}

// Send performs one mail transaction on the held connection.
func (s *SMTPSession) Send(from, to, message string) error {
	if err := s.client.Mail(from); err != nil {
		return fmt.Errorf("SMTP MAIL FROM: %w", err)
	}

	if err := s.client.Rcpt(to); err != nil {
		// Abort the transaction so the connection stays usable.
		_ = s.client.Reset()
		return fmt.Errorf("SMTP RCPT TO: %w", err)
	}

	writer, err := s.client.Data()
	if err != nil {
		_ = s.client.Reset()
		return fmt.Errorf("SMTP DATA: %w", err)
	}

	if _, err := writer.Write([]byte(message)); err != nil {
		writer.Close()
		return fmt.Errorf("writing SMTP message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing SMTP message: %w", err)
	}

	return nil
}

// Close sends QUIT and drops the connection.
func (s *SMTPSession) Close() error {
	return s.client.Quit()
}

// BuildReply composes a plain-text reply as a raw RFC 822 message.
func BuildReply(from, to, subject, body string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}
