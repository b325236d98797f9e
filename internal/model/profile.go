package model

import "time"

// AccountProfile is a saved connection profile. Profiles let the
// connect form autofill previously used servers; the password is never
// part of a profile — it lives in the system keyring.
type AccountProfile struct {
	ID        string
	Address   string
	IMAPHost  string
	IMAPPort  string
	SMTPHost  string
	SMTPPort  string
	TLS       bool
	UpdatedAt time.Time
}

// AccountConfig converts the profile into connect settings.
func (p AccountProfile) AccountConfig() AccountConfig {
	return AccountConfig{
		Address:  p.Address,
		IMAPHost: p.IMAPHost,
		IMAPPort: p.IMAPPort,
		SMTPHost: p.SMTPHost,
		SMTPPort: p.SMTPPort,
		TLS:      p.TLS,
	}
}

// ProfileFromConfig builds a profile from connect settings.
func ProfileFromConfig(cfg AccountConfig) AccountProfile {
	return AccountProfile{
		Address:  cfg.Address,
		IMAPHost: cfg.IMAPHost,
		IMAPPort: cfg.IMAPPort,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		TLS:      cfg.TLS,
	}
}
