package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/tests/testutil"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	s := testutil.NewTestStore(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return New(cfg, cfgPath, s)
}

func TestSaveAccountPersistsProfileAndConfig(t *testing.T) {
	m := newTestModel(t)
	account := model.AccountConfig{
		Address:  "jane@example.com",
		IMAPHost: "imap.example.com",
		IMAPPort: "993",
		SMTPHost: "smtp.example.com",
		SMTPPort: "465",
		TLS:      true,
	}

	msg := m.saveAccount(account)()
	saved, ok := msg.(profileSavedMsg)
	if !ok {
		t.Fatalf("saveAccount() msg = %T, want profileSavedMsg", msg)
	}
	if saved.err != nil {
		t.Fatalf("saveAccount() err = %v, want nil", saved.err)
	}

	p, err := m.store.GetProfileByAddress(
		context.Background(), "jane@example.com",
	)
	if err != nil {
		t.Fatalf("GetProfileByAddress() err = %v", err)
	}
	if p.IMAPHost != "imap.example.com" || p.SMTPPort != "465" || !p.TLS {
		t.Errorf("stored profile = %+v, want submitted account settings", p)
	}

	cfg, err := model.LoadConfig(m.cfgPath)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if cfg.Account != account {
		t.Errorf("reloaded account = %+v, want %+v", cfg.Account, account)
	}
}

func TestSaveAccountReplacesExistingProfile(t *testing.T) {
	m := newTestModel(t)
	account := model.AccountConfig{
		Address:  "jane@example.com",
		IMAPHost: "imap.old.example.com",
		IMAPPort: "143",
		SMTPHost: "smtp.old.example.com",
		SMTPPort: "587",
	}

	if msg := m.saveAccount(account)(); msg.(profileSavedMsg).err != nil {
		t.Fatalf("first saveAccount() failed: %v", msg.(profileSavedMsg).err)
	}

	account.IMAPHost = "imap.new.example.com"
	if msg := m.saveAccount(account)(); msg.(profileSavedMsg).err != nil {
		t.Fatalf("second saveAccount() failed: %v", msg.(profileSavedMsg).err)
	}

	profiles, err := m.store.GetProfiles(context.Background())
	if err != nil {
		t.Fatalf("GetProfiles() err = %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("GetProfiles() len = %d, want 1", len(profiles))
	}
	if profiles[0].IMAPHost != "imap.new.example.com" {
		t.Errorf("IMAPHost = %q, want %q",
			profiles[0].IMAPHost, "imap.new.example.com")
	}
}
