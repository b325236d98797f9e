package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/mail-assistant/internal/model"
	"github.com/nhle/mail-assistant/internal/store"
	"github.com/nhle/mail-assistant/tests/testutil"
)

func sampleProfile(address string) model.AccountProfile {
	return model.AccountProfile{
		Address:  address,
		IMAPHost: "imap.example.com",
		IMAPPort: "993",
		SMTPHost: "smtp.example.com",
		SMTPPort: "465",
		TLS:      true,
	}
}

func TestUpsertAndGetProfile(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertProfile(ctx, sampleProfile("me@example.com")); err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}

	p, err := s.GetProfileByAddress(ctx, "me@example.com")
	if err != nil {
		t.Fatalf("GetProfileByAddress() error = %v", err)
	}
	if p.ID == "" {
		t.Error("profile ID not generated")
	}
	if p.IMAPHost != "imap.example.com" || !p.TLS {
		t.Errorf("profile = %+v, want saved fields round-tripped", p)
	}
}

func TestUpsertReplacesByAddress(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertProfile(ctx, sampleProfile("me@example.com")); err != nil {
		t.Fatal(err)
	}

	updated := sampleProfile("me@example.com")
	updated.IMAPHost = "mail.other.com"
	updated.TLS = false
	if err := s.UpsertProfile(ctx, updated); err != nil {
		t.Fatal(err)
	}

	profiles, err := s.GetProfiles(ctx)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("profiles = %d, want upsert keyed by address", len(profiles))
	}
	if profiles[0].IMAPHost != "mail.other.com" || profiles[0].TLS {
		t.Errorf("profile = %+v, want updated fields", profiles[0])
	}
}

func TestGetProfileMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetProfileByAddress(context.Background(), "nobody@example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetProfileByAddress() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteProfile(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.UpsertProfile(ctx, sampleProfile("me@example.com")); err != nil {
		t.Fatal(err)
	}
	p, err := s.GetProfileByAddress(ctx, "me@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteProfile(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if _, err := s.GetProfileByAddress(ctx, "me@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("profile still present after delete: %v", err)
	}

	if err := s.DeleteProfile(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteProfile() twice = %v, want ErrNotFound", err)
	}
}
