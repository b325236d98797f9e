package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "mailassistant"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/mailassistant/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("mailassistant-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves the stored secret for an account address.
func Get(account string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(account)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", account, err)
	}

	return string(item.Data), nil
}

// Set stores the secret for an account address in the system keyring.
func Set(account string, secret string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  account,
		Data: []byte(secret),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", account, err)
	}

	return nil
}

// Delete removes the secret for an account address.
func Delete(account string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(account)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", account, err)
	}

	return nil
}

// Store adapts the package functions to the session pipeline's
// SecretStore interface.
type Store struct{}

// Set stores the secret for an account address.
func (Store) Set(account, secret string) error {
	return Set(account, secret)
}
