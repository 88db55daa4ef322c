// Package credentials stores the GitHub personal access token in the
// operating system's credential store.
//
// Commands receive a Store explicitly; nothing in this package holds
// process-wide state.
package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"
	kerrors "github.com/PolarWolf314/env-to-github-secrets/internal/errors"
)

const (
	DefaultService = "env-to-github-secrets"
	DefaultAccount = "github-pat"
)

// Store reads and writes the single stored token.
type Store interface {
	// Get returns the token, or ErrCredentialNotFound when none is stored.
	Get() (string, error)
	Set(token string) error
}

// Config selects the keyring service, account and backends.
type Config struct {
	Service string
	Account string

	// Backends restricts the keyring backends tried, e.g. "keychain" or "file".
	// Empty means every backend available on this platform.
	Backends []string

	// FileDir is where the "file" backend keeps its encrypted store.
	FileDir string
}

// KeyringStore is a Store backed by a keyring.Keyring.
type KeyringStore struct {
	ring    keyring.Keyring
	account string
}

// Open opens the OS keyring described by cfg.
func Open(cfg Config) (*KeyringStore, error) {
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}

	var backends []keyring.BackendType
	for _, b := range cfg.Backends {
		backends = append(backends, keyring.BackendType(strings.TrimSpace(b)))
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              cfg.Service,
		AllowedBackends:          backends,
		KeychainTrustApplication: true,
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.TerminalPrompt,
		LibSecretCollectionName:  "login",
		KWalletAppID:             cfg.Service,
		KWalletFolder:            cfg.Service,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring %q: %w", cfg.Service, err)
	}

	return NewKeyringStore(ring, cfg.Account), nil
}

// NewKeyringStore wraps ring, storing the token under account.
func NewKeyringStore(ring keyring.Keyring, account string) *KeyringStore {
	if account == "" {
		account = DefaultAccount
	}
	return &KeyringStore{ring: ring, account: account}
}

func (s *KeyringStore) Get() (string, error) {
	item, err := s.ring.Get(s.account)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", kerrors.ErrCredentialNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %s from keyring: %w", s.account, err)
	}
	if len(item.Data) == 0 {
		return "", kerrors.ErrCredentialNotFound
	}
	return string(item.Data), nil
}

func (s *KeyringStore) Set(token string) error {
	err := s.ring.Set(keyring.Item{
		Key:         s.account,
		Data:        []byte(token),
		Label:       "GitHub personal access token",
		Description: "Used by env-to-github-secrets to manage Actions secrets",
	})
	if err != nil {
		return fmt.Errorf("writing %s to keyring: %w", s.account, err)
	}
	return nil
}

// deferredStore opens its backing Store on first use.
type deferredStore struct {
	open  func() (Store, error)
	store Store
}

// Deferred returns a Store that calls open only when the token is first read
// or written, so callers can validate their other inputs before the keyring
// is touched. A failed open is retried on the next call.
func Deferred(open func() (Store, error)) Store {
	return &deferredStore{open: open}
}

func (d *deferredStore) backing() (Store, error) {
	if d.store == nil {
		store, err := d.open()
		if err != nil {
			return nil, err
		}
		d.store = store
	}
	return d.store, nil
}

func (d *deferredStore) Get() (string, error) {
	store, err := d.backing()
	if err != nil {
		return "", err
	}
	return store.Get()
}

func (d *deferredStore) Set(token string) error {
	store, err := d.backing()
	if err != nil {
		return err
	}
	return store.Set(token)
}
