package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"

	"github.com/salmonumbrella/routekit/transport"
)

// openKeyring is a package-level function for opening keyrings.
// It can be replaced in tests to use a mock keyring.
var openKeyring = func(cfg keyring.Config) (keyring.Keyring, error) {
	return keyring.Open(cfg)
}

// SetOpenKeyring allows replacing the keyring opener for testing.
// Returns a cleanup function that restores the original.
func SetOpenKeyring(fn func(keyring.Config) (keyring.Keyring, error)) func() {
	original := openKeyring
	openKeyring = fn
	return func() { openKeyring = original }
}

// KeyringToken supplies the token stored under key in the OS keyring
// service. The keyring is opened lazily on first use and reused; a
// stored-but-missing key maps to ErrNoToken so lenient transports can
// degrade cleanly.
func KeyringToken(service, key string) transport.TokenSupplier {
	var (
		once    sync.Once
		ring    keyring.Keyring
		openErr error
	)
	return func(_ context.Context) (string, error) {
		once.Do(func() {
			ring, openErr = openKeyring(keyring.Config{ServiceName: service})
		})
		if openErr != nil {
			return "", fmt.Errorf("open keyring: %w", openErr)
		}
		item, err := ring.Get(key)
		if err != nil {
			if errors.Is(err, keyring.ErrKeyNotFound) {
				return "", ErrNoToken
			}
			return "", fmt.Errorf("read %q from keyring: %w", key, err)
		}
		return string(item.Data), nil
	}
}
