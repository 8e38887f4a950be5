// Package keyring keeps the PostgreSQL connection string in the OS keyring.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/daytrack/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source says where a resolved connection string came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// entry is one secret addressed by service and user.
type entry struct {
	service string
	user    string
}

var connection = entry{service: constants.AppName, user: constants.DefaultKeyringUser}

func (e entry) get() (string, error) {
	secret, err := keyring.Get(e.service, e.user)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (e entry) set(secret string) error {
	if err := keyring.Set(e.service, e.user, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (e entry) delete() error {
	err := keyring.Delete(e.service, e.user)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString returns ErrNotFound if nothing is stored.
func GetConnectionString() (string, error) {
	return connection.get()
}

func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return connection.set(connStr)
}

func DeleteConnectionString() error {
	return connection.delete()
}

// ResolveConnectionString prefers the envVar environment variable and falls
// back to the keyring.
func ResolveConnectionString(envVar string) (string, Source, error) {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, SourceEnv, nil
	}
	connStr, err := GetConnectionString()
	if err != nil {
		return "", "", err
	}
	return connStr, SourceKeyring, nil
}
