package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/daytrack/internal/constants"
	"github.com/julianstephens/daytrack/internal/keyring"
	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/storage"
	"github.com/julianstephens/daytrack/internal/storage/graph"
	"github.com/julianstephens/daytrack/internal/storage/postgres"
	"github.com/julianstephens/daytrack/internal/storage/sqlite"
)

// EnvDBConnection overrides the PostgreSQL connection string when set.
const EnvDBConnection = "DAYTRACK_DB_CONNECTION"

// OpenStore picks a storage backend for a --config value:
// ":memory:", a *.json path, a PostgreSQL connection string, "keyring",
// a Neo4j URI, or a SQLite path.
func OpenStore(config string) (storage.Provider, error) {
	config = strings.TrimSpace(config)

	switch {
	case config == constants.MemoryConfig:
		return storage.NewMemoryStore(), nil

	case config == constants.KeyringConfig:
		connStr, src, err := keyring.ResolveConnectionString(EnvDBConnection)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, run 'daytrack keyring set' first")
			}
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string", "source", src)
		// Secrets are allowed here, the keyring and environment are the safe places for them
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil

	case IsPostgresConnString(config):
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; "+
					"use 'daytrack keyring set', %s, or a .pgpass file instead", EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil

	case graph.IsURI(config):
		if err := graph.ValidateURI(config); err != nil {
			if errors.Is(err, graph.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("Neo4j URIs with embedded credentials are not allowed; set %s and %s instead",
					graph.EnvUser, graph.EnvPassword)
			}
			return nil, err
		}
		return graph.NewStore(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// IsFileStore reports whether the store lives in a local file that can be
// locked and backed up.
func IsFileStore(store storage.Provider) bool {
	switch store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return true
	}
	return false
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
