// Package graph stores the daytrack entries as nodes in a Neo4j database.
package graph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/julianstephens/daytrack/internal/logger"
	"github.com/julianstephens/daytrack/internal/storage"
)

var _ storage.Provider = (*Store)(nil)

const (
	// EnvUser and EnvPassword hold the Neo4j credentials; they never go in the URI.
	EnvUser     = "DAYTRACK_NEO4J_USER"
	EnvPassword = "DAYTRACK_NEO4J_PASSWORD"

	schemaVersion = 1
	opTimeout     = 10 * time.Second
)

var (
	ErrInvalidURI          = errors.New("invalid Neo4j URI")
	ErrEmbeddedCredentials = errors.New("Neo4j URI must not contain credentials")

	errNotLoaded = errors.New("storage not loaded")
)

// Store keeps one (:DaytrackEntry {key, value}) node per entry and a single
// (:DaytrackMeta) node recording the schema version.
type Store struct {
	uri    string
	driver neo4j.DriverWithContext
}

func NewStore(uri string) *Store {
	return &Store{uri: uri}
}

// IsURI reports whether s names a Neo4j server.
func IsURI(s string) bool {
	for _, scheme := range []string{"neo4j://", "neo4j+s://", "neo4j+ssc://", "bolt://", "bolt+s://", "bolt+ssc://"} {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

// ValidateURI rejects URIs that cannot be parsed or that embed credentials.
func ValidateURI(uri string) error {
	if !IsURI(uri) {
		return fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidURI, uri)
	}
	u, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURI)
	}
	if u.User != nil {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) auth() neo4j.AuthToken {
	user := os.Getenv(EnvUser)
	if user == "" {
		return neo4j.NoAuth()
	}
	return neo4j.BasicAuth(user, os.Getenv(EnvPassword), "")
}

func (s *Store) connect() error {
	if s.driver != nil {
		return nil
	}
	if err := ValidateURI(s.uri); err != nil {
		return err
	}
	driver, err := neo4j.NewDriverWithContext(s.uri, s.auth())
	if err != nil {
		return fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return fmt.Errorf("failed to connect to Neo4j at %s: %w", s.uri, err)
	}
	s.driver = driver
	return nil
}

func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.schema(ctx,
		"CREATE CONSTRAINT daytrack_entry_key IF NOT EXISTS FOR (e:DaytrackEntry) REQUIRE e.key IS UNIQUE"); err != nil {
		return fmt.Errorf("failed to create constraint: %w", err)
	}
	if _, err := s.write(ctx,
		"MERGE (m:DaytrackMeta) ON CREATE SET m.version = $version",
		map[string]any{"version": schemaVersion}); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	logger.Info("Initialized Neo4j store", "uri", s.uri)
	return nil
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.read(ctx, "MATCH (m:DaytrackMeta) RETURN m.version", nil)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if len(rows) == 0 {
		return storage.ErrNotInitialized
	}
	version, ok := rows[0][0].(int64)
	if !ok {
		return fmt.Errorf("unexpected schema version value %v", rows[0][0])
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", version, schemaVersion)
	}
	return nil
}

func (s *Store) Close() error {
	if s.driver == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	err := s.driver.Close(ctx)
	s.driver = nil
	return err
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.driver == nil {
		return "", false, errNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.read(ctx,
		"MATCH (e:DaytrackEntry {key: $key}) RETURN e.value",
		map[string]any{"key": key})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	value, _ := rows[0][0].(string)
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	if s.driver == nil {
		return errNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := s.write(ctx,
		"MERGE (e:DaytrackEntry {key: $key}) SET e.value = $value, e.updatedAt = datetime()",
		map[string]any{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.driver == nil {
		return errNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := s.write(ctx,
		"MATCH (e:DaytrackEntry {key: $key}) DETACH DELETE e",
		map[string]any{"key": key})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.driver == nil {
		return nil, errNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.read(ctx, "MATCH (e:DaytrackEntry) RETURN e.key ORDER BY e.key", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		if k, ok := row[0].(string); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// GetConfigPath returns the URI; credentials never live in it.
func (s *Store) GetConfigPath() string {
	return s.uri
}

func (s *Store) read(ctx context.Context, cypher string, params map[string]any) ([][]any, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, err
	}
	return out.([][]any), nil
}

func (s *Store) write(ctx context.Context, cypher string, params map[string]any) ([][]any, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return collect(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, err
	}
	return out.([][]any), nil
}

// schema runs a schema statement in an auto-commit transaction, since Neo4j
// does not allow schema changes next to data writes.
func (s *Store) schema(ctx context.Context, cypher string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, nil)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func collect(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([][]any, error) {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	var rows [][]any
	for res.Next(ctx) {
		rows = append(rows, res.Record().Values)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
