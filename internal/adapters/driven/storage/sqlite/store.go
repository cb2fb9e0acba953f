package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/manuals/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/manuals/internal/core/domain"
	"github.com/custodia-labs/manuals/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore persists the corpus snapshot in a SQLite database.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// NewSnapshotStore opens or creates the database at path and applies
// pending migrations.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path: %w", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode so the MCP server can read during extract
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SnapshotStore{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Save replaces the stored snapshot in one transaction.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) (err error) {
	if snapshot == nil {
		return fmt.Errorf("save snapshot: %w", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"records", "snapshot_sources", "snapshot_meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("save snapshot: clear %s: %w", table, err)
		}
	}

	meta := snapshot.Meta
	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, snapshot_id, created_at, fingerprint) VALUES (1, ?, ?, ?)`,
		meta.ID, meta.CreatedAt.UTC().Format(time.RFC3339Nano), meta.Fingerprint)
	if err != nil {
		return fmt.Errorf("save snapshot: meta: %w", err)
	}

	for i, id := range meta.Sources {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO snapshot_sources (position, source_id) VALUES (?, ?)`, i, id); err != nil {
			return fmt.Errorf("save snapshot: source %s: %w", id, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (source_id, ordinal, label, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save snapshot: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range snapshot.Records {
		if _, err = stmt.ExecContext(ctx, r.SourceID, r.Ordinal, r.Label, r.Body); err != nil {
			return fmt.Errorf("save snapshot: record %s: %w", r.Key(), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit: %w", err)
	}
	return nil
}

// querier is the read surface shared by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Load reads the full snapshot. Metadata and records come from one read
// transaction so a concurrent Save cannot mix two snapshots.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	meta, err := s.readMeta(ctx, tx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT source_id, ordinal, label, body FROM records ORDER BY source_id, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}
	defer rows.Close()

	snap := &domain.Snapshot{Meta: *meta}
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.SourceID, &r.Ordinal, &r.Label, &r.Body); err != nil {
			return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
		}
		if r.Ordinal < 1 {
			return nil, fmt.Errorf("load snapshot: record %s: %w", r.Key(), domain.ErrCorruptSnapshot)
		}
		snap.Records = append(snap.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}
	return snap, nil
}

// Meta reads the snapshot metadata without the records.
func (s *SnapshotStore) Meta(ctx context.Context) (*domain.SnapshotMeta, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("load snapshot: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	return s.readMeta(ctx, tx)
}

func (s *SnapshotStore) readMeta(ctx context.Context, q querier) (*domain.SnapshotMeta, error) {
	var (
		meta    domain.SnapshotMeta
		created string
	)
	err := q.QueryRowContext(ctx,
		`SELECT snapshot_id, created_at, fingerprint FROM snapshot_meta WHERE id = 1`,
	).Scan(&meta.ID, &created, &meta.Fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load snapshot %s: %w", s.path, domain.ErrCorpusUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}

	meta.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: created_at: %w: %w", domain.ErrCorruptSnapshot, err)
	}

	rows, err := q.QueryContext(ctx, `SELECT source_id FROM snapshot_sources ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
		}
		meta.Sources = append(meta.Sources, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w: %w", domain.ErrCorruptSnapshot, err)
	}
	return &meta, nil
}

// migrate runs all pending migrations.
func (s *SnapshotStore) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_snapshot.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *SnapshotStore) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
