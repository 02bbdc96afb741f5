// Package state persists the engine's view of the namespace in a
// versioned SQLite database. Records are keyed by the comparator's fold
// key, so two spellings that the path engine considers the same entity
// always hit the same row.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fspath"
	"github.com/skovgaard/driftsync/internal/logger"
)

const (
	// legacyDBVersion marks databases created before records carried
	// the escaped local spelling; dbVersion is the current generation.
	legacyDBVersion = 1
	dbVersion       = 2
)

// DB is a node table bound to one endpoint. Not safe for concurrent
// use; callers needing concurrency open independent instances.
type DB struct {
	db   *sql.DB
	tx   *sql.Tx
	path string

	// CurrentVersion is the generation of the database in use. Legacy
	// files are recycled to the current generation during Open, so a
	// successfully opened database always reports dbVersion.
	CurrentVersion int
}

// Record is one namespace entry as last reconciled.
type Record struct {
	// Key is the fold key of the remote path; derived, never stored by
	// callers directly.
	Key string

	// RemotePath is the decoded logical path.
	RemotePath fspath.RemotePath

	// LocalName is the escaped on-disk spelling of the leaf component.
	LocalName string

	// Kind, Size, ModTime and Fingerprint mirror domain.FileInfo.
	Kind        domain.FileType
	Size        int64
	ModTime     time.Time
	Fingerprint string

	// Tombstone marks entries deleted remotely but not yet locally.
	Tombstone bool
}

func versionedPath(root fspath.LocalPath, name string, version int) fspath.LocalPath {
	path := root
	file := fmt.Sprintf("%s_v%d.db", name, version)
	if version <= legacyDBVersion {
		file = name + ".db"
	}
	path.AppendWithSeparator(fspath.FromRelativePath(file), true)
	return path
}

// Probe reports whether any generation of the named database exists
// under root.
func Probe(root fspath.LocalPath, name string) bool {
	for _, version := range []int{dbVersion, legacyDBVersion} {
		if _, err := os.Stat(versionedPath(root, name, version).ToPath(false)); err == nil {
			return true
		}
	}
	return false
}

// Open opens the named database under root, creating it when absent.
// A legacy database found without a current one is recycled in place by
// rename, preserving its rows; CurrentVersion reflects the generation
// that ended up open.
func Open(root fspath.LocalPath, name string) (*DB, error) {
	current := versionedPath(root, name, dbVersion)
	legacy := versionedPath(root, name, legacyDBVersion)

	version := dbVersion
	if _, err := os.Stat(current.ToPath(false)); os.IsNotExist(err) {
		if _, err := os.Stat(legacy.ToPath(false)); err == nil {
			if err := os.Rename(legacy.ToPath(false), current.ToPath(false)); err != nil {
				return nil, fmt.Errorf("recycle legacy state: %w", err)
			}
			logger.Get().Info("recycled legacy state database", "path", current.ToPath(false))
		}
	}

	db, err := sql.Open("sqlite3", current.ToPath(false))
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	// Single connection: sidesteps "database is locked" under WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure state database: %w", err)
	}

	s := &DB{db: db, path: current.ToPath(false), CurrentVersion: version}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStateCorrupt, err)
	}
	return s, nil
}

func (s *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		path_key    TEXT PRIMARY KEY,
		parent_key  TEXT NOT NULL,
		remote_path TEXT NOT NULL,
		local_name  TEXT NOT NULL,
		kind        INTEGER NOT NULL,
		size        INTEGER DEFAULT 0,
		mtime       TIMESTAMP,
		fingerprint TEXT DEFAULT '',
		tombstone   INTEGER DEFAULT 0,
		updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_key);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Key derives the database key for a remote path under the endpoint's
// case policy.
func Key(path fspath.RemotePath, caseInsensitive bool) string {
	return fspath.FoldKey(fspath.Decoded(string(path)), caseInsensitive)
}

// execer returns the open transaction when one is active.
func (s *DB) execer() interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
} {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Put inserts or replaces the record for a remote path.
func (s *DB) Put(rec Record, caseInsensitive bool) error {
	key := Key(rec.RemotePath, caseInsensitive)
	parent := ""
	switch i := lastSlash(rec.RemotePath); {
	case i > 0:
		parent = Key(rec.RemotePath[:i], caseInsensitive)
	case i == 0:
		// A top-level absolute path is a child of the namespace root;
		// its parent key must match what Children("/") queries.
		parent = Key("/", caseInsensitive)
	}

	_, err := s.execer().Exec(`
		INSERT OR REPLACE INTO nodes
		(path_key, parent_key, remote_path, local_name, kind, size, mtime, fingerprint, tombstone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, parent, string(rec.RemotePath), rec.LocalName,
		int(rec.Kind), rec.Size, rec.ModTime, rec.Fingerprint, rec.Tombstone,
	)
	if err != nil {
		return fmt.Errorf("put node: %w", err)
	}
	return nil
}

// Get fetches the record for a remote path, or domain.ErrNotFound.
func (s *DB) Get(path fspath.RemotePath, caseInsensitive bool) (Record, error) {
	row := s.execer().QueryRow(`
		SELECT path_key, remote_path, local_name, kind, size, mtime, fingerprint, tombstone
		FROM nodes WHERE path_key = ?`,
		Key(path, caseInsensitive),
	)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, domain.ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get node: %w", err)
	}
	return rec, nil
}

// Children lists the direct children of a remote path, ordered by key.
func (s *DB) Children(path fspath.RemotePath, caseInsensitive bool) ([]Record, error) {
	rows, err := s.execer().Query(`
		SELECT path_key, remote_path, local_name, kind, size, mtime, fingerprint, tombstone
		FROM nodes WHERE parent_key = ? ORDER BY path_key`,
		Key(path, caseInsensitive),
	)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return records, nil
}

// Delete removes the record for a remote path. Missing rows are not an
// error.
func (s *DB) Delete(path fspath.RemotePath, caseInsensitive bool) error {
	if _, err := s.execer().Exec(`DELETE FROM nodes WHERE path_key = ?`,
		Key(path, caseInsensitive)); err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	return nil
}

// Truncate removes every record.
func (s *DB) Truncate() error {
	if _, err := s.execer().Exec(`DELETE FROM nodes`); err != nil {
		return fmt.Errorf("truncate nodes: %w", err)
	}
	return nil
}

// Begin opens a transaction; subsequent operations run inside it until
// Commit or Rollback.
func (s *DB) Begin() error {
	if s.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	s.tx = tx
	return nil
}

// InTransaction reports whether an unmatched Begin has been issued.
func (s *DB) InTransaction() bool {
	return s.tx != nil
}

// Commit closes the open transaction.
func (s *DB) Commit() error {
	if s.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback abandons the open transaction.
func (s *DB) Rollback() error {
	if s.tx == nil {
		return fmt.Errorf("no open transaction")
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// Remove permanently deletes the database files.
func (s *DB) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}
	return os.Remove(s.path)
}

// Close releases the underlying connection.
func (s *DB) Close() error {
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var kind int
	var remote string
	err := row.Scan(&rec.Key, &remote, &rec.LocalName, &kind,
		&rec.Size, &rec.ModTime, &rec.Fingerprint, &rec.Tombstone)
	if err != nil {
		return Record{}, err
	}
	rec.RemotePath = fspath.RemotePath(remote)
	rec.Kind = domain.FileType(kind)
	return rec, nil
}

func lastSlash(p fspath.RemotePath) int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return i
		}
	}
	return -1
}
