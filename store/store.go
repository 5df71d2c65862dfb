// Package store persists loaded-unit records in a local SQLite database,
// so a player restart can recognize previously loaded compiled units by
// content hash without reparsing them.
package store

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/emberscript/ember/vm"
	"github.com/emberscript/ember/vm/wire"
)

// ErrUnitNotFound indicates the requested unit record doesn't exist.
var ErrUnitNotFound = errors.New("unit not found")

var log = commonlog.GetLogger("ember.store")

// UnitStore is a SQLite-backed cache of unit records keyed by content
// hash. Records are stored as canonical CBOR blobs.
type UnitStore struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if necessary) a unit store at dbPath.
func Open(dbPath string) (*UnitStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS units (
		hash TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		record BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	log.Debugf("opened unit store at %s", dbPath)
	return &UnitStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *UnitStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put stores a unit's record, replacing any previous record for the same
// content hash.
func (s *UnitStore) Put(u *vm.Unit) error {
	rec := wire.FromUnit(u)
	blob, err := wire.MarshalUnitRecord(rec)
	if err != nil {
		return fmt.Errorf("encoding unit %s: %w", u.Name, err)
	}

	key := hex.EncodeToString(u.Hash[:])
	_, err = s.db.Exec(
		`INSERT INTO units (hash, name, record) VALUES (?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET name = excluded.name, record = excluded.record`,
		key, u.Name, blob,
	)
	if err != nil {
		return fmt.Errorf("storing unit %s: %w", u.Name, err)
	}
	log.Debugf("stored unit %s (%s)", u.Name, key[:12])
	return nil
}

// Get returns the record for a content hash, or ErrUnitNotFound.
func (s *UnitStore) Get(hash [32]byte) (*wire.UnitRecord, error) {
	key := hex.EncodeToString(hash[:])

	var blob []byte
	err := s.db.QueryRow(`SELECT record FROM units WHERE hash = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading unit %s: %w", key[:12], err)
	}
	return wire.UnmarshalUnitRecord(blob)
}

// Has reports whether a content hash is cached.
func (s *UnitStore) Has(hash [32]byte) (bool, error) {
	key := hex.EncodeToString(hash[:])

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM units WHERE hash = ?`, key).Scan(&n); err != nil {
		return false, fmt.Errorf("checking unit %s: %w", key[:12], err)
	}
	return n > 0, nil
}

// List returns the records of every cached unit, ordered by name.
func (s *UnitStore) List() ([]*wire.UnitRecord, error) {
	rows, err := s.db.Query(`SELECT record FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	var records []*wire.UnitRecord
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		rec, err := wire.UnmarshalUnitRecord(blob)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a cached record. Missing hashes are not an error.
func (s *UnitStore) Delete(hash [32]byte) error {
	key := hex.EncodeToString(hash[:])
	if _, err := s.db.Exec(`DELETE FROM units WHERE hash = ?`, key); err != nil {
		return fmt.Errorf("deleting unit %s: %w", key[:12], err)
	}
	return nil
}
