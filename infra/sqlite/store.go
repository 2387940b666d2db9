package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS eeprom (
	addr  INTEGER PRIMARY KEY,
	value  INTEGER NOT NULL CHECK (value BETWEEN 0 AND 255)
)`

// Backing implements eeprom.Backing as one row per byte offset.
type Backing struct {
	db *sql.DB
}

func Open(path string) (*Backing, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One owner; a single connection keeps the transaction on the same handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create eeprom table: %w", err)
	}

	return &Backing{db: db}, nil
}

// Load returns the stored bytes for offsets [0, size). Rows are read in
// order and stop at the first missing offset; the caller pads the rest.
func (b *Backing) Load(ctx context.Context, size int) ([]byte, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT addr, value FROM eeprom WHERE addr >= 0 AND addr < ? ORDER BY addr`, size)
	if err != nil {
		return nil, fmt.Errorf("load eeprom: %w", err)
	}
	defer rows.Close()

	out := make([]byte, 0, size)
	for rows.Next() {
		var off, value int
		if err := rows.Scan(&off, &value); err != nil {
			return nil, fmt.Errorf("load eeprom: scan row: %w", err)
		}
		if off != len(out) {
			break
		}
		out = append(out, byte(value))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load eeprom: %w", err)
	}
	return out, nil
}

// Store upserts every offset of data in one transaction.
func (b *Backing) Store(ctx context.Context, data []byte) (err error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store eeprom: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO eeprom (addr, value) VALUES (?, ?)
		 ON CONFLICT(addr) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return fmt.Errorf("store eeprom: prepare: %w", err)
	}
	defer stmt.Close()

	for off, v := range data {
		if _, err := stmt.ExecContext(ctx, off, int(v)); err != nil {
			return fmt.Errorf("store eeprom offset %d: %w", off, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store eeprom: commit tx: %w", err)
	}
	return nil
}

func (b *Backing) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
