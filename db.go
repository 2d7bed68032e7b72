package main

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with the rename journal queries.
type DB struct {
	*sql.DB
}

func openAndInitDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // SQLite works best with single connection
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	db := &DB{sqlDB}

	schema := `
CREATE TABLE IF NOT EXISTS renames (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id TEXT NOT NULL,
	src_path TEXT NOT NULL,
	dest_path TEXT NOT NULL,
	pattern TEXT NOT NULL,
	renamed_at TEXT NOT NULL,
	undone INTEGER NOT NULL DEFAULT 0,
	undone_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_renames_batch ON renames(batch_id);`
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) clearDBTables() error {
	_, err := db.Exec(`DELETE FROM renames`)
	return err
}

// RenameRecord is one executed rename.
type RenameRecord struct {
	BatchID string
	Source  string
	Target  string
	Pattern string
}

func (db *DB) insertRename(r RenameRecord) (int64, error) {
	var id int64
	err := withBusyRetry(func() error {
		res, err := db.Exec(
			`INSERT INTO renames (batch_id, src_path, dest_path, pattern, renamed_at) VALUES (?, ?, ?, ?, ?)`,
			r.BatchID, r.Source, r.Target, r.Pattern, time.Now().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	return id, err
}

func (db *DB) markUndone(id int64) error {
	return withBusyRetry(func() error {
		_, err := db.Exec(`UPDATE renames SET undone=1, undone_at=? WHERE id=?`, time.Now().Format(time.RFC3339), id)
		return err
	})
}

// withBusyRetry retries fn while SQLite reports the database as locked.
func withBusyRetry(fn func() error) error {
	maxRetries := 3
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if errStr := err.Error(); !strings.Contains(errStr, "database is locked") && !strings.Contains(errStr, "SQLITE_BUSY") {
			return err
		}
		time.Sleep(time.Duration(i+1) * 50 * time.Millisecond)
	}
	return err
}

// RenameRow is a journal entry as served by the API.
type RenameRow struct {
	ID        int64  `json:"id"`
	BatchID   string `json:"batchId"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Pattern   string `json:"pattern"`
	RenamedAt string `json:"renamedAt"`
	Undone    bool   `json:"undone"`
}

const renameColumns = `id, batch_id, src_path, dest_path, pattern, renamed_at, undone`

func (db *DB) listRenameRows(offset, limit int64) ([]RenameRow, error) {
	rows, err := db.Query(`SELECT `+renameColumns+` FROM renames ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanRenameRows(rows)
}

// listBatchRows returns the entries of one batch in the order they were
// executed.
func (db *DB) listBatchRows(batchID string) ([]RenameRow, error) {
	rows, err := db.Query(`SELECT `+renameColumns+` FROM renames WHERE batch_id = ? ORDER BY id`, batchID)
	if err != nil {
		return nil, err
	}
	return scanRenameRows(rows)
}

func scanRenameRows(rows *sql.Rows) ([]RenameRow, error) {
	defer rows.Close()
	out := []RenameRow{}
	for rows.Next() {
		var r RenameRow
		var undoneInt int
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Source, &r.Target, &r.Pattern, &r.RenamedAt, &undoneInt); err != nil {
			return nil, err
		}
		r.Undone = undoneInt == 1
		out = append(out, r)
	}
	return out, rows.Err()
}
