package buildlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/iconforge/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// tables and indexes, and performs one-time migration from builds.log
// if it exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS builds (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT NOT NULL,
    out_dir   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS build_files (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    build_id INTEGER NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
    file_num INTEGER NOT NULL,
    name     TEXT    NOT NULL,
    format   TEXT    NOT NULL,
    bytes    INTEGER NOT NULL DEFAULT 0,
    sizes    TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_builds_timestamp ON builds(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_build_files_build ON build_files(build_id, file_num);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from flat file.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "buildlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Log(rec Record) error {
	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRecord(tx, ts.Format(time.RFC3339), rec); err != nil {
		return err
	}
	return tx.Commit()
}

// insertRecord writes one build plus its file rows inside tx.
func insertRecord(tx *sql.Tx, ts string, rec Record) error {
	res, err := tx.Exec(
		`INSERT INTO builds (timestamp, out_dir) VALUES (?, ?)`,
		ts, rec.OutDir,
	)
	if err != nil {
		return err
	}

	buildID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, f := range rec.Files {
		if _, err := tx.Exec(
			`INSERT INTO build_files (build_id, file_num, name, format, bytes, sizes)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			buildID, i+1, f.Name, f.Format, f.Bytes, JoinSizes(f.Sizes),
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Entries(days int) ([]Record, error) {
	query := `SELECT id, timestamp, out_dir FROM builds`
	var args []any
	if days > 0 {
		cutoff := DayCutoff(days).Format(time.RFC3339)
		query += ` WHERE timestamp >= ?`
		args = append(args, cutoff)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	byID := map[int64]int{}
	for rows.Next() {
		var id int64
		var tsStr, outDir string
		if err := rows.Scan(&id, &tsStr, &outDir); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		byID[id] = len(records)
		records = append(records, Record{Time: ts, OutDir: outDir})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	fRows, err := s.db.Query(
		`SELECT build_id, name, format, bytes, sizes
		 FROM build_files ORDER BY build_id, file_num`)
	if err != nil {
		return nil, err
	}
	defer fRows.Close()

	for fRows.Next() {
		var buildID, bytes int64
		var name, format, sizes string
		if err := fRows.Scan(&buildID, &name, &format, &bytes, &sizes); err != nil {
			return nil, err
		}
		idx, ok := byID[buildID]
		if !ok {
			continue
		}
		records[idx].Files = append(records[idx].Files, File{
			Name:   name,
			Format: format,
			Bytes:  bytes,
			Sizes:  parseSizes(sizes),
		})
	}
	if err := fRows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM builds WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM builds`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile reads an existing builds.log and imports its records
// into the SQLite database. On success, renames the log to
// builds.log.migrated.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}
	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return os.Rename(logPath, logPath+".migrated")
	}

	records := ParseRecords(content)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		if err := insertRecord(tx, rec.Time.Format(time.RFC3339), rec); err != nil {
			return fmt.Errorf("migrate build: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "buildlog: migrated %d builds from %s\n",
		len(records), filepath.Base(logPath))
	return os.Rename(logPath, logPath+".migrated")
}
