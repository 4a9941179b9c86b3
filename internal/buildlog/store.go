package buildlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mavwarf/iconforge/internal/paths"
)

// Store abstracts build history storage. SQLiteStore is the primary
// backend; FileStore (flat log file) remains as the fallback when the
// database cannot be opened.
type Store interface {
	// Write
	Log(rec Record) error

	// Read
	Entries(days int) ([]Record, error) // parsed records, 0 = all

	// Maintenance
	Clean(days int) (int, error) // remove old records, return removed count
	Clear() error                // delete all data

	// Metadata
	Path() string
	Close() error
}

// Open returns the store for the default data directory: SQLite at
// builds.db, or the flat builds.log when the database cannot be opened.
func Open() Store {
	dir := paths.DataDir()
	s, err := NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "buildlog: %v (using flat log)\n", err)
		return NewFileStore(filepath.Join(dir, paths.LogFileName))
	}
	return s
}
