package buildlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/iconforge/internal/paths"
)

// FileStore implements Store using a flat log file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

// Log appends one block per build: a summary line followed by one
// detail line per written file, terminated by a blank line.
func (f *FileStore) Log(rec Record) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	tsStr := ts.Format(time.RFC3339)

	fmt.Fprintf(file, "%s  dir=%q  files=%d\n", tsStr, rec.OutDir, len(rec.Files))
	for i, fl := range rec.Files {
		fmt.Fprintf(file, "%s    file[%d] %s  name=%s  bytes=%d  sizes=%s\n",
			tsStr, i+1, fl.Format, fl.Name, fl.Bytes, JoinSizes(fl.Sizes))
	}
	fmt.Fprintln(file)
	return nil
}

func (f *FileStore) Entries(days int) ([]Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	records := ParseRecords(string(data))
	if days <= 0 {
		return records, nil
	}

	cutoff := DayCutoff(days)
	var filtered []Record
	for _, r := range records {
		if !r.Time.In(cutoff.Location()).Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func (f *FileStore) Clean(days int) (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return 0, nil
	}

	origBlocks := len(SplitBlocks(content))
	filtered := FilterBlocksByDays(content, days)

	keptBlocks := 0
	if filtered != "" {
		keptBlocks = len(SplitBlocks(filtered))
	}
	removed := origBlocks - keptBlocks

	if filtered == "" {
		_ = os.Remove(f.path)
		return removed, nil
	}

	out := filtered + "\n\n"
	if err := os.WriteFile(f.path, []byte(out), paths.FilePerm); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}
