package buildlog

import (
	"strconv"
	"strings"
	"time"
)

// Record is one recorded icon build.
type Record struct {
	Time   time.Time
	OutDir string
	Files  []File
}

// File describes a single artifact written during a build.
type File struct {
	Name   string // base name, e.g. "icon.ico"
	Format string // "ico", "icns", or "png"
	Bytes  int64
	Sizes  []int // pixel sizes contained, in written order
}

// TotalBytes sums the byte counts of all files in the record.
func (r Record) TotalBytes() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Bytes
	}
	return n
}

// JoinSizes renders sizes as a comma-separated list, e.g. "16,32,48".
func JoinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
