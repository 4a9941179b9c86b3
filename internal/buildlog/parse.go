package buildlog

import (
	"strconv"
	"strings"
	"time"
)

// ParseRecords splits log content on blank lines and parses each block
// into a Record. The first line of a block carries the build summary;
// indented "file[N]" lines carry per-artifact detail. Malformed blocks
// and lines are silently skipped.
func ParseRecords(content string) []Record {
	content = strings.TrimRight(content, "\n\r ")
	if content == "" {
		return nil
	}

	var records []Record
	for _, block := range SplitBlocks(content) {
		lines := strings.Split(block, "\n")
		first := lines[0]
		if strings.Contains(first, "file[") {
			continue
		}

		ts, ok := ExtractTimestamp(first)
		if !ok {
			continue
		}
		if extractField(first, "files") == "" {
			continue
		}

		rec := Record{Time: ts, OutDir: extractQuotedField(first, "dir")}
		for _, line := range lines[1:] {
			if f, ok := parseFileLine(line); ok {
				rec.Files = append(rec.Files, f)
			}
		}
		records = append(records, rec)
	}
	return records
}

// parseFileLine extracts one File from a detail line like:
//
//	2026-01-01T00:00:00Z    file[1] ico  name=icon.ico  bytes=40536  sizes=16,32
func parseFileLine(line string) (File, bool) {
	idx := strings.Index(line, "file[")
	if idx < 0 {
		return File{}, false
	}

	after := line[idx+5:]
	bracket := strings.Index(after, "]")
	if bracket < 0 {
		return File{}, false
	}

	// After "] " is "format  name=...".
	rest := strings.TrimLeft(after[bracket+1:], " ")
	spaceIdx := strings.Index(rest, " ")
	if spaceIdx < 0 {
		return File{}, false
	}

	f := File{
		Format: rest[:spaceIdx],
		Name:   extractField(rest, "name"),
		Sizes:  parseSizes(extractField(rest, "sizes")),
	}
	if b := extractField(rest, "bytes"); b != "" {
		f.Bytes, _ = strconv.ParseInt(b, 10, 64)
	}
	if f.Name == "" {
		return File{}, false
	}
	return f, true
}

// parseSizes reads a comma-separated size list ("16,32,48") back into ints.
func parseSizes(s string) []int {
	if s == "" {
		return nil
	}
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes
}

// ExtractTimestamp parses the RFC3339 timestamp at the start of a log line
// (everything before the first "  " double-space separator). Returns the
// parsed time and true on success, or zero time and false on failure.
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// extractField returns the value after "key=" in a space-separated line.
// Returns "" if not found.
func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// extractQuotedField returns the %q-decoded value after `key="` in a
// line. Quoted values may contain spaces, so plain field splitting
// cannot be used. Returns "" if not found or malformed.
func extractQuotedField(line, key string) string {
	prefix := key + `="`
	idx := strings.Index(line, prefix)
	if idx < 0 {
		return ""
	}
	return extractQuoted(line[idx+len(key)+1:])
}

// extractQuoted extracts a Go %q-encoded string from the start of s.
// It finds the matching closing quote (respecting backslash escapes),
// then uses strconv.Unquote to decode the value. Returns "" on failure.
func extractQuoted(s string) string {
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++ // skip escaped character
			continue
		}
		if s[i] == '"' {
			text, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return ""
			}
			return text
		}
	}
	return ""
}
