package buildlog

import (
	"fmt"
	"testing"
	"time"
)

func TestParseRecords_FullBuild(t *testing.T) {
	content := "2026-02-22T10:00:00+01:00  dir=\"/home/u/assets\"  files=3\n" +
		"2026-02-22T10:00:00+01:00    file[1] ico  name=icon.ico  bytes=40536  sizes=16,32,48,64,128,256\n" +
		"2026-02-22T10:00:00+01:00    file[2] icns  name=icon.icns  bytes=812345  sizes=16,32,64,128,256,512,1024\n" +
		"2026-02-22T10:00:00+01:00    file[3] png  name=icon.png  bytes=24189  sizes=512\n"

	records := ParseRecords(content)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.OutDir != "/home/u/assets" {
		t.Errorf("dir = %q, want %q", r.OutDir, "/home/u/assets")
	}
	if len(r.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(r.Files))
	}

	ico := r.Files[0]
	if ico.Format != "ico" || ico.Name != "icon.ico" {
		t.Errorf("file[1] = %s %s, want ico icon.ico", ico.Format, ico.Name)
	}
	if ico.Bytes != 40536 {
		t.Errorf("file[1] bytes = %d, want 40536", ico.Bytes)
	}
	if got := JoinSizes(ico.Sizes); got != "16,32,48,64,128,256" {
		t.Errorf("file[1] sizes = %q, want %q", got, "16,32,48,64,128,256")
	}
	if got := r.TotalBytes(); got != 40536+812345+24189 {
		t.Errorf("total bytes = %d, want %d", got, 40536+812345+24189)
	}
}

func TestParseRecords_DirWithSpaces(t *testing.T) {
	dir := `/home/u/My Projects/app assets`
	content := fmt.Sprintf("2026-02-22T10:00:00+01:00  dir=%q  files=0\n", dir)

	records := ParseRecords(content)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].OutDir != dir {
		t.Errorf("dir = %q, want %q", records[0].OutDir, dir)
	}
}

func TestParseRecords_MultipleBlocks(t *testing.T) {
	content := "2026-02-21T09:00:00+01:00  dir=\"/a\"  files=1\n" +
		"2026-02-21T09:00:00+01:00    file[1] png  name=icon.png  bytes=100  sizes=512\n" +
		"\n" +
		"2026-02-22T10:00:00+01:00  dir=\"/b\"  files=0\n\n"

	records := ParseRecords(content)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].OutDir != "/a" || records[1].OutDir != "/b" {
		t.Errorf("dirs = %q, %q, want /a, /b", records[0].OutDir, records[1].OutDir)
	}
	if len(records[0].Files) != 1 || len(records[1].Files) != 0 {
		t.Errorf("file counts = %d, %d, want 1, 0", len(records[0].Files), len(records[1].Files))
	}
}

func TestParseRecords_SkipsMalformed(t *testing.T) {
	content := "not a log line\n\n" +
		"2026-02-22T10:00:00+01:00  something=else\n\n" +
		"2026-02-22T10:00:00+01:00    file[1] ico  name=orphan.ico  bytes=1  sizes=16\n\n" +
		"2026-02-22T11:00:00+01:00  dir=\"/ok\"  files=0\n\n"

	records := ParseRecords(content)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].OutDir != "/ok" {
		t.Errorf("dir = %q, want /ok", records[0].OutDir)
	}
}

func TestParseRecords_Empty(t *testing.T) {
	if records := ParseRecords(""); records != nil {
		t.Errorf("expected nil for empty content, got %v", records)
	}
	if records := ParseRecords("\n\n\n"); records != nil {
		t.Errorf("expected nil for blank content, got %v", records)
	}
}

func TestExtractTimestamp(t *testing.T) {
	ts, ok := ExtractTimestamp("2026-02-22T10:00:00+01:00  dir=\"/a\"  files=0")
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	if ts.Year() != 2026 || ts.Month() != 2 || ts.Day() != 22 {
		t.Errorf("unexpected timestamp %v", ts)
	}

	if _, ok := ExtractTimestamp("no separator here"); ok {
		t.Error("expected failure without double-space separator")
	}
	if _, ok := ExtractTimestamp("garbage  dir=\"/a\""); ok {
		t.Error("expected failure on non-timestamp prefix")
	}
}

func TestJoinSizesRoundTrip(t *testing.T) {
	sizes := []int{16, 32, 256, 1024}
	got := parseSizes(JoinSizes(sizes))
	if len(got) != len(sizes) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(sizes))
	}
	for i := range sizes {
		if got[i] != sizes[i] {
			t.Errorf("sizes[%d] = %d, want %d", i, got[i], sizes[i])
		}
	}

	if JoinSizes(nil) != "" {
		t.Error("JoinSizes(nil) should be empty")
	}
	if parseSizes("") != nil {
		t.Error("parseSizes(\"\") should be nil")
	}
}

func TestSummarizeByDay(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	records := []Record{
		{Time: now, OutDir: "/a", Files: []File{{Name: "icon.png", Format: "png", Bytes: 100}}},
		{Time: now, OutDir: "/b", Files: []File{
			{Name: "icon.ico", Format: "ico", Bytes: 200},
			{Name: "icon.icns", Format: "icns", Bytes: 300},
		}},
		{Time: yesterday, OutDir: "/c", Files: []File{{Name: "icon.png", Format: "png", Bytes: 50}}},
	}

	groups := SummarizeByDay(records, 0)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}

	// Sorted descending: today first.
	today := groups[0]
	if today.Builds != 2 || today.Files != 3 || today.Bytes != 600 {
		t.Errorf("today = %d builds, %d files, %d bytes; want 2, 3, 600",
			today.Builds, today.Files, today.Bytes)
	}
	if !groups[0].Date.After(groups[1].Date) {
		t.Error("groups not sorted descending by date")
	}

	// days=1 keeps only today.
	groups = SummarizeByDay(records, 1)
	if len(groups) != 1 {
		t.Fatalf("expected 1 day group for days=1, got %d", len(groups))
	}
	if groups[0].Builds != 2 {
		t.Errorf("today builds = %d, want 2", groups[0].Builds)
	}
}

func TestFilterBlocksByDays(t *testing.T) {
	now := time.Now()
	recent := now.Format(time.RFC3339) + "  dir=\"/new\"  files=0"
	old := now.AddDate(0, 0, -30).Format(time.RFC3339) + "  dir=\"/old\"  files=0"
	content := old + "\n\n" + recent + "\n\n"

	filtered := FilterBlocksByDays(content, 7)
	records := ParseRecords(filtered)
	if len(records) != 1 {
		t.Fatalf("expected 1 record after filter, got %d", len(records))
	}
	if records[0].OutDir != "/new" {
		t.Errorf("kept dir = %q, want /new", records[0].OutDir)
	}
}

func TestSplitBlocks(t *testing.T) {
	blocks := SplitBlocks("a\nb\n\n\n\nc\n\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0] != "a\nb" || blocks[1] != "c" {
		t.Errorf("blocks = %q", blocks)
	}
}
