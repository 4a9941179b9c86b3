package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Mavwarf/iconforge/internal/buildlog"
)

func historyCmd(args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "summary":
			historySummary(args[1:])
			return
		case "clear":
			historyClear()
			return
		case "clean":
			historyClean(args[1:])
			return
		}
	}

	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: count must be a positive integer\n")
			os.Exit(1)
		}
		count = n
	}

	store := buildlog.Open()
	defer store.Close()

	records, err := store.Entries(0)
	if err != nil {
		fatal(err)
	}
	if len(records) == 0 {
		fmt.Println("No builds recorded. Run a build with --log to record history.")
		return
	}
	if len(records) > count {
		records = records[len(records)-count:]
	}

	var out strings.Builder
	renderHistory(&out, records)
	fmt.Print(out.String())
}

func historySummary(args []string) {
	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "Error: days must be a positive integer or \"all\"\n")
				os.Exit(1)
			}
			days = n
		}
	}

	store := buildlog.Open()
	defer store.Close()

	records, err := store.Entries(0)
	if err != nil {
		fatal(err)
	}
	groups := buildlog.SummarizeByDay(records, days)

	if len(groups) == 0 {
		if days == 0 {
			fmt.Println("No builds found.")
		} else {
			fmt.Println("No builds in the last", days, "days.")
		}
		return
	}

	var out strings.Builder
	renderSummaryTable(&out, groups)
	fmt.Print(out.String())
}

func historyClear() {
	store := buildlog.Open()
	defer store.Close()

	if err := store.Clear(); err != nil {
		fatal(err)
	}
	fmt.Println("Build history cleared.")
}

func historyClean(args []string) {
	if len(args) == 0 {
		// No days argument: clear everything.
		historyClear()
		return
	}

	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		fmt.Fprintf(os.Stderr, "Error: days must be a positive integer\n")
		os.Exit(1)
	}

	store := buildlog.Open()
	defer store.Close()

	removed, err := store.Clean(days)
	if err != nil {
		fatal(err)
	}
	if removed == 0 {
		fmt.Println("Nothing to clean.")
		return
	}
	fmt.Printf("Removed %d builds older than %d days.\n", removed, days)
}

// --- Table layout constants ---

const (
	colDate  = 12 // width of the date column
	colName  = 12 // width of the file name column
	colCount = 7  // width of numeric columns (Builds, Files)
	colBytes = 9  // width of the size column (fits "999.9 MB")
)

// --- ANSI color helpers (disabled when NO_COLOR is set or stdout is not a terminal) ---

var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func bold(s string) string  { return ansi("\033[1m", s) }
func dim(s string) string   { return ansi("\033[2m", s) }
func cyan(s string) string  { return ansi("\033[36m", s) }
func green(s string) string { return ansi("\033[32m", s) }

// fmtNum formats an integer with dot as thousands separator (e.g. 1234 → "1.234").
func fmtNum(n int) string {
	neg := ""
	if n < 0 {
		neg = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return neg + s
	}
	var buf strings.Builder
	r := len(s) % 3
	if r > 0 {
		buf.WriteString(s[:r])
	}
	for i := r; i < len(s); i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(s[i : i+3])
	}
	return neg + buf.String()
}

// padL pads s to width with spaces on the left.
func padL(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

// padR pads s to width with spaces on the right.
func padR(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// renderHistory writes one block per build: a header line with the
// timestamp and output directory, then one line per written file.
func renderHistory(w *strings.Builder, records []buildlog.Record) {
	for i, r := range records {
		if i > 0 {
			w.WriteString("\n")
		}
		fmt.Fprintf(w, "%s  %s\n",
			dim(r.Time.Format("2006-01-02 15:04")), cyan(r.OutDir))
		for _, f := range r.Files {
			fmt.Fprintf(w, "  %s %s  %s\n",
				padR(f.Name, colName),
				padL(humanize.Bytes(uint64(f.Bytes)), colBytes),
				dim(buildlog.JoinSizes(f.Sizes)))
		}
	}
}

// renderSummaryTable writes a per-day table of build counts and sizes.
func renderSummaryTable(w *strings.Builder, groups []buildlog.DayGroup) {
	if len(groups) == 1 {
		dg := groups[0]
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s  (%s)",
			dg.Date.Format("2006-01-02"), dg.Date.Format("Monday"))))
	} else {
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%s — %s",
			groups[0].Date.Format("2006-01-02"),
			groups[len(groups)-1].Date.Format("2006-01-02"))))
	}

	hdr := fmt.Sprintf("  %-*s %*s  %*s  %*s",
		colDate, "", colCount, "Builds", colCount, "Files", colBytes, "Size")
	w.WriteString(bold(hdr) + "\n")

	sep := dim("  " + strings.Repeat("─", colDate+1+colCount+2+colCount+2+colBytes))
	w.WriteString(sep + "\n")

	var totBuilds, totFiles int
	var totBytes int64
	for _, dg := range groups {
		fmt.Fprintf(w, "  %-*s %*s  %*s  %*s\n",
			colDate, dg.Date.Format("2006-01-02"),
			colCount, fmtNum(dg.Builds),
			colCount, fmtNum(dg.Files),
			colBytes, humanize.Bytes(uint64(dg.Bytes)))
		totBuilds += dg.Builds
		totFiles += dg.Files
		totBytes += dg.Bytes
	}

	w.WriteString(sep + "\n")
	total := fmt.Sprintf("  %-*s %*s  %*s  %*s",
		colDate, "Total",
		colCount, fmtNum(totBuilds),
		colCount, fmtNum(totFiles),
		colBytes, humanize.Bytes(uint64(totBytes)))
	w.WriteString(bold(total) + "\n")
}
