package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Mavwarf/iconforge/internal/buildlog"
	"github.com/Mavwarf/iconforge/internal/icns"
	"github.com/Mavwarf/iconforge/internal/ico"
	"github.com/Mavwarf/iconforge/internal/icon"
	"github.com/Mavwarf/iconforge/internal/paths"
)

const (
	icoName  = "icon.ico"
	icnsName = "icon.icns"
	pngName  = "icon.png"
	pngSize  = 512
)

// runGenerate renders the artwork and writes all three containers into
// dir, or into the default assets directory when dir is empty.
func runGenerate(dir string, logEnabled bool) {
	outDir, err := resolveOutputDir(dir)
	if err != nil {
		fatal(err)
	}

	files, err := generate(outDir, os.Stdout)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("\nAll icons created in %s\n", outDir)

	if !logEnabled {
		return
	}

	// History is best-effort: a failed write never fails the build.
	store := buildlog.Open()
	defer store.Close()
	rec := buildlog.Record{Time: time.Now(), OutDir: outDir, Files: files}
	if err := store.Log(rec); err != nil {
		fmt.Fprintf(os.Stderr, "buildlog: %v\n", err)
	}
}

// generate writes icon.ico, icon.icns, and icon.png into dir, printing
// one confirmation line per file to w. Files are written one at a time
// in that order, so an error leaves the earlier files in place.
func generate(dir string, w io.Writer) ([]buildlog.File, error) {
	rendered := map[int]image.Image{}
	render := func(size int) image.Image {
		img, ok := rendered[size]
		if !ok {
			img = icon.Draw(size)
			rendered[size] = img
		}
		return img
	}

	var files []buildlog.File
	var buf bytes.Buffer

	// Windows icon.
	entries := make([]ico.Entry, len(ico.DefaultSizes))
	for i, size := range ico.DefaultSizes {
		entries[i] = ico.Entry{Size: size, Image: render(size)}
	}
	if err := ico.Encode(&buf, entries); err != nil {
		return nil, err
	}
	f, err := writeFile(dir, icoName, "ico", buf.Bytes(), append([]int(nil), ico.DefaultSizes...), w)
	if err != nil {
		return nil, err
	}
	files = append(files, f)

	// macOS icon. Slots share rendered sizes, so the record lists each
	// pixel size once.
	elements := make([]icns.Element, len(icns.Table))
	var icnsSizes []int
	seen := map[int]bool{}
	for i, it := range icns.Table {
		elements[i] = icns.Element{Code: it.Code, Size: it.Size, Image: render(it.Size)}
		if !seen[it.Size] {
			seen[it.Size] = true
			icnsSizes = append(icnsSizes, it.Size)
		}
	}
	buf.Reset()
	if err := icns.Encode(&buf, elements); err != nil {
		return nil, err
	}
	f, err = writeFile(dir, icnsName, "icns", buf.Bytes(), icnsSizes, w)
	if err != nil {
		return nil, err
	}
	files = append(files, f)

	// Flat PNG.
	buf.Reset()
	if err := png.Encode(&buf, render(pngSize)); err != nil {
		return nil, err
	}
	f, err = writeFile(dir, pngName, "png", buf.Bytes(), []int{pngSize}, w)
	if err != nil {
		return nil, err
	}
	files = append(files, f)

	return files, nil
}

// writeFile stores one artifact and prints its confirmation line.
func writeFile(dir, name, format string, data []byte, sizes []int, w io.Writer) (buildlog.File, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, paths.FilePerm); err != nil {
		return buildlog.File{}, err
	}
	fmt.Fprintf(w, "%s Created %s (%s)\n", green("✓"), path, humanize.Bytes(uint64(len(data))))
	return buildlog.File{Name: name, Format: format, Bytes: int64(len(data)), Sizes: sizes}, nil
}

// resolveOutputDir picks the output directory, creating it if needed.
func resolveOutputDir(arg string) (string, error) {
	dir := arg
	if dir == "" {
		dir = defaultOutputDir()
	}
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return "", err
	}
	return dir, nil
}

// defaultOutputDir returns the assets directory next to the binary's
// parent, matching a bin/ + assets/ project layout. Falls back to
// ./assets when the executable path cannot be determined.
func defaultOutputDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "assets"
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "assets")
}
