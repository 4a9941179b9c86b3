package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	goico "github.com/sergeymakinen/go-ico"

	"github.com/Mavwarf/iconforge/internal/icns"
)

// inspectCmd prints what a generated icon container holds. The format
// is picked by file extension.
func inspectCmd(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected a file to inspect\n")
		fmt.Fprintf(os.Stderr, "Usage: iconforge inspect <file>\n")
		os.Exit(1)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}

	var out strings.Builder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ico":
		err = inspectICO(&out, data)
	case ".icns":
		err = inspectICNS(&out, data)
	case ".png":
		err = inspectPNG(&out, data)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		fatal(err)
	}

	fmt.Printf("%s  %s\n", bold(filepath.Base(path)), dim(humanize.Bytes(uint64(len(data)))))
	fmt.Print(out.String())
}

func inspectICO(w *strings.Builder, data []byte) error {
	images, err := goico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %d images\n", len(images))
	for i, img := range images {
		b := img.Bounds()
		fmt.Fprintf(w, "  [%d] %dx%d\n", i+1, b.Dx(), b.Dy())
	}
	return nil
}

func inspectICNS(w *strings.Builder, data []byte) error {
	elements, err := icns.Parse(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %d elements\n", len(elements))
	for _, el := range elements {
		line := fmt.Sprintf("  %s  %s", cyan(el.Code), padL(humanize.Bytes(uint64(len(el.Payload))), colBytes))
		if cfg, err := png.DecodeConfig(bytes.NewReader(el.Payload)); err == nil {
			line += fmt.Sprintf("  %dx%d", cfg.Width, cfg.Height)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func inspectPNG(w *strings.Builder, data []byte) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %dx%d\n", cfg.Width, cfg.Height)
	return nil
}
