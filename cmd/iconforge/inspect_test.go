package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/Mavwarf/iconforge/internal/icns"
	"github.com/Mavwarf/iconforge/internal/ico"
)

func flatImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestInspectICO(t *testing.T) {
	var buf bytes.Buffer
	entries := []ico.Entry{
		{Size: 16, Image: flatImage(16)},
		{Size: 32, Image: flatImage(32)},
	}
	if err := ico.Encode(&buf, entries); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if err := inspectICO(&out, buf.Bytes()); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	if !strings.Contains(got, "2 images") {
		t.Errorf("missing image count:\n%s", got)
	}
	if !strings.Contains(got, "[1] 16x16") || !strings.Contains(got, "[2] 32x32") {
		t.Errorf("missing per-image lines:\n%s", got)
	}
}

func TestInspectICNS(t *testing.T) {
	var buf bytes.Buffer
	elements := []icns.Element{
		{Code: "ic04", Size: 16, Image: flatImage(16)},
		{Code: "ic05", Size: 32, Image: flatImage(32)},
	}
	if err := icns.Encode(&buf, elements); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if err := inspectICNS(&out, buf.Bytes()); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	if !strings.Contains(got, "2 elements") {
		t.Errorf("missing element count:\n%s", got)
	}
	if !strings.Contains(got, "ic04") || !strings.Contains(got, "ic05") {
		t.Errorf("missing element codes:\n%s", got)
	}
	if !strings.Contains(got, "16x16") || !strings.Contains(got, "32x32") {
		t.Errorf("missing payload dimensions:\n%s", got)
	}
}

func TestInspectICNSRejectsGarbage(t *testing.T) {
	var out strings.Builder
	if err := inspectICNS(&out, []byte("not an icns file")); err == nil {
		t.Fatal("expected error for non-ICNS data")
	}
}

func TestInspectPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, flatImage(64)); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if err := inspectPNG(&out, buf.Bytes()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "64x64") {
		t.Errorf("missing dimensions: %s", out.String())
	}
}
