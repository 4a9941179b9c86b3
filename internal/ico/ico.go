// Package ico encodes multi-resolution Windows icon (.ico) containers.
//
// Each bitmap is stored as a PNG payload. PNG entries in ICO are
// supported by Windows since Vista and keep large sizes compact. All
// multi-byte directory fields are little-endian.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
)

// DefaultSizes is the resolution ladder embedded in the application icon.
var DefaultSizes = []int{16, 32, 48, 64, 128, 256}

const (
	headerSize = 6
	entrySize  = 16

	// maxSize is the largest dimension a directory entry can record;
	// the single-byte width/height fields store 256 as 0.
	maxSize = 256
)

// Entry pairs a bitmap with the square size its directory entry claims.
type Entry struct {
	Size  int
	Image image.Image
}

// Encode writes entries to w as one .ico blob: ICONDIR header, one
// ICONDIRENTRY per entry in input order, then the PNG payloads in the
// same order. Every entry must hold a Size×Size image, sizes must be in
// 1..256, and no size may repeat.
func Encode(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("ico: no images")
	}

	seen := make(map[int]bool, len(entries))
	payloads := make([][]byte, len(entries))
	for i, e := range entries {
		if e.Image == nil {
			return fmt.Errorf("ico: image %d: nil image", i)
		}
		if e.Size < 1 || e.Size > maxSize {
			return fmt.Errorf("ico: image %d: size %d out of range 1-%d", i, e.Size, maxSize)
		}
		if b := e.Image.Bounds(); b.Dx() != e.Size || b.Dy() != e.Size {
			return fmt.Errorf("ico: image %d: bounds %dx%d, want %dx%d", i, b.Dx(), b.Dy(), e.Size, e.Size)
		}
		if seen[e.Size] {
			return fmt.Errorf("ico: duplicate size %d", e.Size)
		}
		seen[e.Size] = true

		var buf bytes.Buffer
		if err := png.Encode(&buf, e.Image); err != nil {
			return fmt.Errorf("ico: encoding %dx%d payload: %w", e.Size, e.Size, err)
		}
		payloads[i] = buf.Bytes()
	}

	buf := new(bytes.Buffer)

	// ICONDIR header.
	binary.Write(buf, binary.LittleEndian, uint16(0))            // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))            // type: 1 = ICO
	binary.Write(buf, binary.LittleEndian, uint16(len(entries))) // image count

	// One ICONDIRENTRY per image. Payload offsets are cumulative from
	// the end of the directory.
	offset := headerSize + entrySize*len(entries)
	for i, e := range entries {
		dim := byte(e.Size)
		if e.Size == maxSize {
			dim = 0
		}
		buf.WriteByte(dim) // width
		buf.WriteByte(dim) // height
		buf.WriteByte(0)   // color count (0 for truecolor)
		buf.WriteByte(0)   // reserved
		binary.Write(buf, binary.LittleEndian, uint16(1))                // color planes
		binary.Write(buf, binary.LittleEndian, uint16(32))               // bits per pixel
		binary.Write(buf, binary.LittleEndian, uint32(len(payloads[i]))) // payload size
		binary.Write(buf, binary.LittleEndian, uint32(offset))           // payload offset
		offset += len(payloads[i])
	}

	for _, p := range payloads {
		buf.Write(p)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
