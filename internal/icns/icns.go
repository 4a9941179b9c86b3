// Package icns encodes and splits Apple icon container files.
//
// An ICNS file is a flat sequence of typed elements behind an 8 byte
// header: the magic "icns" followed by the big-endian total file
// length. Every element repeats the same shape with a 4 byte OSType
// code and a big-endian length counting the element header plus its
// payload. The modern types (ic04 and later) carry PNG payloads, which
// is all this package deals in.
package icns

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
)

// Magic identifies an ICNS container.
const Magic = "icns"

// headerSize covers both the file header and each element header: a
// 4 byte code followed by a 4 byte big-endian length.
const headerSize = 8

// IconType pairs an OSType code with the pixel size its payload
// carries.
type IconType struct {
	Code string
	Size int
}

// Table lists the PNG-payload icon types of a full icon set, in file
// order. The retina types at the end repeat pixel sizes already
// present, since a 16pt@2x slot holds a 32px image.
var Table = []IconType{
	{"ic04", 16},
	{"ic05", 32},
	{"ic06", 64},
	{"ic07", 128},
	{"ic08", 256},
	{"ic09", 512},
	{"ic10", 1024},
	{"ic11", 32},  // 16pt@2x
	{"ic12", 64},  // 32pt@2x
	{"ic13", 256}, // 128pt@2x
	{"ic14", 512}, // 256pt@2x
}

// Element is one icon slot to encode.
type Element struct {
	Code  string
	Size  int
	Image image.Image
}

// Encode writes elements to w as a single ICNS container, in the order
// given. The whole set is validated before anything is written, so a
// failed call leaves w untouched.
func Encode(w io.Writer, elements []Element) error {
	if len(elements) == 0 {
		return fmt.Errorf("icns: no elements")
	}
	seen := make(map[string]bool, len(elements))
	for i, el := range elements {
		if len(el.Code) != 4 {
			return fmt.Errorf("icns: element %d: code %q is not 4 bytes", i, el.Code)
		}
		if seen[el.Code] {
			return fmt.Errorf("icns: duplicate code %q", el.Code)
		}
		seen[el.Code] = true
		if el.Image == nil {
			return fmt.Errorf("icns: element %d (%s): nil image", i, el.Code)
		}
		b := el.Image.Bounds()
		if b.Dx() != el.Size || b.Dy() != el.Size {
			return fmt.Errorf("icns: element %d (%s): bounds %dx%d, want %dx%d",
				i, el.Code, b.Dx(), b.Dy(), el.Size, el.Size)
		}
	}

	payloads := make([][]byte, len(elements))
	total := uint32(headerSize)
	for i, el := range elements {
		var buf bytes.Buffer
		if err := png.Encode(&buf, el.Image); err != nil {
			return fmt.Errorf("icns: encode %s: %w", el.Code, err)
		}
		payloads[i] = buf.Bytes()
		total += uint32(headerSize + buf.Len())
	}

	out := new(bytes.Buffer)
	out.Grow(int(total))
	out.WriteString(Magic)
	binary.Write(out, binary.BigEndian, total)
	for i, el := range elements {
		out.WriteString(el.Code)
		binary.Write(out, binary.BigEndian, uint32(headerSize+len(payloads[i])))
		out.Write(payloads[i])
	}

	_, err := w.Write(out.Bytes())
	return err
}

// RawElement is one element as found in an existing container, before
// any payload interpretation.
type RawElement struct {
	Code    string
	Payload []byte
}

// Parse splits an ICNS container into its raw elements. Payload slices
// alias data.
func Parse(data []byte) ([]RawElement, error) {
	if len(data) < headerSize || string(data[:4]) != Magic {
		return nil, fmt.Errorf("icns: missing %q header", Magic)
	}
	if total := binary.BigEndian.Uint32(data[4:8]); int(total) != len(data) {
		return nil, fmt.Errorf("icns: header says %d bytes, file has %d", total, len(data))
	}

	var elements []RawElement
	for off := headerSize; off < len(data); {
		if off+headerSize > len(data) {
			return nil, fmt.Errorf("icns: truncated element header at offset %d", off)
		}
		code := string(data[off : off+4])
		length := int(binary.BigEndian.Uint32(data[off+4 : off+headerSize]))
		if length < headerSize || off+length > len(data) {
			return nil, fmt.Errorf("icns: element %s: bad length %d at offset %d", code, length, off)
		}
		elements = append(elements, RawElement{
			Code:    code,
			Payload: data[off+headerSize : off+length],
		})
		off += length
	}
	return elements, nil
}
