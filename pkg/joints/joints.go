// Package joints reads per-link joint offset records and composes them
// into the cumulative translation chain used to express each link's
// geometry in its joint frame.
package joints

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// maxLineBytes bounds a single joint record line; anything past it is
// discarded.
const maxLineBytes = 256

// Offset is one joint record: translation x, y, z followed by three
// reserved components.
type Offset [6]float64

// Translation returns the translation part of the record.
func (o Offset) Translation() r3.Vec {
	return r3.Vec{X: o[0], Y: o[1], Z: o[2]}
}

// Parse reads joint offset records, one per non-blank line. Each line
// holds up to 6 whitespace-separated decimal numbers; missing trailing
// fields are zero, malformed numeric tokens parse as zero, and fields
// beyond the sixth are ignored. A line longer than maxLineBytes is
// truncated there, never an error.
func Parse(r io.Reader) ([]Offset, error) {
	var offsets []Offset

	br := bufio.NewReaderSize(r, maxLineBytes)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("joints: read: %w", err)
		}
		line := strings.TrimSpace(string(chunk))
		// Discard the remainder of an over-long line.
		for isPrefix {
			_, isPrefix, err = br.ReadLine()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("joints: read: %w", err)
			}
		}
		if line == "" {
			continue
		}
		var o Offset
		for i, field := range strings.Fields(line) {
			if i >= len(o) {
				break
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = 0
			}
			o[i] = v
		}
		offsets = append(offsets, o)
	}
	return offsets, nil
}

// ParseFile reads joint offset records from the file at path.
func ParseFile(path string) ([]Offset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("joints: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// CumulativeTranslation returns the negative sum of the translation
// components of all offsets at position <= linkIndex. Links past the last
// record carry the same translation as the last joint-bearing link: child
// geometry sits in a frame translated backward along the kinematic chain,
// and a link without its own joint record inherits its predecessor's
// frame.
func CumulativeTranslation(offsets []Offset, linkIndex int) r3.Vec {
	var t r3.Vec
	for j := 0; j < len(offsets) && j <= linkIndex; j++ {
		t = r3.Sub(t, offsets[j].Translation())
	}
	return t
}
