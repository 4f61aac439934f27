/*
Package glyph holds the raw bitmap representation of a single glyph and the
row normalization applied to every glyph before it enters an output table.

A glyph is a sequence of rows, top to bottom. Each row is a bitmask with the
leftmost pixel in the most significant bit of the occupied bytes: a glyph of
width 12 occupies bits 15…4 of a row, a glyph of width 6 occupies bits 7…2.

Normalization

Some glyph sources carry one row more than the nominal font height, an
artifact of the tools the bitmaps have been authored with. Normalize removes
that row using a fixed rule:

	rows[H] != 0 and rows[0] == 0   →  drop rows[0]
	rows[H] != 0 and rows[0] != 0   →  drop rows[H/2+1]
	rows[H] == 0                    →  drop rows[H]

The second case compensates a vertical centering offset of the authoring tool.
The rule is applied exactly once; sources with more than one extra row are
rejected.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyph

import (
	"errors"
	"fmt"
	"strings"
)

// Row is a single line of pixels of a glyph.
type Row uint16

// Supplemental is the first raw source code of the gaiji plane. Glyphs at or
// above it are addressed by Unicode code point minus Supplemental.
const Supplemental = 0x10000

// Record is a glyph as read from a glyph source: its raw code in the source
// encoding and its bitmap rows.
type Record struct {
	Code uint32
	Rows []Row
}

// IsSupplemental is true for glyphs outside the 16-bit source code space.
func (r Record) IsSupplemental() bool {
	return r.Code >= Supplemental
}

// Blank returns a glyph of h empty rows.
func Blank(h int) []Row {
	return make([]Row, h)
}

// Errors returned by Normalize.
var (
	ErrShortGlyph = errors.New("glyph has fewer rows than the font height")
	ErrTallGlyph  = errors.New("glyph has more than one extra row")
)

// Normalize returns a copy of rows with exactly h entries.
//
// If rows has fewer than h entries, it is padded with blank rows if pad is
// set (the single-byte tables do this), otherwise ErrShortGlyph is returned.
// A single extra row is removed according to the package rule.
func Normalize(rows []Row, h int, pad bool) ([]Row, error) {
	if h <= 0 {
		return nil, fmt.Errorf("invalid glyph height %d", h)
	}
	n := len(rows)
	switch {
	case n < h:
		if !pad {
			return nil, fmt.Errorf("%w: %d < %d", ErrShortGlyph, n, h)
		}
		r := make([]Row, h)
		copy(r, rows)
		return r, nil
	case n == h:
		return append([]Row(nil), rows...), nil
	case n > h+1:
		return nil, fmt.Errorf("%w: %d rows for height %d", ErrTallGlyph, n, h)
	}
	var drop int
	if rows[h] != 0 {
		if rows[0] == 0 {
			drop = 0
		} else {
			drop = h/2 + 1
		}
	} else {
		drop = h
	}
	r := make([]Row, 0, h)
	r = append(r, rows[:drop]...)
	r = append(r, rows[drop+1:]...)
	return r, nil
}

// String draws the glyph with '@' for set pixels, one line per row, w pixels
// wide. Used in trace output.
func String(rows []Row, w int) string {
	if w <= 0 || w > 16 {
		w = 16
	}
	bitlen := (w + 7) / 8 * 8
	var b strings.Builder
	for _, row := range rows {
		for x := 0; x < w; x++ {
			if row&(1<<(bitlen-1-x)) != 0 {
				b.WriteByte('@')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
