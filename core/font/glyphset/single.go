package glyphset

import (
	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/glyph"
)

// SingleTable holds single-byte glyphs for every code of the range [Lo, Hi),
// one byte per row. Codes without a glyph in the source are blank.
type SingleTable struct {
	Name          string
	Lo, Hi        int
	H             int
	DisplayOffset int // added to a code to get its Unicode code point
	Data          []byte
}

// The single-byte ranges of a font.
const (
	G0Lo, G0Hi             = 0x00, 0x80
	Latin1ExLo, Latin1ExHi = 0xa0, 0x100
	X0201Lo, X0201Hi       = 0xa0, 0xe0
)

// X0201Offset moves JIS X 0201 katakana to the half-width forms block.
const X0201Offset = 0xff60 - 0xa0

// BuildSingle creates a single-byte table of height h over [lo, hi) from
// glyph records. Records outside the range are ignored; glyphs with fewer
// than h rows are padded.
func BuildSingle(name string, records []glyph.Record, lo, hi, h, dispOffset int) (*SingleTable, []Drop) {
	t := &SingleTable{
		Name:          name,
		Lo:            lo,
		Hi:            hi,
		H:             h,
		DisplayOffset: dispOffset,
		Data:          make([]byte, (hi-lo)*h),
	}
	var drops []Drop
	for _, r := range records {
		if int64(r.Code) < int64(lo) || int64(r.Code) >= int64(hi) {
			continue
		}
		rows, err := glyph.Normalize(r.Rows, h, true)
		if err != nil {
			tracer().Errorf("%s: dropping glyph %02X: %v", name, r.Code, err)
			drops = append(drops, Drop{Code: r.Code, Err: core.WrapError(err, core.EINVALID,
				"glyph %02X has %d rows", r.Code, len(r.Rows))})
			continue
		}
		g := t.Glyph(int(r.Code))
		for i, row := range rows {
			if row > 0xff {
				tracer().Errorf("%s: glyph %02X row %d is wider than 8 pixels", name, r.Code, i)
			}
			g[i] = byte(row)
		}
	}
	tracer().Infof("%s: single-byte table %02X–%02X", name, lo, hi-1)
	return t, drops
}

// Len is the number of codes in the table.
func (t *SingleTable) Len() int {
	return t.Hi - t.Lo
}

// Size is the number of bytes of the table.
func (t *SingleTable) Size() int {
	return len(t.Data)
}

// Glyph returns the rows for a code of the table's range.
func (t *SingleTable) Glyph(code int) []byte {
	i := (code - t.Lo) * t.H
	return t.Data[i : i+t.H]
}
