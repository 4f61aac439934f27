package glyphset

import (
	"fmt"
	"slices"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/codemap"
	"github.com/npillmayer/lcdfont/core/font/glyph"
)

// GridSize is the number of rows and cells of the JIS grid.
const GridSize = 0x60

const (
	jisBase = 0x20
	eucBase = 0xa0
)

// Drop reports a glyph which did not make it into a Source or table.
type Drop struct {
	Code uint32
	Err  error
}

func (d Drop) String() string {
	return fmt.Sprintf("glyph %04X: %v", d.Code, d.Err)
}

// Source holds the double-byte glyphs of a font, normalized to height H.
// A Source is immutable once created and may be shared by concurrent Builds.
type Source struct {
	h     int
	grid  [GridSize][GridSize][]glyph.Row
	n     int
	gaiji map[rune][]glyph.Row
}

// NewSource normalizes glyph records and places them either in the JIS grid
// or, for supplemental codes, in the gaiji table. Records are processed in
// order, a later glyph for the same position replaces an earlier one.
//
// Glyphs which cannot be placed are dropped and reported; none of them is a
// fatal error.
func NewSource(h int, records ...[]glyph.Record) (*Source, []Drop) {
	src := &Source{h: h, gaiji: make(map[rune][]glyph.Row)}
	var drops []Drop
	for _, recs := range records {
		for _, r := range recs {
			if err := src.place(r); err != nil {
				tracer().Errorf("dropping glyph %04X: %v", r.Code, err)
				drops = append(drops, Drop{Code: r.Code, Err: err})
			}
		}
	}
	tracer().Infof("glyph source: %d double-byte glyphs, %d gaiji, %d dropped",
		src.n, len(src.gaiji), len(drops))
	return src, drops
}

func (src *Source) place(r glyph.Record) error {
	rows, err := glyph.Normalize(r.Rows, src.h, false)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "glyph %04X has %d rows", r.Code, len(r.Rows))
	}
	if r.IsSupplemental() {
		key := r.Code - glyph.Supplemental
		if key > 0xffff {
			return core.Error(core.ERANGE, "gaiji %05X outside of the 16-bit index space", r.Code)
		}
		if _, dup := src.gaiji[rune(key)]; dup {
			tracer().Infof("gaiji U+%04X defined more than once", key)
		}
		src.gaiji[rune(key)] = rows
		return nil
	}
	jis := codemap.EUCToJIS(r.Code)
	hi, lo := int(jis>>8)-jisBase, int(jis&0xff)-jisBase
	if hi < 0 || hi >= GridSize || lo < 0 || lo >= GridSize {
		return core.Error(core.ERANGE, "index out of range: %04x", r.Code)
	}
	if src.grid[hi][lo] == nil {
		src.n++
	}
	src.grid[hi][lo] = rows
	return nil
}

// H is the glyph height of the source.
func (src *Source) H() int {
	return src.h
}

// Len returns the number of glyphs in the grid.
func (src *Source) Len() int {
	return src.n
}

// GaijiLen returns the number of gaiji glyphs.
func (src *Source) GaijiLen() int {
	return len(src.gaiji)
}

// Glyph returns the rows at grid position (hi, lo), or nil.
func (src *Source) Glyph(hi, lo int) []glyph.Row {
	if hi < 0 || hi >= GridSize || lo < 0 || lo >= GridSize {
		return nil
	}
	return src.grid[hi][lo]
}

// each calls f for every glyph in the grid in ascending JIS order.
func (src *Source) each(f func(jis, euc uint16, rows []glyph.Row)) {
	for hi := 0; hi < GridSize; hi++ {
		for lo := 0; lo < GridSize; lo++ {
			rows := src.grid[hi][lo]
			if len(rows) == 0 {
				continue
			}
			jis := uint16((hi+jisBase)<<8 | (lo + jisBase))
			euc := uint16((hi+eucBase)<<8 | (lo + eucBase))
			f(jis, euc, rows)
		}
	}
}

// gaijiKeys returns the gaiji code points in ascending order.
func (src *Source) gaijiKeys() []rune {
	keys := make([]rune, 0, len(src.gaiji))
	for k := range src.gaiji {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
