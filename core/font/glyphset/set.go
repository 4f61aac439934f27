package glyphset

import (
	"slices"
	"sort"

	"github.com/npillmayer/lcdfont/core/font/charset"
	"github.com/npillmayer/lcdfont/core/font/codemap"
	"github.com/npillmayer/lcdfont/core/font/glyph"
)

// Entry is a glyph of a Set.
type Entry struct {
	Code   rune   // Unicode code point
	Source uint16 // JIS code of the glyph, see Build for gaiji
	Rows   []glyph.Row
}

// Set is the glyph set of one character-set variant, keyed by Unicode code
// point.
type Set struct {
	Name    string
	h       int
	entries map[rune]Entry
	verdict map[charset.Reason]int
	gaiji   int
	clashes []rune
}

// Build selects the glyphs of src accepted by policy p, translates them with
// cm and merges the gaiji glyphs of src.
//
// The grid is visited in ascending JIS order; if two JIS codes translate to
// the same code point, the later one wins. Gaiji glyphs bypass the policy and
// replace translated glyphs of the same code point. Such a clash is a
// configuration defect and is reported by Clashes. A gaiji entry keeps the JIS
// code of the glyph it replaced as its Source; otherwise its Source is 0.
func Build(src *Source, cm *codemap.Table, p charset.Policy) *Set {
	set := &Set{
		Name:    p.Name,
		h:       src.h,
		entries: make(map[rune]Entry),
		verdict: make(map[charset.Reason]int),
	}
	src.each(func(jis, euc uint16, rows []glyph.Row) {
		uni := cm.Lookup(jis)
		v := p.Accept(euc, uni)
		set.verdict[v.Reason]++
		if !v.Accept {
			return
		}
		if prev, ok := set.entries[uni]; ok {
			tracer().Debugf("%s: JIS %04X replaces %04X at U+%04X", p.Name, jis, prev.Source, uni)
		}
		set.entries[uni] = Entry{Code: uni, Source: jis, Rows: rows}
	})
	for _, key := range src.gaijiKeys() {
		var jis uint16
		if prev, ok := set.entries[key]; ok {
			tracer().Errorf("%s: gaiji U+%04X overrides JIS %04X", p.Name, key, prev.Source)
			set.clashes = append(set.clashes, key)
			jis = prev.Source
		}
		set.entries[key] = Entry{Code: key, Source: jis, Rows: src.gaiji[key]}
		set.gaiji++
	}
	tracer().Infof("%s: %d glyphs (%d gaiji)", p.Name, len(set.entries), set.gaiji)
	return set
}

// Len returns the number of glyphs in the set.
func (s *Set) Len() int {
	return len(s.entries)
}

// H is the glyph height.
func (s *Set) H() int {
	return s.h
}

// Lookup returns the glyph for a Unicode code point.
func (s *Set) Lookup(code rune) (Entry, bool) {
	e, ok := s.entries[code]
	return e, ok
}

// Verdicts returns how many grid glyphs have been decided by each rule.
func (s *Set) Verdicts() map[charset.Reason]int {
	m := make(map[charset.Reason]int, len(s.verdict))
	for k, v := range s.verdict {
		m[k] = v
	}
	return m
}

// Clashes lists the code points where a gaiji replaced a translated glyph.
func (s *Set) Clashes() []rune {
	return append([]rune(nil), s.clashes...)
}

// Codes returns the code points of the set in ascending order.
func (s *Set) Codes() []rune {
	codes := make([]rune, 0, len(s.entries))
	for c := range s.entries {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Emit lays out the set as a sorted index and a parallel glyph data array.
func (s *Set) Emit() *Table {
	codes := s.Codes()
	t := &Table{
		Name:   s.Name,
		H:      s.h,
		Index:  make([]uint16, len(codes)),
		Source: make([]uint16, len(codes)),
		Data:   make([]byte, 0, len(codes)*s.h*2),
	}
	for i, c := range codes {
		e := s.entries[c]
		t.Index[i] = uint16(c)
		t.Source[i] = e.Source
		for _, row := range e.Rows {
			t.Data = append(t.Data, byte(row>>8), byte(row))
		}
	}
	return t
}

// Table is the emitted form of a Set.
type Table struct {
	Name   string
	H      int
	Index  []uint16 // strictly increasing
	Source []uint16 // JIS code per entry, as in Entry
	Data   []byte   // Count()·H rows of 2 bytes
}

// Count is the number of glyphs.
func (t *Table) Count() int {
	return len(t.Index)
}

// IndexBytes is the size of the index array.
func (t *Table) IndexBytes() int {
	return 2 * len(t.Index)
}

// DataBytes is the size of the glyph data array.
func (t *Table) DataBytes() int {
	return 2 * t.H * len(t.Index)
}

// Glyph returns the data rows of entry i.
func (t *Table) Glyph(i int) []byte {
	n := 2 * t.H
	return t.Data[i*n : (i+1)*n]
}

// Lookup finds a glyph by binary search over the index, the way the renderer
// does.
func (t *Table) Lookup(code rune) ([]byte, bool) {
	if code < 0 || code > 0xffff {
		return nil, false
	}
	c := uint16(code)
	i := sort.Search(len(t.Index), func(i int) bool { return t.Index[i] >= c })
	if i < len(t.Index) && t.Index[i] == c {
		return t.Glyph(i), true
	}
	return nil, false
}
