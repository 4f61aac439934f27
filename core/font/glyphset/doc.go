/*
Package glyphset assembles the glyph tables of a font.

Double-byte glyphs are collected into a Source, a 0x60×0x60 grid addressed by
JIS row and cell, plus the gaiji glyphs, which are addressed by Unicode code
point directly. For every character-set variant, Build runs the glyphs of the
grid through the variant's policy, translates the survivors to Unicode and
merges the gaiji glyphs on top. The resulting Set is emitted as a Table:

	Index  []uint16   Unicode code points, strictly increasing
	Data   []byte     H rows per glyph, 2 bytes per row, big endian

Index[i] is the code point of the glyph stored at Data[2·H·i : 2·H·(i+1)], so
the renderer finds a glyph by binary search over Index.

Single-byte glyphs go into SingleTables, which cover a contiguous code range
with one byte per row and no index.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphset

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'lcdfont.glyphset'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.glyphset")
}
