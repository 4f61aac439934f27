/*
Package bdf reads glyph bitmaps from BDF-style font sources.

Only the glyph records of a BDF file are of interest:

	STARTCHAR 2422
	ENCODING 9250
	...
	BITMAP
	0000
	7FE0
	...
	ENDCHAR

The ENCODING line supplies the source code of the glyph. Without a valid
ENCODING line, the name following STARTCHAR is taken as the hexadecimal code.
Symbolic names which happen to read as hexadecimal ("a", "ae", "fb") are
therefore decoded correctly whenever ENCODING is present. Everything outside of glyph records (font properties, bounding
boxes, metrics) is ignored.

Bitmap rows are either hexadecimal literals or a character notation with one
character per pixel, where '@' denotes a set pixel and every other character a
clear one:

	..@@@@@@@@..
	.@........@.

Both notations may be mixed within a file. Rows in character notation are
left-aligned to the next multiple of 8 bits.

Glyph sources of Japanese fonts are frequently EUC-JP encoded; use
WithEncoding to decode them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bdf

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'lcdfont.bdf'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.bdf")
}
