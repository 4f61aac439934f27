package cppsrc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/lcdfont/core/font/glyphset"
)

// indexPerLine is the number of codes per line of an index table.
const indexPerLine = 16

// Placeholder shown in comments for characters which cannot be printed.
const Placeholder = '〿'

// kilobytes rounds down, as the comments of existing tables do.
func kilobytes(n int) int {
	return n / 1024
}

// commentChar returns the character to show in a comment for code point c.
func commentChar(c rune) rune {
	if !unicode.IsPrint(c) {
		return Placeholder
	}
	return c
}

func indexLines(index []uint16) string {
	var b strings.Builder
	for i, c := range index {
		if i%indexPerLine == 0 {
			fmt.Fprintf(&b, "\n\t\t0x%04x,", c)
		} else {
			fmt.Fprintf(&b, " 0x%04x,", c)
		}
	}
	return b.String()
}

// glyphLines writes one line per glyph, each row as two bytes. The last row
// is followed by a comment with the character, its JIS code (0 for gaiji),
// its code point and its position in the table.
func glyphLines(t *glyphset.Table) string {
	var b strings.Builder
	for i, c := range t.Index {
		g := t.Glyph(i)
		for r := 0; r < t.H; r++ {
			hi, lo := g[2*r], g[2*r+1]
			if r == 0 {
				fmt.Fprintf(&b, "\t\t0x%02x, 0x%02x,", hi, lo)
			} else {
				fmt.Fprintf(&b, " 0x%02x, 0x%02x,", hi, lo)
			}
			if r == t.H-1 {
				fmt.Fprintf(&b, " //%c %04X/U+%04X #%d\n", commentChar(rune(c)), t.Source[i], c, i)
			}
		}
	}
	return b.String()
}

func singleLines(t *glyphset.SingleTable) string {
	var b strings.Builder
	for code := t.Lo; code < t.Hi; code++ {
		b.WriteString("    ")
		for _, row := range t.Glyph(code) {
			fmt.Fprintf(&b, "0x%02X, ", row)
		}
		c := rune(code + t.DisplayOffset)
		if c == 0xff60 {
			c = Placeholder
		}
		fmt.Fprintf(&b, "//%c U+%02X\n", commentChar(c), code+t.DisplayOffset)
	}
	return b.String()
}
