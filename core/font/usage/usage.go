/*
Package usage finds out which characters a text uses, to trim policy tables
to what an application actually displays.

Scan collects the distinct characters of a text. The characters may then be
listed, restricted to those outside the ranges the single-byte tables cover,
or used to filter a policy table line by line.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package usage

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/charset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'lcdfont.usage'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.usage")
}

// SafeRanges are displayed from single-byte tables: Latin-1 and half-width
// katakana.
var SafeRanges = []charset.Range{
	{Lo: 0x0000, Hi: 0x00ff},
	{Lo: 0xff61, Hi: 0xffaf},
}

// Chars is a set of characters, ordered by code point.
type Chars struct {
	set *treeset.Set
}

// NewChars creates a set of characters.
func NewChars(runes ...rune) *Chars {
	c := &Chars{set: treeset.NewWith(utils.RuneComparator)}
	for _, r := range runes {
		c.Add(r)
	}
	return c
}

// Scan collects the characters of a text, including line ends.
func Scan(r io.Reader) (*Chars, error) {
	chars := NewChars()
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return chars, core.WrapError(err, core.EINTERNAL, "cannot read text")
		}
		chars.Add(c)
	}
	tracer().Debugf("scanned %d distinct characters", chars.Len())
	return chars, nil
}

// Add puts a character into the set.
func (c *Chars) Add(r rune) {
	c.set.Add(r)
}

// Contains reports whether r is in the set.
func (c *Chars) Contains(r rune) bool {
	return c.set.Contains(r)
}

// Len is the number of characters.
func (c *Chars) Len() int {
	return c.set.Size()
}

// Runes returns all characters in ascending order.
func (c *Chars) Runes() []rune {
	runes := make([]rune, 0, c.set.Size())
	it := c.set.Iterator()
	for it.Next() {
		runes = append(runes, it.Value().(rune))
	}
	return runes
}

// Outside returns the characters not covered by any of ranges, in ascending
// order. Without ranges, SafeRanges apply.
func (c *Chars) Outside(ranges ...charset.Range) []rune {
	if len(ranges) == 0 {
		ranges = SafeRanges
	}
	var out []rune
	for _, r := range c.Runes() {
		covered := false
		for _, rg := range ranges {
			if rg.Contains(r) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, r)
		}
	}
	return out
}

// WriteOutside prints the characters not covered by ranges, one per line.
func (c *Chars) WriteOutside(w io.Writer, ranges ...charset.Range) error {
	bw := bufio.NewWriter(w)
	for _, r := range c.Outside(ranges...) {
		if _, err := fmt.Fprintf(bw, "%c\n", r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Mode selects the lines FilterTable keeps.
type Mode int

// Filter modes.
const (
	Absent Mode = iota // keep entries for characters not used
	Seen               // keep entries for characters used
)

// TableFields is the number of fields of a policy table entry.
const TableFields = 4

// Stats counts the lines of a filtered table.
type Stats struct {
	Entries  int    // well-formed entries read
	Kept     int    // entries written
	Verbatim int    // comments and malformed lines, always written
	Unlisted []rune // used characters without an entry, outside SafeRanges
}

// FilterTable copies a policy table to w, keeping entries depending on
// whether their character is in chars. The character of an entry is its first
// field. Comment lines and lines which are not entries are copied unchanged.
func FilterTable(w io.Writer, table io.Reader, chars *Chars, mode Mode) (Stats, error) {
	var stats Stats
	listed := hashset.New()
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(table)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if strings.HasPrefix(line, "#") || len(fields) != TableFields ||
			utf8.RuneCountInString(fields[0]) != 1 {
			stats.Verbatim++
			fmt.Fprintln(bw, line)
			continue
		}
		stats.Entries++
		c, _ := utf8.DecodeRuneInString(fields[0])
		listed.Add(c)
		if chars.Contains(c) == (mode == Seen) {
			stats.Kept++
			fmt.Fprintln(bw, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, core.WrapError(err, core.ECONFIG, "cannot read policy table")
	}
	for _, c := range chars.Outside() {
		if !listed.Contains(c) {
			stats.Unlisted = append(stats.Unlisted, c)
		}
	}
	tracer().Infof("policy table: %d entries, %d kept, %d lines copied", stats.Entries, stats.Kept, stats.Verbatim)
	return stats, bw.Flush()
}
