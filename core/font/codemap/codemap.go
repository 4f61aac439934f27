/*
Package codemap translates JIS X 0208 codes to Unicode code points.

The table is loaded once from a text file with one mapping per line:

	# JIS   Unicode
	0x2121  0x3000
	2122    3001

Both columns are hexadecimal, with or without a 0x prefix. Lines starting with
'#' are comments. Source codes written in EUC form (both bytes in A1…FE) are
accepted and folded to JIS.

Malformed lines never abort loading. They are reported as Skip values and
traced, and the remaining lines are processed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codemap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/encoding"
)

// tracer writes to trace with key 'lcdfont.codemap'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.codemap")
}

// Size is the number of source codes a table can hold.
const Size = 1 << 16

// Table maps 16-bit source codes to Unicode. Code points which have not been
// populated map to 0.
type Table struct {
	ucs [Size]rune
	n   int
}

// Lookup returns the Unicode code point for a JIS code, or 0 if there is none.
func (t *Table) Lookup(jis uint16) rune {
	if t == nil {
		return 0
	}
	return t.ucs[jis]
}

// Len returns the number of populated entries.
func (t *Table) Len() int {
	return t.n
}

// Skip reports a line which has not been loaded.
type Skip struct {
	Line   int
	Text   string
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("line %d: %s: %q", s.Line, s.Reason, s.Text)
}

// EUCToJIS folds a code in EUC form to JIS. Codes which are not in EUC form
// are returned unchanged.
func EUCToJIS(code uint32) uint32 {
	hi, lo := code>>8, code&0xff
	if hi >= 0xa1 && hi <= 0xfe && lo >= 0xa1 && lo <= 0xfe {
		return code - 0x8080
	}
	return code
}

type entry struct {
	jis uint16
	ucs rune
}

// parseLine returns ok=false with an empty reason for lines which are
// silently ignored (comments, blank lines).
func parseLine(line string) (e entry, reason string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return e, "", false
	}
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return e, fmt.Sprintf("expected 2 fields, have %d", len(fields)), false
	}
	src, err := parseHex(fields[0])
	if err != nil {
		return e, "invalid source code", false
	}
	ucs, err := parseHex(fields[1])
	if err != nil {
		return e, "invalid unicode code point", false
	}
	src = EUCToJIS(src)
	if src >= Size {
		return e, "source code out of range", false
	}
	if ucs >= Size {
		return e, "unicode code point outside of the 16-bit index space", false
	}
	return entry{jis: uint16(src), ucs: rune(ucs)}, "", true
}

func parseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}

// Load reads a translation table from r. Lines which cannot be parsed are
// returned as skips; an error is returned only if r cannot be read.
func Load(r io.Reader) (*Table, []Skip, error) {
	t := &Table{}
	var skips []Skip
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		e, reason, ok := parseLine(scanner.Text())
		if !ok {
			if reason != "" {
				s := Skip{Line: lineno, Text: scanner.Text(), Reason: reason}
				tracer().Infof("code table: skipping %s", s)
				skips = append(skips, s)
			}
			continue
		}
		if t.ucs[e.jis] == 0 {
			t.n++
		}
		t.ucs[e.jis] = e.ucs
	}
	if err := scanner.Err(); err != nil {
		return nil, skips, core.WrapError(err, core.ECONFIG, "cannot read code table")
	}
	tracer().Infof("code table: %d mappings, %d lines skipped", t.n, len(skips))
	return t, skips, nil
}

// LoadFile loads a translation table from a file. enc may be nil for UTF-8
// files.
func LoadFile(path string, enc encoding.Encoding) (*Table, []Skip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, core.ConfigError(err, "cannot open code table %s", path)
	}
	defer f.Close()
	var r io.Reader = f
	if enc != nil {
		r = enc.NewDecoder().Reader(f)
	}
	return Load(r)
}
