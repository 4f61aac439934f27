/*
Package charset decides which double-byte glyphs belong to a character-set
variant of a font.

A variant is described by a Policy: an optional inclusion table of "common use"
kanji and an optional range of Unicode code points which are always excluded.
Each glyph is judged by its source code (in EUC form) and the Unicode code
point it translates to. The rules are applied in a fixed order, the first
matching rule decides:

	1. code points up to U+00FF are rejected; they live in the single-byte tables
	2. code points inside the exclusion range are rejected
	3. source codes below EUC A900 (symbols, kana, Greek, Cyrillic) are accepted
	4. without an inclusion table (or an empty one), every glyph is accepted
	5. otherwise a glyph is accepted if its source code is in the table

Inclusion tables are text files with whitespace-separated records, where the
third field holds the EUC code of a character:

	亜 3021 B0A1 0x4E9C

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package charset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'lcdfont.charset'
func tracer() tracing.Trace {
	return tracing.Select("lcdfont.charset")
}

// SymbolLimit is the first EUC code subject to inclusion tables.
const SymbolLimit = 0xa900

// SingleByteLimit is the highest code point served by the single-byte tables.
const SingleByteLimit = 0xff

// Range is an inclusive range of Unicode code points. The zero value is the
// empty range.
type Range struct {
	Lo, Hi rune
}

// Contains is true if r is within the range.
func (rg Range) Contains(r rune) bool {
	return rg.Hi != 0 && r >= rg.Lo && r <= rg.Hi
}

// IsEmpty is true for the zero range.
func (rg Range) IsEmpty() bool {
	return rg.Hi == 0
}

func (rg Range) String() string {
	if rg.IsEmpty() {
		return "none"
	}
	return fmt.Sprintf("U+%04X–U+%04X", rg.Lo, rg.Hi)
}

// PolicyTable is a set of EUC codes to include in a variant.
type PolicyTable struct {
	codes map[uint16]struct{}
}

// NewPolicyTable creates a table from a list of EUC codes.
func NewPolicyTable(codes ...uint16) *PolicyTable {
	t := &PolicyTable{codes: make(map[uint16]struct{}, len(codes))}
	for _, c := range codes {
		t.codes[c] = struct{}{}
	}
	return t
}

// Contains is true if euc is listed in the table.
func (t *PolicyTable) Contains(euc uint16) bool {
	if t == nil {
		return false
	}
	_, ok := t.codes[euc]
	return ok
}

// Len returns the number of codes in the table.
func (t *PolicyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.codes)
}

// Skip reports a line of a policy table which has not been loaded.
type Skip struct {
	Line   int
	Text   string
	Reason string
}

func (s Skip) String() string {
	return fmt.Sprintf("line %d: %s: %q", s.Line, s.Reason, s.Text)
}

// LoadTable reads an inclusion table. Lines which do not carry a hexadecimal
// code in their third field are skipped and reported.
func LoadTable(r io.Reader) (*PolicyTable, []Skip, error) {
	t := NewPolicyTable()
	var skips []Skip
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 3 {
			skips = append(skips, skip(Skip{lineno, line, "missing code field"}))
			continue
		}
		code, err := strconv.ParseUint(strings.TrimPrefix(fields[2], "0x"), 16, 16)
		if err != nil {
			skips = append(skips, skip(Skip{lineno, line, "invalid code field"}))
			continue
		}
		t.codes[uint16(code)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, skips, core.WrapError(err, core.ECONFIG, "cannot read policy table")
	}
	tracer().Infof("policy table: %d codes, %d lines skipped", t.Len(), len(skips))
	return t, skips, nil
}

func skip(s Skip) Skip {
	tracer().Infof("policy table: skipping %s", s)
	return s
}

// LoadTableFile reads an inclusion table from a file.
func LoadTableFile(path string) (*PolicyTable, []Skip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, core.ConfigError(err, "cannot open policy table %s", path)
	}
	defer f.Close()
	return LoadTable(f)
}

// Policy selects the glyphs of one character-set variant.
type Policy struct {
	Name    string       // variant name, e.g. "std"
	Table   *PolicyTable // nil or empty for all glyphs
	Exclude Range
}

// Reason names the rule which decided a verdict.
type Reason int

const (
	Unmapped   Reason = iota // no Unicode code point for the glyph
	SingleByte               // rule 1
	Excluded                 // rule 2
	Symbol                   // rule 3
	Unlimited                // rule 4
	Listed                   // rule 5, accepted
	NotListed                // rule 5, rejected
)

func (r Reason) String() string {
	switch r {
	case Unmapped:
		return "unmapped"
	case SingleByte:
		return "single-byte"
	case Excluded:
		return "excluded"
	case Symbol:
		return "symbol"
	case Unlimited:
		return "unlimited"
	case Listed:
		return "listed"
	case NotListed:
		return "not listed"
	}
	return "?"
}

// Verdict is the outcome of Accept.
type Verdict struct {
	Accept bool
	Reason Reason
}

// Accept judges a glyph with EUC source code euc, translating to uni.
func (p Policy) Accept(euc uint16, uni rune) Verdict {
	switch {
	case uni == 0:
		return Verdict{false, Unmapped}
	case uni <= SingleByteLimit:
		return Verdict{false, SingleByte}
	case p.Exclude.Contains(uni):
		return Verdict{false, Excluded}
	case euc < SymbolLimit:
		return Verdict{true, Symbol}
	case p.Table.Len() == 0:
		return Verdict{true, Unlimited}
	case p.Table.Contains(euc):
		return Verdict{true, Listed}
	}
	return Verdict{false, NotListed}
}

// Variant suffixes of the standard set of variants.
const (
	Mini = "mini"
	Std  = "std"
	Full = "full"
)

// GreekCyrillic is excluded from the mini variant.
var GreekCyrillic = Range{Lo: 0x391, Hi: 0x451}

// StandardPolicies returns the mini, std and full variants, in this order.
func StandardPolicies(mini, std *PolicyTable) []Policy {
	return []Policy{
		{Name: Mini, Table: mini, Exclude: GreekCyrillic},
		{Name: Std, Table: std},
		{Name: Full},
	}
}

// Select picks policies by name, keeping the order of names.
func Select(policies []Policy, names ...string) ([]Policy, error) {
	if len(names) == 0 {
		return policies, nil
	}
	var sel []Policy
	for _, n := range names {
		found := false
		for _, p := range policies {
			if p.Name == n {
				sel = append(sel, p)
				found = true
				break
			}
		}
		if !found {
			return nil, core.Error(core.ECONFIG, "unknown character-set variant %q", n)
		}
	}
	return sel, nil
}
