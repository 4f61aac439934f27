package codemap

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `# JIS0208 to Unicode
0x2121 0x3000
2122 3001
A1A4 FF0C
# a comment with 2 fields
2123
2124 30ZZ
2125 20B9F
2126	FF0E
`

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.codemap")
	defer teardown()
	//
	tbl, skips, err := Load(strings.NewReader(table))
	require.NoError(t, err)
	assert.Equal(t, rune(0x3000), tbl.Lookup(0x2121))
	assert.Equal(t, rune(0x3001), tbl.Lookup(0x2122))
	assert.Equal(t, rune(0xff0c), tbl.Lookup(0x2124), "EUC key folded to JIS")
	assert.Equal(t, rune(0xff0e), tbl.Lookup(0x2126))
	assert.Equal(t, rune(0), tbl.Lookup(0x2123))
	assert.Equal(t, rune(0), tbl.Lookup(0x2125))
	assert.Equal(t, 4, tbl.Len())
	//
	require.Len(t, skips, 3)
	assert.Equal(t, 6, skips[0].Line)
	assert.Equal(t, 7, skips[1].Line)
	assert.Equal(t, 8, skips[2].Line)
}

func TestLookupAbsent(t *testing.T) {
	var tbl *Table
	assert.Equal(t, rune(0), tbl.Lookup(0x2121))
	tbl = &Table{}
	assert.Equal(t, rune(0), tbl.Lookup(0xffff))
}

func TestEUCToJIS(t *testing.T) {
	assert.Equal(t, uint32(0x2121), EUCToJIS(0xa1a1))
	assert.Equal(t, uint32(0x7e7e), EUCToJIS(0xfefe))
	assert.Equal(t, uint32(0x2121), EUCToJIS(0x2121))
	assert.Equal(t, uint32(0xa1a0), EUCToJIS(0xa1a0))
	assert.Equal(t, uint32(0x1e000), EUCToJIS(0x1e000))
}
