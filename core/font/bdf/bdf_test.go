package bdf

import (
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/lcdfont/core"
	"github.com/npillmayer/lcdfont/core/font/glyph"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

const hexSource = `STARTFONT 2.1
FONT -shinonome-gothic-medium-r-normal--12-110-75-75-c-120-jisx0208.1983-0
SIZE 12 75 75
CHARS 2
STARTCHAR 2121
ENCODING 8481
SWIDTH 960 0
DWIDTH 12 0
BBX 12 12 0 -2
BITMAP
0000
0000
0000
0000
0000
0000
0000
0000
0000
0000
0000
0000
ENDCHAR
STARTCHAR 2122
ENCODING 8482
BITMAP
FFF0
8010
ENDCHAR
ENDFONT
`

func TestHexRows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	records, err := ReadAll(strings.NewReader(hexSource))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint32(0x2121), records[0].Code)
	assert.Len(t, records[0].Rows, 12)
	assert.Equal(t, uint32(0x2122), records[1].Code)
	assert.Equal(t, []glyph.Row{0xfff0, 0x8010}, records[1].Rows)
}

func TestCharacterNotation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	src := `STARTCHAR 41
BITMAP
..@@..
.@..@.
@....@
@@@@@@
@.........@@
ENDCHAR
`
	records, err := ReadAll(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []glyph.Row{
		0x30, // ..@@..|..
		0x48,
		0x84,
		0xfc,
		0x8030, // 12 pixels are padded to 16 bits
	}, records[0].Rows)
}

func TestEncodingFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	src := "STARTCHAR space\nENCODING 32\nBITMAP\n00\nENDCHAR\n"
	records, err := ReadAll(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint32(32), records[0].Code)
	//
	src = "STARTCHAR space\nBITMAP\n00\nENDCHAR\n"
	_, err = ReadAll(strings.NewReader(src))
	assert.Equal(t, core.EMALFORMED, core.Code(err))
}

func TestEncodingWinsOverHexName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	src := "STARTCHAR a\nENCODING 97\nBITMAP\n00\nENDCHAR\n" +
		"STARTCHAR ae\nENCODING 230\nBITMAP\n00\nENDCHAR\n" +
		"STARTCHAR fb\nENCODING -1\nBITMAP\n00\nENDCHAR\n" +
		"STARTCHAR dd\nBITMAP\n00\nENDCHAR\n"
	records, err := ReadAll(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, uint32('a'), records[0].Code)
	assert.Equal(t, uint32(0xe6), records[1].Code)
	assert.Equal(t, uint32(0xfb), records[2].Code, "negative ENCODING falls back to the name")
	assert.Equal(t, uint32(0xdd), records[3].Code)
}

func TestSupplementalCodesAreParsed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	src := "STARTCHAR 1E000\nBITMAP\n8000\nENDCHAR\n"
	records, err := ReadAll(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsSupplemental())
	assert.Equal(t, uint32(0x1e000), records[0].Code)
}

func TestUnterminatedBitmap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	for _, src := range []string{
		"STARTCHAR 2121\nBITMAP\n0000\n",
		"STARTCHAR 2121\nBITMAP\n0000\nSTARTCHAR 2122\nBITMAP\nENDCHAR\n",
	} {
		_, err := ReadAll(strings.NewReader(src), WithName("test.bdf"))
		require.Error(t, err)
		assert.Equal(t, core.EMALFORMED, core.Code(err))
		assert.True(t, core.IsFatal(err))
		assert.Contains(t, err.Error(), "test.bdf")
	}
}

func TestInvalidRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	_, err := ReadAll(strings.NewReader("STARTCHAR 2121\nBITMAP\nXYZ\nENDCHAR\n"))
	assert.Equal(t, core.EMALFORMED, core.Code(err))
	_, err = ReadAll(strings.NewReader("STARTCHAR 2121\nBITMAP\n1FFFF\nENDCHAR\n"))
	assert.Equal(t, core.EMALFORMED, core.Code(err))
}

func TestNextStopsAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	d := NewDecoder(strings.NewReader("STARTCHAR 21\nBITMAP\n00\nENDCHAR\n"))
	_, err := d.Next()
	require.NoError(t, err)
	_, err = d.Next()
	assert.Equal(t, io.EOF, err)
}

func TestEUCJPSource(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.bdf")
	defer teardown()
	//
	src := "COMMENT 東雲フォント\nSTARTCHAR 3021\nBITMAP\n4000\nENDCHAR\n"
	encoded, err := japanese.EUCJP.NewEncoder().String(src)
	require.NoError(t, err)
	require.NotEqual(t, src, encoded)
	records, err := ReadAll(strings.NewReader(encoded), WithEncoding(japanese.EUCJP))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint32(0x3021), records[0].Code)
}
