package usage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/lcdfont/core/font/charset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanOrdered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.usage")
	defer teardown()
	//
	chars, err := Scan(strings.NewReader("漢字かなｶﾅ abc\n字か"))
	require.NoError(t, err)
	assert.Equal(t, 11, chars.Len())
	assert.True(t, chars.Contains('\n'))
	runes := chars.Runes()
	assert.Equal(t, '\n', runes[0])
	assert.Equal(t, 'ﾅ', runes[len(runes)-1])
	for i := 1; i < len(runes); i++ {
		assert.Less(t, runes[i-1], runes[i])
	}
	assert.Equal(t, []rune{'か', 'な', '字', '漢'}, chars.Outside())
}

func TestOutsideCustomRanges(t *testing.T) {
	chars := NewChars('A', 'α', 'あ')
	assert.Equal(t, []rune{'α', 'あ'}, chars.Outside(charset.Range{Lo: 0x20, Hi: 0x7e}))
	var buf bytes.Buffer
	require.NoError(t, chars.WriteOutside(&buf))
	assert.Equal(t, "α\nあ\n", buf.String())
}

const table = `# kanji table
亜 3021 B0A1 1
唖 3022 B0A2 2
娃 3023 B0A3 3
broken line
`

func TestFilterAbsent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.usage")
	defer teardown()
	//
	chars := NewChars('亜', '娃', '字')
	var buf bytes.Buffer
	stats, err := FilterTable(&buf, strings.NewReader(table), chars, Absent)
	require.NoError(t, err)
	assert.Equal(t, "# kanji table\n唖 3022 B0A2 2\nbroken line\n", buf.String())
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 1, stats.Kept)
	assert.Equal(t, 2, stats.Verbatim)
	assert.Equal(t, []rune{'字'}, stats.Unlisted)
}

func TestFilterSeen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lcdfont.usage")
	defer teardown()
	//
	chars, err := Scan(strings.NewReader("亜娃"))
	require.NoError(t, err)
	var buf bytes.Buffer
	stats, err := FilterTable(&buf, strings.NewReader(table), chars, Seen)
	require.NoError(t, err)
	assert.Equal(t, "# kanji table\n亜 3021 B0A1 1\n娃 3023 B0A3 3\nbroken line\n", buf.String())
	assert.Equal(t, 2, stats.Kept)
	assert.Empty(t, stats.Unlisted)
}
