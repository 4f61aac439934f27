package glyph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int, from Row) []Row {
	r := make([]Row, n)
	for i := range r {
		r[i] = from + Row(i)
	}
	return r
}

func TestNormalizeExact(t *testing.T) {
	in := seq(16, 1)
	out, err := Normalize(in, 16, false)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	out[0] = 0xffff
	assert.Equal(t, Row(1), in[0], "input must not be aliased")
}

func TestNormalizeDropsTopRow(t *testing.T) {
	in := seq(17, 0) // row[0] == 0, row[16] == 16
	out, err := Normalize(in, 16, false)
	require.NoError(t, err)
	require.Len(t, out, 16)
	assert.Equal(t, in[1:], out)
}

func TestNormalizeDropsCenterRow(t *testing.T) {
	in := seq(17, 1) // row[0] != 0, row[16] != 0
	out, err := Normalize(in, 16, false)
	require.NoError(t, err)
	require.Len(t, out, 16)
	// row 9 (= 16/2+1) is removed
	expected := append(append([]Row{}, in[:9]...), in[10:]...)
	assert.Equal(t, expected, out)
	assert.NotContains(t, out, in[9])
}

func TestNormalizeDropsTrailingRow(t *testing.T) {
	in := seq(13, 1)
	in[12] = 0
	out, err := Normalize(in, 12, false)
	require.NoError(t, err)
	assert.Equal(t, in[:12], out)
}

func TestNormalizeShort(t *testing.T) {
	in := seq(10, 1)
	_, err := Normalize(in, 12, false)
	assert.True(t, errors.Is(err, ErrShortGlyph))
	//
	out, err := Normalize(in, 12, true)
	require.NoError(t, err)
	require.Len(t, out, 12)
	assert.Equal(t, in, out[:10])
	assert.Equal(t, []Row{0, 0}, out[10:])
}

func TestNormalizeTall(t *testing.T) {
	_, err := Normalize(seq(18, 1), 16, true)
	assert.True(t, errors.Is(err, ErrTallGlyph))
}

func TestNormalizeAlwaysYieldsHeight(t *testing.T) {
	for h := 1; h <= 24; h++ {
		for n := 0; n <= h+1; n++ {
			for _, first := range []Row{0, 1} {
				in := seq(n, first)
				if n > h {
					in[h] = Row(h % 2) // exercise both branches
				}
				out, err := Normalize(in, h, true)
				require.NoError(t, err, "h=%d n=%d", h, n)
				assert.Len(t, out, h, "h=%d n=%d", h, n)
			}
		}
	}
}

func TestString(t *testing.T) {
	s := String([]Row{0x8000, 0x0010}, 12)
	assert.Equal(t, "@...........\n...........@\n", s)
	s = String([]Row{0x84}, 6)
	assert.Equal(t, "@....@\n", s)
}

func TestSupplemental(t *testing.T) {
	assert.False(t, Record{Code: 0xffff}.IsSupplemental())
	assert.True(t, Record{Code: 0x1e000}.IsSupplemental())
}
